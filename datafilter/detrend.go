package datafilter

import (
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// Detrend removes the mean (Constant) or the least-squares line (Linear)
// from data in place.
func Detrend(data []float64, op DetrendOperation) (err error) {
	defer recoverInto(&err)

	if err := checkData(data); err != nil {
		return err
	}

	switch op {
	case NoDetrend:
	case Constant:
		mean := stat.Mean(data, nil)
		for i := range data {
			data[i] -= mean
		}
	case Linear:
		if len(data) == 1 {
			data[0] = 0
			return nil
		}

		x := make([]float64, len(data))
		for i := range x {
			x[i] = float64(i)
		}

		alpha, beta := stat.LinearRegression(x, data, nil, false)
		for i := range data {
			data[i] -= alpha + beta*x[i]
		}
	default:
		return reject(logrus.Fields{"detrend_operation": int(op)}, invalidArgs("invalid detrend operation %d", int(op)))
	}

	return nil
}
