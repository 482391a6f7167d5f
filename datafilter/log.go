package datafilter

import (
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-bioflow/logging"
)

func dataLogger() *logrus.Logger {
	return logging.Data()
}

// reject logs a validation failure at Error on the data logger and returns it.
func reject(fields logrus.Fields, err *Error) error {
	dataLogger().WithFields(fields).Error(err.Msg)
	return err
}
