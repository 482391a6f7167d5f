// Package frequency provides the spectral measurements used to check
// filtered biosignals: analysis windows, real FFTs, periodogram and Welch
// power spectral densities, band power integration and single tone
// amplitudes.
package frequency
