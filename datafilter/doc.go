// Package datafilter is the filtering surface of the module: BrainFlow-style
// exit codes and constants, stateful filters behind the [Filter] interface,
// a handle [Registry] for streaming use, and stateless batch functions.
// It also carries the DataFilter helpers around filtering: band powers over
// Welch spectra, [CalcStddev], and tab-separated sample files through
// [WriteFile] and [ReadFile].
//
// A filter keeps its state between Process calls, so feeding a stream in
// chunks of any size produces exactly the samples a single batch call over
// the whole stream produces.
package datafilter
