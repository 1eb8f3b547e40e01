// Package buffer provides a fixed-length sample history and a pool of
// scratch slices for allocation-friendly streaming analysis. All DSP
// functions accept raw []float64 slices; these types only help callers
// manage history and reuse in hot paths.
package buffer
