// Package dataprocessing implements the tidying pipeline for raw agency
// exports: detect and skip the metadata preamble, locate the valid data
// region between the boundary sentinel rows, then drop, coerce, rescale
// and rename columns into a tidy table.
//
// Every stage is a pure function over domain.Table; the only I/O happens
// when the raw file is first loaded.
package dataprocessing
