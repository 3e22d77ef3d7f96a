package hseq

// Package Heterogenous Sequence of Types
// The package unfolds product type (e.g. structs) into sequence of types,
// while preserving the original type witness. The package helps to build
// generic algorithm over "similar" types avoiding repetition.
