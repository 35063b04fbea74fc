// Package matrix expands an experiment's parameter map into the full
// Cartesian product of its varying parameters and prunes physically
// redundant combinations.
//
// A parameter is varying iff its value is a list. Varying parameters are
// ordered by descending cardinality, ties broken by declaration order in the
// source document. Combinations enumerate the product with the rightmost
// (smallest) axis moving fastest, so the overall order is deterministic for
// a given document.
package matrix
