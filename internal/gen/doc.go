// Package gen synthesizes test inputs from parameter type tags using
// boundary values, equivalence classes and random sampling.
//
// The random source is passed explicitly (*rand.Rand from math/rand/v2), so
// a fixed seed reproduces the same output.
package gen
