// Package sig describes an extracted function signature: the parameters,
// their kinds and their type tags as the closed variant sig.Type.
//
// A tag is parsed once, from an annotation or from its rendered form, and the
// generator then switches on Kind.
package sig
