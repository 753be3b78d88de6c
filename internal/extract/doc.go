// Package extract finds the first function definition in Python source and
// builds a sig.Signature from it.
//
// There are two engines: native (the in-tree lexer and parser) and treesitter
// (github.com/smacker/go-tree-sitter). Both walk the tree breadth-first in
// ast.walk order and resolve annotations with the same sig.Resolve.
package extract
