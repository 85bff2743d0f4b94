// Package document defines the format-agnostic graph document model: the
// authored nodes, their string-typed properties and the edges between node
// ports. It also defines the Loader and Writer interfaces implemented by
// concrete formats such as HCL.
//
// A Document is the single input of the compiler package and is treated as
// immutable once it has been handed over.
package document
