// Package compiler turns a graph document into an executable field graph.
//
// Compile runs a fixed sequence of passes over the document:
//
//  1. resolve every node's type against the registry,
//  2. instantiate one field per operator output,
//  3. wire edges into destination slots,
//  4. publish portal inputs under their names,
//  5. resolve portal outputs,
//  6. wire the edges leaving portal outputs,
//  7. bind every remaining empty slot to the shared default generator,
//  8. select the root field and extract the texture layers.
//
// Compilation never fails. Structural problems and degradations are recorded
// as hcl.Diagnostics on the Result and the offending piece is skipped or
// replaced by the default generator, so the result is always sampleable.
package compiler
