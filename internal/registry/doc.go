// Package registry provides the central "glue" for the node type system.
//
// The Registry maps the type tags used in graph documents (e.g. "perlin",
// "beach") to Definitions: the node's class, how many inputs it takes, the
// field kind of each output, its property table with defaults, and the
// constructor that turns parsed properties into field variants.
//
// Definitions are contributed by Modules at startup. The set is closed: an
// unknown tag is a compile diagnostic, never a runtime lookup failure. After
// registration, Validate checks that every field kind can be produced by some
// node type, so a variant added to the field package without a node type
// fails startup.
package registry
