// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the generation lifecycle: load a graph
// document, compile it, populate region caches, then sample and export every
// tile. It is decoupled from any specific entrypoint like a CLI or server.
package app
