// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle that ties snapshotting,
// dependency analysis, graph construction and concurrent execution
// together, decoupled from any specific entrypoint like a CLI.
package app
