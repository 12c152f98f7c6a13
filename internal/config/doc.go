// Package config defines the format-agnostic run-file model and the Loader
// interface that reads it.
//
// A RunFile only carries what the file said: unset settings stay nil or
// empty so that the app layer can apply flag, file and default precedence.
// Concrete loaders, such as the HCL one, live in separate packages.
package config
