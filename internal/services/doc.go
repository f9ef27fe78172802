// Package services defines the error taxonomy shared by components that talk
// to external tools.
//
// Errors are tagged with sentinel markers so callers can classify a failure
// without string matching: configuration problems (missing binaries) abort a
// whole batch, input problems abort before any file is touched, and external
// tool failures stay contained to the file that triggered them.
package services
