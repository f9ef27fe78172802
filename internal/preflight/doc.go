// Package preflight runs the checks that gate a batch: external binaries are
// resolvable and the input/output directories are accessible. Failures here
// abort the run before any file-level work starts.
package preflight
