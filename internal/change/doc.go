// Package change computes, applies and reports differences between a file's
// tag and the values implied by its path.
//
// # Detect
//
// Detect reads each property from a TagHandle and keeps those whose current
// value differs from the expected one:
//
//	changes := change.Detect(tag, path, property.Set())
//
// # Apply
//
// Apply writes one change into the handle, deleting the field when the new
// value is absent. Persisting the tag is left to the caller.
//
// # Reporter
//
// Reporter prints a header per changed file, one line per change with "-"
// for absent values, and the closing "<changed>/<total> files changed" line.
package change
