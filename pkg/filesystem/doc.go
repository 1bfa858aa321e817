// Package filesystem provides the filesystem abstraction used by quicken.
//
// FS has an OS implementation for real runs and an afero-backed one for tests.
// Writer layers the guarded, all-or-nothing file write that plugins use on top
// of either.
package filesystem
