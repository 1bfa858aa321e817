// Package types defines the values shared across the recipe pipeline: the
// tagged argument Value handed to plugins and the CommandResult returned by the
// command layer.
package types
