// Package registry provides a generic, thread-safe name to item store. The
// plugin package keeps its statically registered factories in one, filled
// from init() functions of the built-in plugin packages.
package registry
