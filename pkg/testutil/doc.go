// Package testutil provides utilities for testing quicken components.
//
// Key components:
//   - TestEnvironment: an isolated filesystem plus a captured console
//   - IsolateXDG: points every XDG lookup at throwaway directories
//
// Most tests should use EnvMemoryOnly. EnvIsolated is for code that reaches
// the real filesystem, such as scripted plugins and the CLI.
package testutil
