package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/quicken/pkg/filesystem"
	"github.com/arthur-debert/quicken/pkg/paths"
	"github.com/arthur-debert/quicken/pkg/ui"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment bundles the dependencies a command or plugin needs
type TestEnvironment struct {
	Type EnvType
	// Root is the working directory steps resolve relative paths against.
	Root string
	FS   filesystem.FS

	Console *ui.Console
	Out     *bytes.Buffer
	Err     *bytes.Buffer

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{
		Type: envType,
		Out:  &bytes.Buffer{},
		Err:  &bytes.Buffer{},
		t:    t,
	}
	env.Console = &ui.Console{Out: env.Out, Err: env.Err}

	switch envType {
	case EnvIsolated:
		env.Root = t.TempDir()
		env.FS = filesystem.NewOS()
	default:
		env.Root = "/project"
		env.FS = filesystem.NewMemory()
		if err := env.FS.MkdirAll(env.Root, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", env.Root, err)
		}
	}
	return env
}

// Path joins rel onto the environment root
func (e *TestEnvironment) Path(rel string) string {
	return filepath.Join(e.Root, rel)
}

// WriteFile writes content under the root and returns its full path
func (e *TestEnvironment) WriteFile(rel, content string) string {
	e.t.Helper()
	path := e.Path(rel)
	if err := e.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := e.FS.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of a file under the root
func (e *TestEnvironment) ReadFile(rel string) string {
	e.t.Helper()
	data, err := e.FS.ReadFile(e.Path(rel))
	if err != nil {
		e.t.Fatalf("failed to read %s: %v", rel, err)
	}
	return string(data)
}

// Exists reports whether rel exists under the root
func (e *TestEnvironment) Exists(rel string) bool {
	_, err := e.FS.Stat(e.Path(rel))
	return err == nil
}

var configEnvVars = []string{
	"QUICKEN_RECIPE_OUTPUT",
	"QUICKEN_RECIPE_FETCH_TIMEOUT",
	"QUICKEN_PLUGINS_DIR",
	"QUICKEN_PROJECT_LICENSE",
	"QUICKEN_LOGGING_FILE",
}

// IsolateXDG points the quicken config, data and state directories at fresh
// temp dirs for the duration of the test and returns their parent.
func IsolateXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv(paths.EnvConfigDir, filepath.Join(root, "config"))
	t.Setenv(paths.EnvDataDir, filepath.Join(root, "data"))
	t.Setenv(paths.EnvStateDir, filepath.Join(root, "state"))
	// Config overrides are removed, not emptied: an empty value still
	// overrides the defaults. t.Setenv registers the restore.
	for _, name := range configEnvVars {
		if _, ok := os.LookupEnv(name); ok {
			t.Setenv(name, "")
			if err := os.Unsetenv(name); err != nil {
				t.Fatalf("failed to unset %s: %v", name, err)
			}
		}
	}
	return root
}
