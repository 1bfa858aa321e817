package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/quicken/pkg/errors"
	"github.com/arthur-debert/quicken/pkg/paths"
	"github.com/arthur-debert/quicken/pkg/testutil"
)

func isolate(t *testing.T) (userFile, projectDir string) {
	t.Helper()
	root := testutil.IsolateXDG(t)
	projectDir = filepath.Join(root, "project")
	require.NoError(t, os.MkdirAll(projectDir, 0755))
	return paths.ConfigFile(), projectDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadDefaults(t *testing.T) {
	userFile, projectDir := isolate(t)

	cfg, err := Load(LoadOptions{UserFile: userFile, ProjectDir: projectDir})
	require.NoError(t, err)

	assert.Equal(t, "recipe.yml", cfg.Recipe.Output)
	assert.Equal(t, 30*time.Second, cfg.Recipe.FetchTimeout)
	assert.Equal(t, "mit", cfg.Project.License)
	assert.Equal(t, paths.PluginsDir(), cfg.Plugins.Dir)
	assert.Equal(t, paths.LogFile(), cfg.Logging.File)
}

func TestLoadLayering(t *testing.T) {
	userFile, projectDir := isolate(t)

	writeFile(t, userFile, `
[recipe]
output = "user.yml"
fetch_timeout = "10s"

[project]
license = "ISC"
`)
	writeFile(t, filepath.Join(projectDir, ".quicken.toml"), `
[recipe]
output = "project.yml"
`)
	explicit := filepath.Join(t.TempDir(), "explicit.toml")
	writeFile(t, explicit, `
[plugins]
dir = "/opt/quicken/plugins"
`)

	cfg, err := Load(LoadOptions{UserFile: userFile, ProjectDir: projectDir, File: explicit})
	require.NoError(t, err)

	assert.Equal(t, "project.yml", cfg.Recipe.Output)
	assert.Equal(t, 10*time.Second, cfg.Recipe.FetchTimeout)
	assert.Equal(t, "isc", cfg.Project.License)
	assert.Equal(t, "/opt/quicken/plugins", cfg.Plugins.Dir)
}

func TestLoadEnvironment(t *testing.T) {
	userFile, projectDir := isolate(t)
	t.Setenv("QUICKEN_RECIPE_OUTPUT", "env.yml")
	t.Setenv("QUICKEN_RECIPE_FETCH_TIMEOUT", "5s")

	cfg, err := Load(LoadOptions{UserFile: userFile, ProjectDir: projectDir})
	require.NoError(t, err)

	assert.Equal(t, "env.yml", cfg.Recipe.Output)
	assert.Equal(t, 5*time.Second, cfg.Recipe.FetchTimeout)
}

func TestLoadOverridesWin(t *testing.T) {
	userFile, projectDir := isolate(t)
	t.Setenv("QUICKEN_PROJECT_LICENSE", "bsd-3-clause")

	cfg, err := Load(LoadOptions{
		UserFile:   userFile,
		ProjectDir: projectDir,
		Overrides:  map[string]interface{}{"project.license": "unlicense"},
	})
	require.NoError(t, err)
	assert.Equal(t, "unlicense", cfg.Project.License)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		userFile, projectDir := isolate(t)
		_, err := Load(LoadOptions{UserFile: userFile, ProjectDir: projectDir, File: "/does/not/exist.toml"})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("malformed file", func(t *testing.T) {
		userFile, projectDir := isolate(t)
		writeFile(t, filepath.Join(projectDir, ".quicken.toml"), "[recipe\noutput = ")
		_, err := Load(LoadOptions{UserFile: userFile, ProjectDir: projectDir})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("bad duration", func(t *testing.T) {
		userFile, projectDir := isolate(t)
		t.Setenv("QUICKEN_RECIPE_FETCH_TIMEOUT", "soon")
		_, err := Load(LoadOptions{UserFile: userFile, ProjectDir: projectDir})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})
}

func TestTOMLRoundTrip(t *testing.T) {
	userFile, projectDir := isolate(t)
	t.Setenv("QUICKEN_RECIPE_FETCH_TIMEOUT", "1m30s")

	cfg, err := Load(LoadOptions{UserFile: userFile, ProjectDir: projectDir})
	require.NoError(t, err)

	out, err := cfg.TOML()
	require.NoError(t, err)
	assert.Contains(t, out, "[recipe]")
	assert.Contains(t, out, "1m30s")

	os.Unsetenv("QUICKEN_RECIPE_FETCH_TIMEOUT")
	explicit := filepath.Join(t.TempDir(), "dump.toml")
	writeFile(t, explicit, out)
	again, err := Load(LoadOptions{UserFile: userFile, ProjectDir: projectDir, File: explicit})
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestDefaultsContent(t *testing.T) {
	assert.Contains(t, DefaultsContent(), "[recipe]")
}
