package list_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/quicken/pkg/commands/list"
	"github.com/arthur-debert/quicken/pkg/plugin"
	_ "github.com/arthur-debert/quicken/pkg/plugins"
	"github.com/arthur-debert/quicken/pkg/scripted"
)

func TestListPlugins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "greet.go"), []byte("package main\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "echo.go"), []byte("package main\n"), 0644))

	plugins, err := list.ListPlugins(list.ListPluginsOptions{Loaders: []plugin.Loader{scripted.NewLoader(dir)}})
	require.NoError(t, err)

	assert.Contains(t, plugins, plugin.Available{Name: "echo", Source: plugin.SourceBuiltin})
	assert.Contains(t, plugins, plugin.Available{Name: "readme", Source: plugin.SourceBuiltin})
	assert.Contains(t, plugins, plugin.Available{Name: "license", Source: plugin.SourceBuiltin})
	assert.Contains(t, plugins, plugin.Available{Name: "greet", Source: scripted.Source})
	assert.NotContains(t, plugins, plugin.Available{Name: "echo", Source: scripted.Source})
}
