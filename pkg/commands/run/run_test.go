package run_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/quicken/pkg/commands/run"
	"github.com/arthur-debert/quicken/pkg/errors"
	"github.com/arthur-debert/quicken/pkg/plugin"
	_ "github.com/arthur-debert/quicken/pkg/plugins"
	"github.com/arthur-debert/quicken/pkg/registry"
	"github.com/arthur-debert/quicken/pkg/scripted"
	"github.com/arthur-debert/quicken/pkg/testutil"
	"github.com/arthur-debert/quicken/pkg/types"
)

const readmeRecipe = `- readme:
    project_name: Test
    author_name: Test
    author_email: test@example.com
    description: This is a test
`

type fixture struct {
	*testutil.TestEnvironment
}

func newFixture(t *testing.T, recipe string) fixture {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile("recipe.yml", recipe)
	return fixture{env}
}

func (f fixture) run(opts run.RunOptions) *types.CommandResult {
	if opts.Source == "" {
		opts.Source = f.Path("recipe.yml")
	}
	opts.FS = f.FS
	opts.Console = f.Console
	opts.WorkDir = f.Root
	return run.Run(context.Background(), opts)
}

func TestEchoStep(t *testing.T) {
	f := newFixture(t, `- echo: "Generating project X"`)

	result := f.run(run.RunOptions{})
	require.True(t, result.Success(), result.Summary())
	assert.Equal(t, "Generating project X\n", f.Out.String())
}

func TestReadmeStep(t *testing.T) {
	f := newFixture(t, readmeRecipe)

	result := f.run(run.RunOptions{})
	require.True(t, result.Success(), result.Summary())

	content, err := f.FS.ReadFile("/project/README.md")
	require.NoError(t, err)
	assert.Equal(t, "# Test\n### by Test <test@example.com>\n---\nThis is a test", string(content))
	assert.Equal(t, "Created README file\n", f.Out.String())
}

func TestReadmeStepSkipsExistingFile(t *testing.T) {
	f := newFixture(t, readmeRecipe)
	require.NoError(t, f.FS.WriteFile("/project/README.md", []byte("original"), 0644))

	result := f.run(run.RunOptions{})
	require.True(t, result.Success(), result.Summary())

	content, err := f.FS.ReadFile("/project/README.md")
	require.NoError(t, err)
	assert.Equal(t, "original", string(content))
	assert.Equal(t, "README already present. Skipping...\n", f.Out.String())
}

func TestUnknownPlugin(t *testing.T) {
	f := newFixture(t, "- echo: first\n- doesnotexist: x\n")

	result := f.run(run.RunOptions{})
	assert.False(t, result.Success())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, errors.ErrPluginNotFound, result.Errors[0].Kind)
	assert.Empty(t, f.Out.String(), "nothing runs when a step does not resolve")
}

func TestMissingRecipe(t *testing.T) {
	f := newFixture(t, "[]")

	result := f.run(run.RunOptions{Source: "/project/nope.yml"})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, errors.ErrFileNotFound, result.Errors[0].Kind)
}

func TestParseErrorIsReported(t *testing.T) {
	f := newFixture(t, "- echo: a\n  readme: b\n")

	result := f.run(run.RunOptions{})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, errors.ErrRecipeParse, result.Errors[0].Kind)
}

func TestFailingStepStopsRun(t *testing.T) {
	f := newFixture(t, "- echo: before\n- echo:\n    nested: true\n- echo: after\n")

	result := f.run(run.RunOptions{})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, errors.ErrInvalidArguments, result.Errors[0].Kind)
	assert.Equal(t, "before\n", f.Out.String())
}

type panicking struct{}

func (panicking) Call(context.Context) error { panic(fmt.Errorf("kaboom")) }

type failing struct{}

func (failing) Call(context.Context) error { return os.ErrPermission }

func customResolver(t *testing.T) *plugin.Resolver {
	t.Helper()
	reg := registry.New[plugin.Factory]("plugin")
	require.NoError(t, reg.Register("explode", func(types.Value, plugin.Env) (plugin.Plugin, error) {
		return panicking{}, nil
	}))
	require.NoError(t, reg.Register("deny", func(types.Value, plugin.Env) (plugin.Plugin, error) {
		return failing{}, nil
	}))
	return plugin.NewResolver(plugin.ResolverOptions{Registry: reg})
}

func TestPanicIsRecovered(t *testing.T) {
	f := newFixture(t, "- explode:\n")

	var result *types.CommandResult
	assert.NotPanics(t, func() {
		result = f.run(run.RunOptions{Resolver: customResolver(t)})
	})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, errors.ErrUnknown, result.Errors[0].Kind)
	assert.Equal(t, "*errors.errorString: kaboom", result.Errors[0].Message)
}

func TestUncodedErrorsAreClassified(t *testing.T) {
	f := newFixture(t, "- deny:\n")

	result := f.run(run.RunOptions{Resolver: customResolver(t)})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, errors.ErrUnknown, result.Errors[0].Kind)
	assert.Equal(t, "*errors.errorString: permission denied", result.Errors[0].Message)
}

func TestClassify(t *testing.T) {
	notFound := run.Classify(fmt.Errorf("open x: %w", os.ErrNotExist))
	assert.Equal(t, errors.ErrFileNotFound, notFound.Kind)

	coded := run.Classify(errors.Conflict("recipe.yml"))
	assert.Equal(t, types.CommandError{Kind: errors.ErrFileWriteConflict, Message: "could not create file recipe.yml"}, coded)
}

func TestRemoteRecipe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("- echo: from the network\n"))
	}))
	defer srv.Close()

	f := newFixture(t, "[]")
	result := f.run(run.RunOptions{Source: srv.URL + "/recipe.yml"})
	require.True(t, result.Success(), result.Summary())
	assert.Equal(t, "from the network\n", f.Out.String())
}

func TestScriptedPluginStep(t *testing.T) {
	dir := t.TempDir()
	script := `package main

import (
	"fmt"
	"io"
)

func Call(args map[string]interface{}, out io.Writer) error {
	_, err := fmt.Fprintf(out, "scripted %v\n", args["value"])
	return err
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shout.go"), []byte(script), 0644))

	f := newFixture(t, "- echo: builtin\n- shout: hello\n")
	result := f.run(run.RunOptions{Loaders: []plugin.Loader{scripted.NewLoader(dir)}})
	require.True(t, result.Success(), result.Summary())
	assert.Equal(t, "builtin\nscripted hello\n", f.Out.String())
}
