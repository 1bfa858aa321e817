package scripted

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/quicken/pkg/errors"
	"github.com/arthur-debert/quicken/pkg/plugin"
	"github.com/arthur-debert/quicken/pkg/types"
	"github.com/arthur-debert/quicken/pkg/ui"
)

const greetSource = `package main

import (
	"fmt"
	"io"
)

func Call(args map[string]interface{}, out io.Writer) error {
	_, err := fmt.Fprintf(out, "Hello %v\n", args["name"])
	return err
}
`

const echoValueSource = `package main

import (
	"fmt"
	"io"
)

func Call(args map[string]interface{}, out io.Writer) error {
	_, err := fmt.Fprintln(out, args["value"])
	return err
}
`

const failingSource = `package main

import (
	"errors"
	"io"
)

func Call(args map[string]interface{}, out io.Writer) error {
	return errors.New("refusing to run")
}
`

func writeScript(t *testing.T, dir, name, source string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(source), 0644))
}

func callScript(t *testing.T, loader *Loader, name string, args types.Value) (string, error) {
	t.Helper()
	factory, err := loader.Load(name)
	require.NoError(t, err)

	var buf bytes.Buffer
	p, err := factory(args, plugin.Env{Console: &ui.Console{Out: &buf}})
	require.NoError(t, err)

	err = p.Call(context.Background())
	return buf.String(), err
}

func TestLoadAndCall(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "greet.go", greetSource)
	loader := NewLoader(dir)

	out, err := callScript(t, loader, "greet", types.Map(types.Entry{Key: "name", Value: types.String("world")}))
	require.NoError(t, err)
	assert.Equal(t, "Hello world\n", out)
}

func TestScalarArgumentsUnderValueKey(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "shout.go", echoValueSource)
	loader := NewLoader(dir)

	out, err := callScript(t, loader, "shout", types.String("hey"))
	require.NoError(t, err)
	assert.Equal(t, "hey\n", out)
}

func TestScriptErrorIsReturned(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "fail.go", failingSource)
	loader := NewLoader(dir)

	_, err := callScript(t, loader, "fail", types.Absent())
	require.Error(t, err)
	assert.Equal(t, "refusing to run", err.Error())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "broken.go", "package main\n\nfunc Call( {\n")
	writeScript(t, dir, "wrongsig.go", "package main\n\nfunc Call(name string) string { return name }\n")
	writeScript(t, dir, "empty.go", "   \n")
	loader := NewLoader(dir)

	tests := []struct {
		name string
		code errors.ErrorCode
	}{
		{"missing", errors.ErrPluginNotFound},
		{"broken", errors.ErrPluginLoad},
		{"wrongsig", errors.ErrPluginLoad},
		{"empty", errors.ErrPluginLoad},
		{"../escape", errors.ErrPluginNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory, err := loader.Load(tt.name)
			assert.Nil(t, factory)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestScriptWithoutCallWarns(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "greet.go", "package main\n")
	writeScript(t, dir, "helper.go", "package main\n\nfunc Other() {}\n")
	loader := NewLoader(dir)

	for _, name := range []string{"greet", "helper"} {
		t.Run(name, func(t *testing.T) {
			out, err := callScript(t, loader, name, types.Absent())
			require.NoError(t, err)
			assert.Contains(t, out, "WARNING: "+plugin.Camelize(name)+" not implemented")
		})
	}
}

func TestScriptWithoutCallThroughResolver(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "greet.go", "package main\n")

	r := plugin.NewResolver(plugin.ResolverOptions{Loaders: []plugin.Loader{NewLoader(dir)}})
	cfg, err := r.Resolve("greet", types.Absent())
	require.NoError(t, err)

	var buf bytes.Buffer
	p, err := cfg.Instantiate(plugin.Env{Console: &ui.Console{Out: &buf}})
	require.NoError(t, err)
	require.NoError(t, p.Call(context.Background()))
	assert.Contains(t, buf.String(), "WARNING: Greet not implemented")
}

func TestNoDirectoryConfigured(t *testing.T) {
	loader := NewLoader("")

	_, err := loader.Load("greet")
	assert.True(t, errors.IsErrorCode(err, errors.ErrPluginNotFound))

	names, err := loader.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "greet.go", greetSource)
	writeScript(t, dir, "alpha.go", greetSource)
	writeScript(t, dir, "notes.txt", "not a plugin")
	writeScript(t, dir, "greet_test.go", "package main\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.go"), 0755))

	loader := NewLoader(dir)
	names, err := loader.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "greet"}, names)
	assert.Equal(t, Source, loader.Source())
	assert.Equal(t, dir, loader.Dir())

	missing := NewLoader(filepath.Join(dir, "nope"))
	names, err = missing.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestResolverUsesLoader(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "greet.go", greetSource)

	r := plugin.NewResolver(plugin.ResolverOptions{Loaders: []plugin.Loader{NewLoader(dir)}})
	cfg, err := r.Resolve("greet", types.Map(types.Entry{Key: "Name", Value: types.String("you")}))
	require.NoError(t, err)
	assert.Equal(t, Source, cfg.Source)

	var buf bytes.Buffer
	p, err := cfg.Instantiate(plugin.Env{Console: &ui.Console{Out: &buf}})
	require.NoError(t, err)
	require.NoError(t, p.Call(context.Background()))
	assert.Equal(t, "Hello you\n", buf.String())
}
