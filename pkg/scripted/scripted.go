// Package scripted loads plugins written as Go source files and runs them
// through the yaegi interpreter, so a recipe can use plugins that are not
// compiled into the binary.
//
// A scripted plugin named greet lives in <dir>/greet.go and looks like:
//
//	package main
//
//	import (
//		"fmt"
//		"io"
//	)
//
//	func Call(args map[string]interface{}, out io.Writer) error {
//		_, err := fmt.Fprintf(out, "Hello %v\n", args["name"])
//		return err
//	}
//
// Only the standard library is available to scripts.
package scripted

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/arthur-debert/quicken/pkg/errors"
	"github.com/arthur-debert/quicken/pkg/filesystem"
	"github.com/arthur-debert/quicken/pkg/plugin"
	"github.com/arthur-debert/quicken/pkg/types"
)

// Source labels scripted plugins in listings
const Source = "scripted"

const (
	entryPoint = "Call"
	extension  = ".go"
	// ScalarKey holds a non-mapping step argument in the args map
	ScalarKey = "value"
)

var (
	mapType    = reflect.TypeOf(map[string]interface{}{})
	writerType = reflect.TypeOf((*io.Writer)(nil)).Elem()
	errorType  = reflect.TypeOf((*error)(nil)).Elem()
)

// Loader finds scripted plugins in a directory
type Loader struct {
	dir string
	fs  filesystem.FS
}

// NewLoader returns a loader for dir
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir, fs: filesystem.NewOS()}
}

// Dir returns the directory scripts are loaded from
func (l *Loader) Dir() string { return l.dir }

// Source implements plugin.Loader
func (l *Loader) Source() string { return Source }

// List returns the names of the scripts in the directory. A missing directory
// has no scripts.
func (l *Loader) List() ([]string, error) {
	if strings.TrimSpace(l.dir) == "" {
		return nil, nil
	}
	entries, err := l.fs.ReadDir(l.dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrPluginLoad, "reading plugin directory %s", l.dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != extension {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), extension)
		if strings.HasSuffix(name, "_test") || plugin.ValidateName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Load interprets <dir>/<name>.go and checks that it defines Call
func (l *Loader) Load(name string) (plugin.Factory, error) {
	if err := plugin.ValidateName(name); err != nil {
		return nil, err
	}
	notFound := errors.Newf(errors.ErrPluginNotFound, "plugin %s not found", name).WithDetail("plugin", name)
	if strings.TrimSpace(l.dir) == "" {
		return nil, notFound
	}

	path := filepath.Join(l.dir, name+extension)
	code, err := l.fs.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, notFound
		}
		return nil, errors.Wrapf(err, errors.ErrPluginLoad, "reading %s", path).WithDetail("plugin", name)
	}
	if len(strings.TrimSpace(string(code))) == 0 {
		return nil, errors.Newf(errors.ErrPluginLoad, "%s is empty", path).WithDetail("plugin", name)
	}

	i := interp.New(interp.Options{})
	i.Use(stdlib.Symbols)
	if _, err := i.EvalPath(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrPluginLoad, "interpreting %s", path).WithDetail("plugin", name)
	}
	fn, err := i.Eval(entryPoint)
	if err != nil && isUndefined(err) {
		return newUnimplementedFactory(name), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPluginLoad,
			"%s must define func %s(args map[string]interface{}, out io.Writer) error", path, entryPoint).
			WithDetail("plugin", name)
	}
	if err := checkSignature(fn); err != nil {
		return nil, errors.Wrapf(err, errors.ErrPluginLoad, "%s", path).WithDetail("plugin", name)
	}

	return newFactory(name, fn), nil
}

func checkSignature(fn reflect.Value) error {
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return fmt.Errorf("%s is not a function", entryPoint)
	}
	t := fn.Type()
	if t.NumIn() != 2 || t.NumOut() != 1 ||
		!mapType.AssignableTo(t.In(0)) ||
		t.In(1) != writerType ||
		t.Out(0) != errorType {
		return fmt.Errorf("%s has signature %s, want func(map[string]interface{}, io.Writer) error", entryPoint, t)
	}
	return nil
}

// isUndefined reports whether the script simply lacks an entry point
func isUndefined(err error) bool {
	return strings.Contains(err.Error(), "undefined: "+entryPoint)
}

// unimplemented keeps the default Call of plugin.Base, which warns that the
// plugin is not implemented yet and succeeds.
type unimplemented struct {
	plugin.Base
}

func newUnimplementedFactory(name string) plugin.Factory {
	return func(args types.Value, env plugin.Env) (plugin.Plugin, error) {
		return &unimplemented{Base: plugin.NewBase(name, env)}, nil
	}
}

func newFactory(name string, fn reflect.Value) plugin.Factory {
	return func(args types.Value, env plugin.Env) (plugin.Plugin, error) {
		return &scriptPlugin{
			Base: plugin.NewBase(name, env),
			fn:   fn,
			args: argsMap(args),
		}, nil
	}
}

// argsMap converts step arguments to what scripts receive. Mappings pass
// through, a scalar or list is stored under ScalarKey.
func argsMap(args types.Value) map[string]interface{} {
	switch args.Kind() {
	case types.KindAbsent:
		return map[string]interface{}{}
	case types.KindMap:
		return args.Interface().(map[string]interface{})
	default:
		return map[string]interface{}{ScalarKey: args.Interface()}
	}
}

type scriptPlugin struct {
	plugin.Base
	fn   reflect.Value
	args map[string]interface{}
}

func (p *scriptPlugin) Call(ctx context.Context) error {
	logger := p.Logger()
	logger.Debug().Msg("calling scripted plugin")

	out := p.Env().Console.Out
	if out == nil {
		out = io.Discard
	}
	results := p.fn.Call([]reflect.Value{reflect.ValueOf(p.args), reflect.ValueOf(&out).Elem()})
	if res := results[0]; !res.IsNil() {
		if err, ok := res.Interface().(error); ok {
			return err
		}
	}
	return nil
}
