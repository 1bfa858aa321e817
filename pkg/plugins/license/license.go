// Package license implements the license plugin, which writes a LICENSE file
// from one of the embedded license texts.
package license

import (
	"context"
	"embed"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/quicken/pkg/errors"
	"github.com/arthur-debert/quicken/pkg/filesystem"
	"github.com/arthur-debert/quicken/pkg/plugin"
	"github.com/arthur-debert/quicken/pkg/template"
	"github.com/arthur-debert/quicken/pkg/types"
)

// Name is the recipe step name of the plugin
const Name = "license"

// DefaultPath is where the license is written unless path is given
const DefaultPath = "LICENSE"

// Messages printed after the write
const (
	MsgSkipped = "LICENSE already present. Skipping..."
	MsgCreated = "Created LICENSE file"
)

//go:embed templates/*.txt
var templatesFS embed.FS

var knownOptions = map[string]bool{
	"name":        true,
	"author_name": true,
	"year":        true,
	"force":       true,
	"path":        true,
}

// now is replaced in tests
var now = time.Now

func init() {
	plugin.MustRegister(Name, New)
}

// Supported lists the license identifiers that have a bundled text
func Supported() []string {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, strings.TrimSuffix(e.Name(), ".txt"))
	}
	sort.Strings(ids)
	return ids
}

// License writes a LICENSE file
type License struct {
	plugin.Base
	id    string
	text  *template.Template
	vars  map[string]string
	force bool
	path  string
}

// New accepts either a license identifier or a mapping with name,
// author_name, year, force and path.
func New(args types.Value, env plugin.Env) (plugin.Plugin, error) {
	var (
		id, author, year, path string
		force                  bool
		err                    error
	)

	switch args.Kind() {
	case types.KindString:
		id, _ = args.AsString()
	case types.KindMap:
		for _, key := range args.Keys() {
			if !knownOptions[key] {
				return nil, errors.Newf(errors.ErrInvalidArguments, "license: unknown option %q", key).
					WithDetail("plugin", Name)
			}
		}
		if id, err = args.OptionalString("name"); err != nil {
			return nil, err
		}
		if author, err = args.OptionalString("author_name"); err != nil {
			return nil, err
		}
		if year, err = args.OptionalString("year"); err != nil {
			return nil, err
		}
		if path, err = args.OptionalString("path"); err != nil {
			return nil, err
		}
		if force, err = args.OptionalBool("force"); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Newf(errors.ErrInvalidArguments,
			"license expects a license name or a mapping, got %s", args.Kind()).
			WithDetail("plugin", Name)
	}

	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return nil, errors.New(errors.ErrInvalidArguments, "license: missing license name").
			WithDetail("plugin", Name)
	}

	raw, err := templatesFS.ReadFile("templates/" + id + ".txt")
	if err != nil {
		return nil, errors.Newf(errors.ErrInvalidArguments,
			"license: unsupported license %q (supported: %s)", id, strings.Join(Supported(), ", ")).
			WithDetail("plugin", Name)
	}

	text, err := template.Parse(Name+"/"+id, string(raw))
	if err != nil {
		return nil, err
	}

	if year == "" {
		year = strconv.Itoa(now().Year())
	}
	if path == "" {
		path = DefaultPath
	}

	return &License{
		Base:  plugin.NewBase(Name, env),
		id:    id,
		text:  text,
		vars:  map[string]string{"year": year, "author_name": author},
		force: force,
		path:  path,
	}, nil
}

// Call renders the license and writes the file
func (l *License) Call(ctx context.Context) error {
	logger := l.Logger()
	logger.Info().Str("license", l.id).Str("path", l.path).Msg("Creating LICENSE file")

	content, err := l.text.Compile(l.vars)
	if err != nil {
		return err
	}

	outcome, err := l.WriteFile(l.path, content, l.force)
	if err != nil {
		return err
	}

	if outcome == filesystem.AlreadyExists {
		l.Say(MsgSkipped)
	} else {
		l.Say(MsgCreated)
	}
	return nil
}
