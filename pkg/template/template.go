// Package template renders the placeholder templates plugins use to produce
// file content. The only construct is a variable reference written
// <%= name %>; anything else in the text is copied verbatim.
package template

import (
	"regexp"
	"strconv"
	"strings"
	gotemplate "text/template"

	"github.com/arthur-debert/quicken/pkg/errors"
)

const (
	openDelim  = "<%="
	closeDelim = "%>"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Template is a parsed template, safe to compile any number of times
type Template struct {
	name   string
	names  []string
	parsed *gotemplate.Template
}

// Parse validates text and prepares it for compilation
func Parse(name, text string) (*Template, error) {
	var rewritten strings.Builder
	var names []string
	seen := make(map[string]bool)

	rest := text
	offset := 0
	for {
		start := strings.Index(rest, openDelim)
		if start < 0 {
			rewritten.WriteString(rest)
			break
		}
		rewritten.WriteString(rest[:start])

		body := rest[start+len(openDelim):]
		end := strings.Index(body, closeDelim)
		if end < 0 {
			return nil, syntaxError(name, offset+start, "unterminated placeholder")
		}

		ident := strings.TrimSpace(body[:end])
		if ident == "" {
			return nil, syntaxError(name, offset+start, "empty placeholder")
		}
		if !identifierPattern.MatchString(ident) {
			return nil, syntaxError(name, offset+start, "invalid placeholder "+strconv.Quote(ident))
		}
		if !seen[ident] {
			seen[ident] = true
			names = append(names, ident)
		}

		rewritten.WriteString(openDelim + " index . " + strconv.Quote(ident) + " " + closeDelim)

		consumed := start + len(openDelim) + end + len(closeDelim)
		rest = rest[consumed:]
		offset += consumed
	}

	parsed, err := gotemplate.New(name).Delims(openDelim, closeDelim).Parse(rewritten.String())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateSyntax, "template %s", name)
	}

	return &Template{name: name, names: names, parsed: parsed}, nil
}

// Name returns the name given at parse time
func (t *Template) Name() string {
	return t.name
}

// Placeholders lists the variable names referenced, in order of first use
func (t *Template) Placeholders() []string {
	return append([]string(nil), t.names...)
}

// Compile substitutes vars into the template. Missing variables render as
// empty text.
func (t *Template) Compile(vars map[string]string) (string, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	var out strings.Builder
	if err := t.parsed.Execute(&out, vars); err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateSyntax, "rendering template %s", t.name)
	}
	return out.String(), nil
}

// Render parses and compiles text in one go
func Render(text string, vars map[string]string) (string, error) {
	t, err := Parse("inline", text)
	if err != nil {
		return "", err
	}
	return t.Compile(vars)
}

func syntaxError(name string, offset int, msg string) error {
	return errors.Newf(errors.ErrTemplateSyntax, "template %s: %s at offset %d", name, msg, offset).
		WithDetail("offset", offset).
		WithDetail("template", name)
}
