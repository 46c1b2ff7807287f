package templates

import (
	"bytes"
	"errors"
	"io/fs"
	"text/template"

	foundationerrors "git.home.luguber.info/inful/perfreport/internal/foundation/errors"
)

// Well-known template names.
const (
	HeaderTemplate  = "report_header.md"
	LayoutTemplate  = "layout.html"
	KVTableTemplate = "kvtable.html"
)

// PartTemplate returns the template name of the part called name.
func PartTemplate(name string) string {
	return "part_" + name + ".md"
}

// Template is a resolved, renderable template.
type Template interface {
	Render(vars map[string]any) (string, error)
}

// Environment resolves templates by name.
type Environment interface {
	Lookup(name string) (Template, error)
}

// Option configures an FSEnvironment.
type Option func(*FSEnvironment)

// WithStrict makes references to missing map keys a render error.
func WithStrict(strict bool) Option {
	return func(e *FSEnvironment) {
		if strict {
			e.missingKey = "missingkey=error"
		} else {
			e.missingKey = "missingkey=zero"
		}
	}
}

// WithFuncs adds template functions on top of the builtin ones.
func WithFuncs(funcs template.FuncMap) Option {
	return func(e *FSEnvironment) {
		for k, v := range funcs {
			e.funcs[k] = v
		}
	}
}

// FSEnvironment is an Environment reading templates from an fs.FS. It holds
// no mutable state after construction and can be shared between builds.
type FSEnvironment struct {
	loader     fs.FS
	funcs      template.FuncMap
	missingKey string
}

// NewEnvironment creates an environment over loader.
func NewEnvironment(loader fs.FS, opts ...Option) *FSEnvironment {
	e := &FSEnvironment{
		loader:     loader,
		funcs:      builtinFuncs(),
		missingKey: "missingkey=zero",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Lookup reads and parses the template called name.
func (e *FSEnvironment) Lookup(name string) (Template, error) {
	body, err := fs.ReadFile(e.loader, name)
	if err != nil {
		msg := "failed to read template"
		if errors.Is(err, fs.ErrNotExist) {
			msg = "template not found"
		}
		return nil, foundationerrors.TemplateError(msg).
			WithCause(err).
			WithContext("template", name).
			Build()
	}

	tpl, err := template.New(name).Funcs(e.funcs).Option(e.missingKey).Parse(string(body))
	if err != nil {
		return nil, foundationerrors.TemplateError("failed to parse template").
			WithCause(err).
			WithContext("template", name).
			Build()
	}
	return &textTemplate{name: name, tpl: tpl}, nil
}

type textTemplate struct {
	name string
	tpl  *template.Template
}

func (t *textTemplate) Render(vars map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := t.tpl.Execute(&buf, vars); err != nil {
		return "", foundationerrors.TemplateError("failed to render template").
			WithCause(err).
			WithContext("template", t.name).
			Build()
	}
	return buf.String(), nil
}

// Render resolves name in env and renders it with vars.
func Render(env Environment, name string, vars map[string]any) (string, error) {
	tpl, err := env.Lookup(name)
	if err != nil {
		return "", err
	}
	return tpl.Render(vars)
}
