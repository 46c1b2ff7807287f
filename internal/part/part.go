// Package part implements the modular content sections a report is made of.
//
// A part renders its markdown template against the variables bound to it.
// The rendered HTML is its content fragment; the headings found on the way
// make up its menu fragment.
package part

import (
	"fmt"
	"html"
	"strings"

	foundationerrors "git.home.luguber.info/inful/perfreport/internal/foundation/errors"
	"git.home.luguber.info/inful/perfreport/internal/markdown"
	"git.home.luguber.info/inful/perfreport/internal/templates"
)

// Part is a report section with independently renderable menu and content
// fragments. Rendering is idempotent for the same bound variables.
type Part interface {
	Name() string
	Menu() (string, error)
	Content() (string, error)
}

// DocumentRenderer converts markdown to HTML and reports the headings found.
type DocumentRenderer interface {
	Render(src string, opts markdown.Options) (string, []markdown.Heading, error)
}

// MenuDepth is the deepest heading level listed in a part menu.
const MenuDepth = 2

// TemplatePart is a Part backed by the template part_<name>.md.
type TemplatePart struct {
	name string
	env  templates.Environment
	md   DocumentRenderer
	vars map[string]any
}

// New creates the part called name. Templates are resolved lazily, on the
// first render.
func New(env templates.Environment, md DocumentRenderer, name string) *TemplatePart {
	return &TemplatePart{name: name, env: env, md: md}
}

// Name returns the part name.
func (p *TemplatePart) Name() string { return p.name }

// SetVariables binds vars to the part, replacing earlier bindings.
func (p *TemplatePart) SetVariables(vars map[string]any) {
	p.vars = vars
}

// Variables returns the bound variables.
func (p *TemplatePart) Variables() map[string]any { return p.vars }

// ProcessVariables prepares a variable tree for this part; see ProcessVariables.
func (p *TemplatePart) ProcessVariables(vars, overrides map[string]any) (map[string]any, error) {
	return ProcessVariables(p.env, vars, overrides)
}

func (p *TemplatePart) render() (string, []markdown.Heading, error) {
	src, err := templates.Render(p.env, templates.PartTemplate(p.name), p.vars)
	if err != nil {
		return "", nil, err
	}
	out, headings, err := p.md.Render(src, markdown.Options{IDPrefix: p.name})
	if err != nil {
		return "", nil, foundationerrors.MarkdownError("failed to convert part").
			WithCause(err).
			WithContext("part", p.name).
			Build()
	}
	return out, headings, nil
}

// Content returns the part body wrapped in a section element.
func (p *TemplatePart) Content() (string, error) {
	out, _, err := p.render()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("<section class=\"part\" id=\"%s\">\n%s</section>\n", html.EscapeString(p.name), out), nil
}

// Menu returns a list of links to the part's top level headings.
func (p *TemplatePart) Menu() (string, error) {
	_, headings, err := p.render()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<ul class=\"menu-part\" data-part=\"%s\">\n", html.EscapeString(p.name))
	for _, h := range headings {
		if h.Level > MenuDepth {
			continue
		}
		fmt.Fprintf(&b, "<li class=\"level-%d\"><a href=\"#%s\">%s</a></li>\n", h.Level, html.EscapeString(h.ID), html.EscapeString(h.Text))
	}
	b.WriteString("</ul>\n")
	return b.String(), nil
}
