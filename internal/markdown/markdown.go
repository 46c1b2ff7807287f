// Package markdown converts report markdown to HTML using goldmark.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	foundationerrors "git.home.luguber.info/inful/perfreport/internal/foundation/errors"
)

// Renderer converts markdown text into HTML. Implementations must be pure.
type Renderer interface {
	ToHTML(src string) (string, error)
}

// Heading is a section heading found while rendering a document.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Options controls how Markdown is parsed and rendered.
type Options struct {
	// IDPrefix is prepended to generated heading ids so several documents can
	// share one page without anchor collisions.
	IDPrefix string
}

// Goldmark is the goldmark-backed Renderer. Raw HTML in the source is passed
// through untouched because figures are embedded as pre-rendered snippets.
type Goldmark struct {
	md goldmark.Markdown
}

// New returns a Goldmark renderer with GitHub flavored extensions enabled.
func New() *Goldmark {
	return &Goldmark{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// ToHTML converts src to HTML.
func (g *Goldmark) ToHTML(src string) (string, error) {
	out, _, err := g.Render(src, Options{})
	return out, err
}

// Render converts src to HTML and returns the headings it contains, in
// document order.
func (g *Goldmark) Render(src string, opts Options) (string, []Heading, error) {
	source := []byte(src)
	ctx := parser.NewContext(parser.WithIDs(newPrefixedIDs(opts.IDPrefix)))
	root := g.md.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	headings := collectHeadings(root, source)

	var buf bytes.Buffer
	if err := g.md.Renderer().Render(&buf, source, root); err != nil {
		return "", nil, foundationerrors.MarkdownError("failed to render markdown").
			WithCause(err).
			Build()
	}
	return buf.String(), headings, nil
}

func collectHeadings(root gmast.Node, source []byte) []Heading {
	var headings []Heading
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		var id string
		if v, found := h.AttributeString("id"); found {
			if b, isBytes := v.([]byte); isBytes {
				id = string(b)
			}
		}
		headings = append(headings, Heading{Level: h.Level, ID: id, Text: plainText(h, source)})
		return gmast.WalkSkipChildren, nil
	})
	return headings
}

// plainText concatenates the text content below n.
func plainText(n gmast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(plainText(c, source))
		}
	}
	return buf.String()
}
