// Package figure indexes pre-rendered benchmark figures for use by report parts.
package figure

import (
	"log/slog"

	foundationerrors "git.home.luguber.info/inful/perfreport/internal/foundation/errors"
	"git.home.luguber.info/inful/perfreport/internal/logfields"
)

// Figure is a figure artifact produced outside the report pipeline.
type Figure interface {
	// File is the logical source grouping of the figure.
	File() string
	// Key identifies the figure within its file.
	Key() string
	// HTML renders the figure as an HTML snippet.
	HTML() (string, error)
}

// Index maps file -> key -> rendered HTML.
type Index map[string]map[string]string

// Lookup returns the HTML of the figure stored under file and key.
func (idx Index) Lookup(file, key string) (string, bool) {
	html, ok := idx[file][key]
	return html, ok
}

// Len returns the number of figures in the index.
func (idx Index) Len() int {
	n := 0
	for _, byKey := range idx {
		n += len(byKey)
	}
	return n
}

// BuildIndex renders every figure once and groups the results by file and
// key. A later figure with the same file and key replaces an earlier one.
func BuildIndex(figures []Figure) (Index, error) {
	idx := make(Index)
	for _, f := range figures {
		html, err := f.HTML()
		if err != nil {
			return nil, foundationerrors.FigureError("failed to render figure").
				WithCause(err).
				WithContext("file", f.File()).
				WithContext("key", f.Key()).
				Build()
		}
		byKey, ok := idx[f.File()]
		if !ok {
			byKey = make(map[string]string)
			idx[f.File()] = byKey
		}
		if _, dup := byKey[f.Key()]; dup {
			slog.Debug("Replacing duplicate figure", logfields.FigureFile(f.File()), logfields.FigureKey(f.Key()))
		}
		byKey[f.Key()] = html
	}
	return idx, nil
}

// Static is a figure whose HTML is known up front.
type Static struct {
	FileName string
	KeyName  string
	Content  string
}

func (s Static) File() string          { return s.FileName }
func (s Static) Key() string           { return s.KeyName }
func (s Static) HTML() (string, error) { return s.Content, nil }
