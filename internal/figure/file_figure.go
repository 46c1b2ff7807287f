package figure

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FileFigure is a figure stored on disk, either as an HTML snippet or as an
// image.
type FileFigure struct {
	file string
	key  string
	// Path is the location of the artifact. Relative paths are resolved
	// against BaseDir.
	Path    string
	BaseDir string
	// Title is used as alt text for images.
	Title string
}

// NewFileFigure returns a FileFigure for the artifact at path.
func NewFileFigure(file, key, path, baseDir string) *FileFigure {
	return &FileFigure{file: file, key: key, Path: path, BaseDir: baseDir}
}

func (f *FileFigure) File() string { return f.file }
func (f *FileFigure) Key() string  { return f.key }

// HTML reads the artifact. HTML documents are reduced to the children of
// their body; images become an img tag pointing at the artifact.
func (f *FileFigure) HTML() (string, error) {
	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp":
		return f.imageTag(), nil
	}

	full := f.Path
	if !filepath.IsAbs(full) && f.BaseDir != "" {
		full = filepath.Join(f.BaseDir, full)
	}
	// #nosec G304 -- figure paths come from the benchmark descriptor.
	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("read figure %s: %w", full, err)
	}
	return Snippet(data)
}

func (f *FileFigure) imageTag() string {
	alt := f.Title
	if alt == "" {
		alt = f.file + " " + f.key
	}
	return fmt.Sprintf(`<img src="%s" alt="%s">`, html.EscapeString(filepath.ToSlash(f.Path)), html.EscapeString(alt))
}

// Snippet normalizes an HTML artifact into an embeddable fragment. Complete
// documents, as written by most plotting libraries, are reduced to the
// content of their body. Fragments are returned trimmed but otherwise as is.
func Snippet(data []byte) (string, error) {
	trimmed := bytes.TrimSpace(data)
	if !looksLikeDocument(trimmed) {
		return string(trimmed), nil
	}

	doc, err := nethtml.Parse(bytes.NewReader(trimmed))
	if err != nil {
		return "", fmt.Errorf("parse figure document: %w", err)
	}
	body := findElement(doc, atom.Body)
	if body == nil {
		return "", nil
	}

	var buf bytes.Buffer
	// Scripts in head (plotting runtimes) must survive extraction.
	if head := findElement(doc, atom.Head); head != nil {
		for c := head.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == nethtml.ElementNode && c.DataAtom == atom.Script {
				if err := nethtml.Render(&buf, c); err != nil {
					return "", fmt.Errorf("render figure script: %w", err)
				}
			}
		}
	}
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := nethtml.Render(&buf, c); err != nil {
			return "", fmt.Errorf("render figure body: %w", err)
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

func looksLikeDocument(data []byte) bool {
	lower := bytes.ToLower(data[:min(len(data), 512)])
	return bytes.HasPrefix(lower, []byte("<!doctype")) || bytes.Contains(lower, []byte("<html"))
}

func findElement(n *nethtml.Node, a atom.Atom) *nethtml.Node {
	if n.Type == nethtml.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
