package figure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnippetFragmentUnchanged(t *testing.T) {
	out, err := Snippet([]byte("  <div id=\"plot\"></div>\n"))
	require.NoError(t, err)
	assert.Equal(t, `<div id="plot"></div>`, out)
}

func TestSnippetExtractsBody(t *testing.T) {
	doc := `<!DOCTYPE html>
<html>
<head><title>x</title><script src="plot.js"></script></head>
<body><div id="plot"></div><script>draw()</script></body>
</html>`
	out, err := Snippet([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, `<script src="plot.js"></script><div id="plot"></div><script>draw()</script>`, out)
	assert.NotContains(t, out, "<title>")
}

func TestFileFigureReadsSnippet(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "figures"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "figures", "lat.html"), []byte("<p>lat</p>\n"), 0o600))

	f := NewFileFigure("lat", "read", "figures/lat.html", dir)
	assert.Equal(t, "lat", f.File())
	assert.Equal(t, "read", f.Key())

	html, err := f.HTML()
	require.NoError(t, err)
	assert.Equal(t, "<p>lat</p>", html)
}

func TestFileFigureMissingFile(t *testing.T) {
	_, err := NewFileFigure("lat", "read", "missing.html", t.TempDir()).HTML()
	require.Error(t, err)
}

func TestFileFigureImage(t *testing.T) {
	f := NewFileFigure("bw", "write", "figures/bw write.png", "/unused")
	html, err := f.HTML()
	require.NoError(t, err)
	assert.Equal(t, `<img src="figures/bw write.png" alt="bw write">`, html)

	f.Title = `Bandwidth "write"`
	html, err = f.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, `alt="Bandwidth &#34;write&#34;"`)
}
