package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/perfreport/internal/config"
	foundationerrors "git.home.luguber.info/inful/perfreport/internal/foundation/errors"
)

const configJSON = `{"report": {"configuration": {"common": {}, "target": {}, "bios": {"settings": {}, "excerpt": {}}}}}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadDescriptor(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json"), configJSON)
	writeFile(t, filepath.Join(dir, "figures", "lat.html"), "<p>lat</p>")
	writeFile(t, filepath.Join(dir, "bench.yaml"), `
config: config.json
parts: [intro, results]
figures:
  - {file: lat, key: read, path: figures/lat.html}
  - {file: lat, key: note, html: "<em>n</em>"}
  - {file: bw, key: write, path: figures/bw.png, title: Bandwidth}
`)

	d, err := Load(filepath.Join(dir, "bench.yaml"))
	require.NoError(t, err)

	assert.Equal(t, dir, d.ResultDir)
	assert.Equal(t, []string{"intro", "results"}, d.Parts)
	require.Len(t, d.Figures, 3)
	assert.NotNil(t, d.Config)

	html, err := d.Figures[0].HTML()
	require.NoError(t, err)
	assert.Equal(t, "<p>lat</p>", html)

	html, err = d.Figures[1].HTML()
	require.NoError(t, err)
	assert.Equal(t, "<em>n</em>", html)

	html, err = d.Figures[2].HTML()
	require.NoError(t, err)
	assert.Equal(t, `<img src="figures/bw.png" alt="Bandwidth">`, html)

	assert.Contains(t, d.Inputs, filepath.Join(dir, "config.json"))
	assert.Contains(t, d.Inputs, filepath.Join(dir, "figures", "lat.html"))
}

func TestLoadDescriptorSeparateResultDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json"), configJSON)
	writeFile(t, filepath.Join(dir, "plots", "a.html"), "<p>a</p>")
	writeFile(t, filepath.Join(dir, "bench.yaml"), `
config: config.json
result_dir: out
figures:
  - {file: f, key: a, path: plots/a.html}
`)

	d, err := Load(filepath.Join(dir, "bench.yaml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out"), d.ResultDir)

	html, err := d.Figures[0].HTML()
	require.NoError(t, err)
	assert.Equal(t, "<p>a</p>", html)
}

func TestLoadDescriptorErrors(t *testing.T) {
	cases := map[string]string{
		"no config":    `parts: [a]`,
		"no key":       "config: config.json\nfigures: [{file: f, path: a.html}]",
		"both sources": "config: config.json\nfigures: [{file: f, key: k, path: a.html, html: x}]",
		"no source":    "config: config.json\nfigures: [{file: f, key: k}]",
		"bad yaml":     "config: [",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "config.json"), configJSON)
			writeFile(t, filepath.Join(dir, "bench.yaml"), content)

			_, err := Load(filepath.Join(dir, "bench.yaml"))
			require.Error(t, err)
			assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryConfig), err.Error())
		})
	}
}

func TestLoadDescriptorMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "bench.yaml"))
	require.Error(t, err)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryNotFound))
}

func TestLoadDescriptorPropagatesConfigErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json"), `{"report": {"configuration": {"common": {}}}}`)
	writeFile(t, filepath.Join(dir, "bench.yaml"), "config: config.json\n")

	_, err := Load(filepath.Join(dir, "bench.yaml"))
	path, ok := config.MissingPath(err)
	require.True(t, ok)
	assert.Equal(t, config.PathTarget, path)
}
