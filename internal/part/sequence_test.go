package part

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/perfreport/internal/config"
	"git.home.luguber.info/inful/perfreport/internal/figure"
	"git.home.luguber.info/inful/perfreport/internal/markdown"
)

func normalizedConfig(t *testing.T) *config.Normalized {
	t.Helper()
	f, err := config.Parse([]byte(`
report:
  title: Bench
  configuration:
    common: {cpu: Xeon}
    target: {}
    bios: {settings: {}, excerpt: {}}
`))
	require.NoError(t, err)
	return config.Normalize(f)
}

func TestSequenceOrderAndBindings(t *testing.T) {
	env := newEnv(map[string]string{
		"part_intro.md":   "# Intro\n",
		"part_results.md": "# Results\n",
	})
	index := figure.Index{"f": {"a": "<p>a</p>"}}

	parts, err := Sequence(env, markdown.New(), normalizedConfig(t), index, []string{"intro", "results"})
	require.NoError(t, err)
	require.Len(t, parts, 3)

	names := []string{parts[0].Name(), parts[1].Name(), parts[2].Name()}
	assert.Equal(t, []string{PreambleName, "intro", "results"}, names)

	preamble := parts[0].(*TemplatePart)
	assert.Equal(t, "Bench", preamble.Variables()["title"])
	common := preamble.Variables()["configuration"].(map[string]any)["common"]
	assert.Contains(t, common, `<table class="kvtable">`)
	assert.Contains(t, common, "Xeon")

	for _, p := range parts[1:] {
		vars := p.(*TemplatePart).Variables()
		assert.Len(t, vars, 1)
		assert.Equal(t, index, vars["figure"])
	}
}

func TestSequencePreambleOnly(t *testing.T) {
	parts, err := Sequence(newEnv(nil), markdown.New(), normalizedConfig(t), figure.Index{}, nil)
	require.NoError(t, err)
	require.Len(t, parts, 1)

	content, err := parts[0].Content()
	require.NoError(t, err)
	assert.Contains(t, content, `<section class="part" id="preamble">`)
	assert.Contains(t, content, "<td>Xeon</td>")
}

func TestSequenceRejectsBadNames(t *testing.T) {
	for _, name := range []string{"", "../etc", "a b", ".."} {
		_, err := Sequence(newEnv(nil), markdown.New(), normalizedConfig(t), figure.Index{}, []string{name})
		assert.Error(t, err, name)
	}
}
