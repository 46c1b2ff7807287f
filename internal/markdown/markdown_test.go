package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTML(t *testing.T) {
	out, err := New().ToHTML("# Title\n\n- Alice\n- Bob\n")
	require.NoError(t, err)
	assert.Contains(t, out, `<h1 id="title">Title</h1>`)
	assert.Contains(t, out, "<li>Alice</li>")
	assert.Contains(t, out, "<li>Bob</li>")
}

func TestToHTMLIsPure(t *testing.T) {
	r := New()
	src := "## Results\n\n## Results\n"
	first, err := r.ToHTML(src)
	require.NoError(t, err)
	second, err := r.ToHTML(src)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, first, `id="results-1"`)
}

func TestRawHTMLPassesThrough(t *testing.T) {
	out, err := New().ToHTML("Intro\n\n<div class=\"figure\"><svg></svg></div>\n")
	require.NoError(t, err)
	assert.Contains(t, out, `<div class="figure"><svg></svg></div>`)
}

func TestRenderHeadingsWithPrefix(t *testing.T) {
	src := "# Read latency\n\ntext\n\n## Setup *and* tuning\n\n### Deep\n"
	out, headings, err := New().Render(src, Options{IDPrefix: "results"})
	require.NoError(t, err)

	require.Len(t, headings, 3)
	assert.Equal(t, Heading{Level: 1, ID: "results-read-latency", Text: "Read latency"}, headings[0])
	assert.Equal(t, Heading{Level: 2, ID: "results-setup-and-tuning", Text: "Setup and tuning"}, headings[1])
	assert.Equal(t, 3, headings[2].Level)
	assert.Contains(t, out, `id="results-read-latency"`)
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Hello World":     "hello-world",
		"  --x--  ":       "x",
		"BIOS: settings!": "bios-settings",
		"???":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug([]byte(in)), in)
	}
}
