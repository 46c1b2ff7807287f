package figure

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/perfreport/internal/foundation/errors"
)

type countingFigure struct {
	Static
	calls int
	err   error
}

func (c *countingFigure) HTML() (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.Content, nil
}

func TestBuildIndexGroupsByFile(t *testing.T) {
	idx, err := BuildIndex([]Figure{
		Static{FileName: "f", KeyName: "a", Content: "<p>a</p>"},
		Static{FileName: "f", KeyName: "b", Content: "<p>b</p>"},
		Static{FileName: "g", KeyName: "a", Content: "<p>ga</p>"},
	})
	require.NoError(t, err)

	require.Len(t, idx["f"], 2)
	assert.Equal(t, "<p>a</p>", idx["f"]["a"])
	assert.Equal(t, "<p>b</p>", idx["f"]["b"])
	assert.Equal(t, "<p>ga</p>", idx["g"]["a"])
	assert.Equal(t, 3, idx.Len())
}

func TestBuildIndexLastWriteWins(t *testing.T) {
	idx, err := BuildIndex([]Figure{
		Static{FileName: "f", KeyName: "a", Content: "first"},
		Static{FileName: "f", KeyName: "a", Content: "second"},
	})
	require.NoError(t, err)

	html, ok := idx.Lookup("f", "a")
	require.True(t, ok)
	assert.Equal(t, "second", html)
	assert.Equal(t, 1, idx.Len())
}

func TestBuildIndexRendersOnce(t *testing.T) {
	figs := []*countingFigure{
		{Static: Static{FileName: "f", KeyName: "a", Content: "x"}},
		{Static: Static{FileName: "f", KeyName: "b", Content: "y"}},
	}
	_, err := BuildIndex([]Figure{figs[0], figs[1]})
	require.NoError(t, err)
	for _, f := range figs {
		assert.Equal(t, 1, f.calls)
	}
}

func TestBuildIndexEmpty(t *testing.T) {
	idx, err := BuildIndex(nil)
	require.NoError(t, err)
	assert.Empty(t, idx)
	_, ok := idx.Lookup("f", "a")
	assert.False(t, ok)
}

func TestBuildIndexPropagatesRenderError(t *testing.T) {
	cause := errors.New("plot crashed")
	_, err := BuildIndex([]Figure{&countingFigure{Static: Static{FileName: "lat", KeyName: "p99"}, err: cause}})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	ce, ok := foundationerrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, foundationerrors.CategoryFigure, ce.Category())
	file, _ := ce.Context().GetString("file")
	key, _ := ce.Context().GetString("key")
	assert.Equal(t, "lat", file)
	assert.Equal(t, "p99", key)
}
