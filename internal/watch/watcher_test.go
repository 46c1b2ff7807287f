package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	tplDir := filepath.Join(dir, "templates")
	require.NoError(t, os.Mkdir(tplDir, 0o750))

	w, err := New(func(context.Context) ([]string, error) { return nil, nil }, time.Millisecond)
	require.NoError(t, err)
	defer w.watcher.Close()

	require.NoError(t, w.SetInputs([]string{filepath.Join(dir, "config.json")}))
	require.NoError(t, w.AddTemplateDir(tplDir))

	assert.True(t, w.Relevant(filepath.Join(dir, "config.json")))
	assert.True(t, w.Relevant(filepath.Join(tplDir, "part_new.md")))
	assert.False(t, w.Relevant(filepath.Join(dir, "summary.html")))
}

func TestRunRebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(input, []byte("{}"), 0o600))

	var builds atomic.Int32
	w, err := New(func(context.Context) ([]string, error) {
		builds.Add(1)
		return []string{input}, nil
	}, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return builds.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(input, []byte(`{"a": 1}`), 0o600))
	require.Eventually(t, func() bool { return builds.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)

	current := builds.Load()
	w.Trigger()
	require.Eventually(t, func() bool { return builds.Load() > current }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRunWatchesInputsOfFailedBuild(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"report": {}}`), 0o600))

	var builds atomic.Int32
	w, err := New(func(context.Context) ([]string, error) {
		if builds.Add(1) == 1 {
			return []string{input}, errors.New("config.json misses report.configuration entry")
		}
		return []string{input}, nil
	}, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return builds.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return w.Relevant(input) }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(input, []byte(`{"report": {"configuration": {}}}`), 0o600))
	assert.Eventually(t, func() bool { return builds.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestTriggerOnSignal(t *testing.T) {
	var builds atomic.Int32
	w, err := New(func(context.Context) ([]string, error) {
		builds.Add(1)
		return nil, nil
	}, time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	signals := make(chan os.Signal, 1)
	forwarded := make(chan struct{})
	go func() {
		w.TriggerOn(ctx, signals)
		close(forwarded)
	}()

	require.Eventually(t, func() bool { return builds.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	signals <- syscall.SIGHUP
	require.Eventually(t, func() bool { return builds.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	close(signals)
	select {
	case <-forwarded:
	case <-time.After(2 * time.Second):
		t.Fatal("signal forwarding did not stop")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
