package templates

import (
	"embed"
	"errors"
	"io/fs"
	"os"
)

//go:embed defaults/*
var embedded embed.FS

// Defaults returns the embedded default templates.
func Defaults() fs.FS {
	sub, err := fs.Sub(embedded, "defaults")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewLoader returns the embedded defaults overlaid by dir. An empty dir
// yields the defaults alone.
func NewLoader(dir string) fs.FS {
	if dir == "" {
		return Defaults()
	}
	return Overlay(os.DirFS(dir), Defaults())
}

// Overlay returns an fs.FS that opens a name from the first layer holding it.
func Overlay(layers ...fs.FS) fs.FS {
	return overlayFS(layers)
}

type overlayFS []fs.FS

func (o overlayFS) Open(name string) (fs.File, error) {
	var firstErr error
	for _, layer := range o {
		f, err := layer.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
