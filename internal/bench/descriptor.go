// Package bench loads the benchmark descriptor a report is built from.
package bench

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/perfreport/internal/config"
	"git.home.luguber.info/inful/perfreport/internal/figure"
	foundationerrors "git.home.luguber.info/inful/perfreport/internal/foundation/errors"
)

// Descriptor is everything one benchmark run contributes to its report.
type Descriptor struct {
	Config    *config.File
	ResultDir string
	Parts     []string
	Figures   []figure.Figure
	// Inputs lists the files the descriptor was assembled from.
	Inputs []string
}

// FigureSpec describes one figure artifact in a descriptor file. Exactly one
// of Path and HTML is expected.
type FigureSpec struct {
	File  string `yaml:"file"`
	Key   string `yaml:"key"`
	Path  string `yaml:"path,omitempty"`
	HTML  string `yaml:"html,omitempty"`
	Title string `yaml:"title,omitempty"`
}

// File is the on-disk form of a descriptor.
type File struct {
	// Config is the path of the report configuration, relative to the descriptor.
	Config    string       `yaml:"config"`
	ResultDir string       `yaml:"result_dir,omitempty"`
	Parts     []string     `yaml:"parts"`
	Figures   []FigureSpec `yaml:"figures"`
}

// Load reads the descriptor at path, then the configuration it names.
// Relative paths are resolved against the descriptor's directory.
func Load(path string) (*Descriptor, error) {
	// #nosec G304 -- path is supplied by the operator.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, foundationerrors.NotFoundError("benchmark descriptor not found").
				WithCause(err).
				WithContext("path", path).
				Build()
		}
		return nil, foundationerrors.FileSystemError("failed to read benchmark descriptor").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, foundationerrors.ConfigError("failed to decode benchmark descriptor").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return f.Resolve(filepath.Dir(path), path)
}

// Resolve turns a decoded descriptor file into a Descriptor. baseDir anchors
// relative paths; origin is recorded as the first input.
func (f *File) Resolve(baseDir, origin string) (*Descriptor, error) {
	if f.Config == "" {
		return nil, foundationerrors.ConfigError("benchmark descriptor names no configuration").
			WithContext("path", origin).
			Build()
	}

	configPath := resolve(baseDir, f.Config)
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	resultDir := baseDir
	if f.ResultDir != "" {
		resultDir = resolve(baseDir, f.ResultDir)
	}

	d := &Descriptor{
		Config:    cfg,
		ResultDir: resultDir,
		Parts:     append([]string(nil), f.Parts...),
		Inputs:    []string{origin, configPath},
	}
	for i, spec := range f.Figures {
		fig, err := spec.figure(baseDir, resultDir)
		if err != nil {
			ce, _ := foundationerrors.AsClassified(err)
			return nil, ce.WithContext("index", i).WithContext("path", origin)
		}
		if ff, ok := fig.(*figure.FileFigure); ok {
			d.Inputs = append(d.Inputs, resolve(ff.BaseDir, ff.Path))
		}
		d.Figures = append(d.Figures, fig)
	}
	return d, nil
}

func (s FigureSpec) figure(baseDir, resultDir string) (figure.Figure, error) {
	switch {
	case s.File == "" || s.Key == "":
		return nil, foundationerrors.ConfigError("figure needs both file and key").Build()
	case s.Path != "" && s.HTML != "":
		return nil, foundationerrors.ConfigError("figure sets both path and html").
			WithContext("file", s.File).
			WithContext("key", s.Key).
			Build()
	case s.HTML != "":
		return figure.Static{FileName: s.File, KeyName: s.Key, Content: s.HTML}, nil
	case s.Path == "":
		return nil, foundationerrors.ConfigError("figure sets neither path nor html").
			WithContext("file", s.File).
			WithContext("key", s.Key).
			Build()
	}

	// Image references end up in the report written to resultDir, so they
	// are kept relative to it.
	path := s.Path
	if !filepath.IsAbs(path) {
		if rel, err := filepath.Rel(resultDir, filepath.Join(baseDir, path)); err == nil {
			path = rel
		}
	}
	fig := figure.NewFileFigure(s.File, s.Key, path, resultDir)
	fig.Title = s.Title
	return fig, nil
}

func resolve(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
