// Package report assembles a benchmark report out of its configuration,
// figures and parts, and writes the final HTML document.
package report

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/perfreport/internal/bench"
	"git.home.luguber.info/inful/perfreport/internal/config"
	"git.home.luguber.info/inful/perfreport/internal/figure"
	foundationerrors "git.home.luguber.info/inful/perfreport/internal/foundation/errors"
	"git.home.luguber.info/inful/perfreport/internal/logfields"
	"git.home.luguber.info/inful/perfreport/internal/markdown"
	"git.home.luguber.info/inful/perfreport/internal/metrics"
	"git.home.luguber.info/inful/perfreport/internal/part"
	"git.home.luguber.info/inful/perfreport/internal/templates"
)

// Markdown is the markdown capability a report needs: plain conversion for
// the header, conversion with heading extraction for parts.
type Markdown interface {
	markdown.Renderer
	part.DocumentRenderer
}

// Report is one report build. It is built once, used by a single caller and
// discarded after Create.
type Report struct {
	env       templates.Environment
	md        Markdown
	config    *config.Normalized
	figures   figure.Index
	resultDir string
	parts     []part.Part

	id       string
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures a Report.
type Option func(*Report)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(rep *Report) {
		if r != nil {
			rep.recorder = r
		}
	}
}

// WithLogger sets the logger. The build id is attached to every record.
func WithLogger(l *slog.Logger) Option {
	return func(rep *Report) {
		if l != nil {
			rep.logger = l
		}
	}
}

// New builds the figure index, normalizes the configuration and sequences
// the parts of b. The figure index is complete before any part exists.
func New(env templates.Environment, md Markdown, b *bench.Descriptor, opts ...Option) (*Report, error) {
	r := &Report{
		env:       env,
		md:        md,
		resultDir: b.ResultDir,
		id:        uuid.NewString(),
		recorder:  metrics.NoopRecorder{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(logfields.BuildID(r.id))

	start := time.Now()
	err := metrics.Track(r.recorder, metrics.StageFigures, func() error {
		idx, err := figure.BuildIndex(b.Figures)
		r.figures = idx
		return err
	})
	if err != nil {
		return nil, r.fail(err)
	}
	r.recorder.SetFigures(r.figures.Len())

	// The typed configuration was validated when it was parsed; normalizing
	// yields a fresh value for this build only.
	err = metrics.Track(r.recorder, metrics.StageConfig, func() error {
		if b.Config == nil {
			return foundationerrors.InternalError("benchmark descriptor has no configuration").Build()
		}
		r.config = config.Normalize(b.Config)
		return nil
	})
	if err != nil {
		return nil, r.fail(err)
	}

	err = metrics.Track(r.recorder, metrics.StageParts, func() error {
		parts, err := part.Sequence(env, md, r.config, r.figures, b.Parts)
		r.parts = parts
		return err
	})
	if err != nil {
		return nil, r.fail(err)
	}
	r.recorder.SetParts(len(r.parts))

	r.logger.Info("Report loaded",
		logfields.ResultDir(r.resultDir),
		logfields.Figures(r.figures.Len()),
		logfields.Parts(len(r.parts)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return r, nil
}

// ID returns the build id attached to logs.
func (r *Report) ID() string { return r.id }

// ResultDir returns the directory reports are written to.
func (r *Report) ResultDir() string { return r.resultDir }

// Parts returns the ordered parts, preamble first.
func (r *Report) Parts() []part.Part {
	return append([]part.Part(nil), r.parts...)
}

// Figures returns the figure index.
func (r *Report) Figures() figure.Index { return r.figures }

// Menu concatenates the menu fragments of all parts in order.
func (r *Report) Menu() (string, error) {
	return r.concat(part.Part.Menu)
}

// Content concatenates the content fragments of all parts in order.
func (r *Report) Content() (string, error) {
	return r.concat(part.Part.Content)
}

func (r *Report) concat(fragment func(part.Part) (string, error)) (string, error) {
	var b strings.Builder
	for _, p := range r.parts {
		s, err := fragment(p)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// Header renders the header template against the report variables and
// converts the result to HTML.
func (r *Report) Header() (string, error) {
	md, err := templates.Render(r.env, templates.HeaderTemplate, r.config.Variables())
	if err != nil {
		return "", err
	}
	return r.md.ToHTML(md)
}

func (r *Report) fail(err error) error {
	r.recorder.IncReportOutcome(metrics.ResultFailed)
	r.logger.Error("Report build failed", logfields.Error(err))
	return err
}
