package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	foundationerrors "git.home.luguber.info/inful/perfreport/internal/foundation/errors"
	"git.home.luguber.info/inful/perfreport/internal/logfields"
	"git.home.luguber.info/inful/perfreport/internal/metrics"
	"git.home.luguber.info/inful/perfreport/internal/report"
	"git.home.luguber.info/inful/perfreport/internal/watch"
)

// CreateCmd implements the 'create' command.
type CreateCmd struct {
	TemplateFlags

	Bench       string   `arg:"" help:"Benchmark descriptor (YAML or JSON)" type:"existingfile"`
	Output      []string `short:"o" help:"Report name, written as <result_dir>/<name>.html. Repeatable." default:"report"`
	MetricsFile string   `name:"metrics-file" help:"Write Prometheus metrics in textfile format to this path" env:"PERFREPORT_METRICS_FILE"`
	Watch       bool     `short:"w" help:"Keep running and rebuild whenever an input changes"`
}

func (c *CreateCmd) Run(g *Global, _ *CLI) error {
	if c.Watch {
		return c.watch(g)
	}
	_, err := c.build(g)
	return err
}

// build runs one complete report build and returns the inputs it read.
func (c *CreateCmd) build(g *Global) ([]string, error) {
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prometheus *metrics.PrometheusRecorder
	if c.MetricsFile != "" {
		prometheus = metrics.NewPrometheusRecorder(prom.NewRegistry())
		recorder = prometheus
	}

	inputs, err := c.createReports(g, recorder)

	if prometheus != nil {
		if werr := prometheus.WriteTextfile(c.MetricsFile); werr != nil {
			g.Logger.Warn("Failed to write metrics textfile", logfields.Path(c.MetricsFile), logfields.Error(werr))
		}
	}
	return inputs, err
}

func (c *CreateCmd) createReports(g *Global, recorder metrics.Recorder) ([]string, error) {
	for _, name := range c.Output {
		if err := report.ValidateOutputName(name); err != nil {
			return nil, err
		}
	}

	desc, err := loadDescriptor(g, c.Bench)
	if err != nil {
		return nil, err
	}

	r, err := report.New(c.Environment(), newMarkdown(), desc,
		report.WithLogger(g.Logger),
		report.WithRecorder(recorder))
	if err != nil {
		return desc.Inputs, err
	}

	for _, name := range c.Output {
		path, err := r.Create(name)
		if err != nil {
			return desc.Inputs, err
		}
		_, _ = fmt.Fprintln(g.Stdout, path)
	}
	return desc.Inputs, nil
}

func (c *CreateCmd) watch(g *Global) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	w, err := watch.New(func(context.Context) ([]string, error) {
		inputs, err := c.build(g)
		if len(inputs) == 0 {
			// The descriptor itself could not be read; keep watching it.
			inputs = []string{c.Bench}
		}
		return inputs, err
	}, watch.DefaultDebounce)
	if err != nil {
		return foundationerrors.RuntimeError("failed to start watcher").WithCause(err).Build()
	}
	if c.Templates != "" {
		if err := w.AddTemplateDir(c.Templates); err != nil {
			return foundationerrors.RuntimeError("failed to watch templates").WithCause(err).Build()
		}
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go w.TriggerOn(ctx, hup)

	g.Logger.Info("Watching report inputs, press Ctrl+C to stop or send SIGHUP to rebuild", logfields.Path(c.Bench))
	return w.Run(ctx)
}
