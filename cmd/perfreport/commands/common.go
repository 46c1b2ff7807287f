package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/perfreport/internal/bench"
	"git.home.luguber.info/inful/perfreport/internal/markdown"
	"git.home.luguber.info/inful/perfreport/internal/templates"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	// Stdout receives user-facing command output.
	Stdout io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Verbose   bool             `short:"v" help:"Enable verbose logging" env:"PERFREPORT_VERBOSE"`
	LogFormat string           `name:"log-format" help:"Log format (text|json)" default:"text" enum:"text,json" env:"PERFREPORT_LOG_FORMAT"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Create   CreateCmd   `cmd:"" help:"Build a benchmark report and write it to the result directory"`
	Validate ValidateCmd `cmd:"" help:"Check a benchmark descriptor and its report configuration"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(NewLogger(os.Stderr, c.Verbose, c.LogFormat))
	return nil
}

// NewLogger builds the process logger.
func NewLogger(w io.Writer, verbose bool, format string) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// TemplateFlags selects and configures the template environment.
type TemplateFlags struct {
	Templates string `short:"t" help:"Directory whose templates override the embedded defaults" type:"existingdir" env:"PERFREPORT_TEMPLATES"`
	Strict    bool   `help:"Fail on references to missing template variables" env:"PERFREPORT_STRICT"`
}

// Environment returns the template environment described by the flags.
func (f TemplateFlags) Environment() *templates.FSEnvironment {
	return templates.NewEnvironment(templates.NewLoader(f.Templates), templates.WithStrict(f.Strict))
}

// loadDescriptor loads the benchmark descriptor and logs a summary.
func loadDescriptor(g *Global, path string) (*bench.Descriptor, error) {
	desc, err := bench.Load(path)
	if err != nil {
		return nil, err
	}
	g.Logger.Debug("Benchmark descriptor loaded",
		"path", path,
		"parts", len(desc.Parts),
		"figures", len(desc.Figures),
		"result_dir", desc.ResultDir)
	return desc, nil
}

func newMarkdown() *markdown.Goldmark {
	return markdown.New()
}
