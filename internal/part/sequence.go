package part

import (
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/perfreport/internal/config"
	"git.home.luguber.info/inful/perfreport/internal/figure"
	foundationerrors "git.home.luguber.info/inful/perfreport/internal/foundation/errors"
	"git.home.luguber.info/inful/perfreport/internal/logfields"
	"git.home.luguber.info/inful/perfreport/internal/templates"
)

// PreambleName is the name of the mandatory first part.
const PreambleName = "preamble"

// Sequence builds the ordered part list of a report: the preamble, bound to
// the whole normalized configuration, followed by one part per name, each
// bound only to the figure index.
func Sequence(env templates.Environment, md DocumentRenderer, cfg *config.Normalized, index figure.Index, names []string) ([]Part, error) {
	for _, name := range names {
		if err := ValidateName(name); err != nil {
			return nil, err
		}
	}

	preamble := New(env, md, PreambleName)
	// No per-part overrides exist yet.
	vars, err := preamble.ProcessVariables(cfg.Variables(), map[string]any{})
	if err != nil {
		return nil, err
	}
	preamble.SetVariables(vars)

	parts := make([]Part, 0, len(names)+1)
	parts = append(parts, preamble)
	for _, name := range names {
		p := New(env, md, name)
		p.SetVariables(map[string]any{"figure": index})
		parts = append(parts, p)
		slog.Debug("Part loaded", logfields.Part(name))
	}
	return parts, nil
}

// ValidateName rejects part names that cannot be used as a template file
// name and an HTML id.
func ValidateName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\ "'<>`) || name == "." || name == ".." {
		return foundationerrors.ValidationError("invalid part name").
			WithContext("part", name).
			Build()
	}
	return nil
}
