package commands

import (
	"fmt"

	"git.home.luguber.info/inful/perfreport/internal/part"
)

// ValidateCmd implements the 'validate' command. It loads the descriptor and
// the configuration it names without rendering anything.
type ValidateCmd struct {
	Bench string `arg:"" help:"Benchmark descriptor (YAML or JSON)" type:"existingfile"`
}

func (v *ValidateCmd) Run(g *Global, _ *CLI) error {
	desc, err := loadDescriptor(g, v.Bench)
	if err != nil {
		return err
	}
	for _, name := range desc.Parts {
		if err := part.ValidateName(name); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintf(g.Stdout, "%s: ok (%d parts, %d figures, result dir %s)\n",
		v.Bench, len(desc.Parts)+1, len(desc.Figures), desc.ResultDir)
	return nil
}
