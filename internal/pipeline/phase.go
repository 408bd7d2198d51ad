package pipeline

import (
	"context"

	"github.com/eugenenazirov/compilerconf/internal/compilerconfig"
)

// Phase is one pipeline stage. It reads settings from the configuration it is
// given and must not retain it past Run.
type Phase interface {
	Name() string
	Run(ctx context.Context, cfg *compilerconfig.Configuration) error
}

// PhaseFunc adapts a function to the Phase interface.
type PhaseFunc struct {
	PhaseName string
	Fn        func(ctx context.Context, cfg *compilerconfig.Configuration) error
}

func (p PhaseFunc) Name() string {
	return p.PhaseName
}

func (p PhaseFunc) Run(ctx context.Context, cfg *compilerconfig.Configuration) error {
	return p.Fn(ctx, cfg)
}

// Module describes one unit compiled from a shared baseline configuration.
// Configure, when set, adjusts the module's private copy before any phase runs.
type Module struct {
	Name      string
	Configure func(cfg *compilerconfig.Configuration)
}
