package application

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/compilerconf/internal/compilerconfig"
	"github.com/eugenenazirov/compilerconf/internal/pipeline"
)

// Options tunes module fan-out.
type Options struct {
	MaxConcurrency int
	DispatchRate   float64
	DispatchBurst  int
}

// App encapsulates the loaded configuration, logger and pipeline driver.
type App struct {
	configuration *compilerconfig.Configuration
	driver        *pipeline.Driver
	logger        *zap.Logger
}

// New wires the application around a loaded configuration. The App takes
// ownership of cfg; callers must not modify it afterwards.
func New(cfg *compilerconfig.Configuration, logger *zap.Logger, opts Options) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	driver := pipeline.NewDriver(logger,
		pipeline.WithMaxConcurrency(opts.MaxConcurrency),
		pipeline.WithDispatchRate(opts.DispatchRate, opts.DispatchBurst),
	)

	logger.Info("configuration loaded", zap.Object("configuration", cfg))

	return &App{
		configuration: cfg,
		driver:        driver,
		logger:        logger,
	}, nil
}

// Configuration returns a read-only snapshot of the loaded configuration.
func (a *App) Configuration() *compilerconfig.Configuration {
	return a.configuration.Snapshot()
}

// Plan computes emission plans. Without module names the loaded configuration
// is planned as a single module; otherwise every name gets its own fork.
func (a *App) Plan(ctx context.Context, moduleNames []string) ([]pipeline.Plan, error) {
	sink := &pipeline.PlanSink{}
	planner := pipeline.EmitPlanner{Sink: sink}

	if len(moduleNames) == 0 {
		if err := a.driver.Run(ctx, a.configuration, planner); err != nil {
			return nil, err
		}
		return sink.Plans(), nil
	}

	modules := make([]pipeline.Module, 0, len(moduleNames))
	for _, name := range moduleNames {
		modules = append(modules, pipeline.Module{Name: name})
	}
	if err := a.driver.RunModules(ctx, a.configuration, modules, planner); err != nil {
		return nil, err
	}

	plans := sink.Plans()
	a.logger.Info("modules planned", zap.Int("modules", len(plans)))
	return plans, nil
}

// WriteConfiguration renders the loaded configuration as YAML, one entry per
// key in declaration order. Keys sharing a display name are told apart by
// their id.
func (a *App) WriteConfiguration(w io.Writer) error {
	node, err := configurationNode(a.configuration)
	if err != nil {
		return err
	}
	return writeYAML(w, node)
}

// WritePlans renders plans as a YAML sequence.
func WritePlans(w io.Writer, plans []pipeline.Plan) error {
	return writeYAML(w, plans)
}

func configurationNode(cfg *compilerconfig.Configuration) (*yaml.Node, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range cfg.Entries() {
		var value yaml.Node
		if err := value.Encode(e.Value); err != nil {
			return nil, fmt.Errorf("encode %q: %w", e.Label, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Label},
			&value,
		)
	}
	return root, nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush YAML: %w", err)
	}
	return nil
}
