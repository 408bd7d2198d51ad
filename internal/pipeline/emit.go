package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"sync"

	"github.com/eugenenazirov/compilerconf/internal/catalog"
	"github.com/eugenenazirov/compilerconf/internal/compilerconfig"
)

// ErrModuleNameMissing is returned by EmitPlanner when the configuration has
// no module name.
var ErrModuleNameMissing = errors.New("module name is not configured")

// Plan describes what the JavaScript backend would emit for one module.
type Plan struct {
	Module      string              `yaml:"module"`
	Target      catalog.EcmaVersion `yaml:"target"`
	ModuleKind  catalog.ModuleKind  `yaml:"module_kind"`
	TypedArrays bool                `yaml:"typed_arrays"`
	Outputs     []string            `yaml:"outputs"`
	Libraries   []string            `yaml:"libraries,omitempty"`
}

// PlanSink collects plans from concurrently running modules.
type PlanSink struct {
	mu    sync.Mutex
	plans []Plan
}

// Add records a plan.
func (s *PlanSink) Add(plan Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans = append(s.plans, plan)
}

// Plans returns the recorded plans sorted by module name.
func (s *PlanSink) Plans() []Plan {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Plan, len(s.plans))
	copy(out, s.plans)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Module < out[j].Module
	})
	return out
}

// EmitPlanner is a phase that derives the emission plan of a module from the
// JavaScript backend keys.
type EmitPlanner struct {
	Sink *PlanSink
}

func (EmitPlanner) Name() string {
	return "emit-plan"
}

func (p EmitPlanner) Run(ctx context.Context, cfg *compilerconfig.Configuration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	plan, err := BuildPlan(cfg)
	if err != nil {
		return err
	}
	if p.Sink != nil {
		p.Sink.Add(plan)
	}
	return nil
}

// BuildPlan computes the emission plan for cfg.
func BuildPlan(cfg *compilerconfig.Configuration) (Plan, error) {
	name, ok := compilerconfig.Get(cfg, catalog.ModuleName)
	if !ok || name == "" {
		return Plan{}, ErrModuleNameMissing
	}
	outDir := compilerconfig.GetOr(cfg, catalog.OutputDir, ".")

	outputs := []string{filepath.Join(outDir, name+".js")}
	if compilerconfig.GetBool(cfg, catalog.SourceMap) {
		outputs = append(outputs, filepath.Join(outDir, name+".js.map"))
	}
	if compilerconfig.GetBool(cfg, catalog.MetaInfo) {
		outputs = append(outputs,
			filepath.Join(outDir, name+".meta.js"),
			filepath.Join(outDir, name)+string(filepath.Separator),
		)
	}

	plan := Plan{
		Module:      name,
		Target:      compilerconfig.GetOr(cfg, catalog.Target, catalog.DefaultEcmaVersion()),
		ModuleKind:  compilerconfig.GetOr(cfg, catalog.ModuleKindKey, catalog.Plain),
		TypedArrays: compilerconfig.GetBool(cfg, catalog.TypedArrays),
		Outputs:     outputs,
	}
	if libs := compilerconfig.GetList(cfg, catalog.Libraries); len(libs) > 0 {
		plan.Libraries = libs
	}
	return plan, nil
}
