package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/eugenenazirov/compilerconf/internal/catalog"
	"github.com/eugenenazirov/compilerconf/internal/compilerconfig"
)

func TestBuildPlan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		configure func(cfg *compilerconfig.Configuration)
		want      Plan
	}{
		{
			name: "Minimal",
			want: Plan{
				Module:     "main",
				Target:     catalog.ES5,
				ModuleKind: catalog.Plain,
				Outputs:    []string{filepath.Join("out", "main.js")},
				Libraries:  []string{"lib/stdlib.klib"},
			},
		},
		{
			name: "SourceMapAndMetaInfo",
			configure: func(cfg *compilerconfig.Configuration) {
				compilerconfig.Put(cfg, catalog.SourceMap, true)
				compilerconfig.Put(cfg, catalog.MetaInfo, true)
				compilerconfig.Put(cfg, catalog.ModuleKindKey, catalog.UMD)
				compilerconfig.Put(cfg, catalog.TypedArrays, true)
			},
			want: Plan{
				Module:      "main",
				Target:      catalog.ES5,
				ModuleKind:  catalog.UMD,
				TypedArrays: true,
				Outputs: []string{
					filepath.Join("out", "main.js"),
					filepath.Join("out", "main.js.map"),
					filepath.Join("out", "main.meta.js"),
					filepath.Join("out", "main") + string(filepath.Separator),
				},
				Libraries: []string{"lib/stdlib.klib"},
			},
		},
		{
			name: "NoLibrariesNoOutputDir",
			configure: func(cfg *compilerconfig.Configuration) {
				compilerconfig.Put(cfg, catalog.Libraries, nil)
				cfg.Remove(catalog.OutputDir)
			},
			want: Plan{
				Module:     "main",
				Target:     catalog.ES5,
				ModuleKind: catalog.Plain,
				Outputs:    []string{"main.js"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := baseConfiguration()
			if tc.configure != nil {
				tc.configure(cfg)
			}

			got, err := BuildPlan(cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Module != tc.want.Module || got.Target != tc.want.Target ||
				got.ModuleKind != tc.want.ModuleKind || got.TypedArrays != tc.want.TypedArrays {
				t.Fatalf("unexpected plan: got %+v want %+v", got, tc.want)
			}
			if !slices.Equal(got.Outputs, tc.want.Outputs) {
				t.Fatalf("unexpected outputs: got %v want %v", got.Outputs, tc.want.Outputs)
			}
			if !slices.Equal(got.Libraries, tc.want.Libraries) {
				t.Fatalf("unexpected libraries: got %v want %v", got.Libraries, tc.want.Libraries)
			}
		})
	}
}

func TestBuildPlanRequiresModuleName(t *testing.T) {
	t.Parallel()

	if _, err := BuildPlan(compilerconfig.New()); !errors.Is(err, ErrModuleNameMissing) {
		t.Fatalf("expected ErrModuleNameMissing, got %v", err)
	}
}

func TestEmitPlannerRecordsIntoSink(t *testing.T) {
	t.Parallel()

	sink := &PlanSink{}
	planner := EmitPlanner{Sink: sink}
	if planner.Name() != "emit-plan" {
		t.Fatalf("unexpected phase name %q", planner.Name())
	}

	if err := planner.Run(context.Background(), baseConfiguration().Snapshot()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plans := sink.Plans(); len(plans) != 1 || plans[0].Module != "main" {
		t.Fatalf("unexpected plans: %+v", plans)
	}
}

func TestEmitPlannerStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &PlanSink{}
	err := EmitPlanner{Sink: sink}.Run(ctx, baseConfiguration().Snapshot())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if plans := sink.Plans(); len(plans) != 0 {
		t.Fatalf("expected no plans recorded, got %+v", plans)
	}
}
