// Package pipeline runs one generation: it pulls packages from a source,
// builds their symbol tables and streams page plans to a sink.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/simonhull/firebird-suite/heron/pkg/categories"
	"github.com/simonhull/firebird-suite/heron/pkg/diag"
	"github.com/simonhull/firebird-suite/heron/pkg/logger"
	"github.com/simonhull/firebird-suite/heron/pkg/planner"
	"github.com/simonhull/firebird-suite/heron/pkg/source"
	"github.com/simonhull/firebird-suite/heron/pkg/symbols"
)

// RunContext is what a sink knows about the package a plan belongs to.
type RunContext struct {
	RunID      string
	Root       string
	Package    *planner.Package
	Tree       *symbols.Tree
	Categories *categories.Index
}

// Sink consumes plans in emission order. An error drops that page only.
type Sink func(plan planner.PagePlan, rc *RunContext) error

// Result summarises a run.
type Result struct {
	RunID    string `json:"run_id"`
	Pages    int    `json:"pages"`
	Packages int    `json:"packages"`
	// Degraded is set when the source was unavailable and nothing was generated.
	Degraded    bool              `json:"degraded"`
	Diagnostics []diag.Diagnostic `json:"diagnostics,omitempty"`
}

// Generator runs generations against one source.
type Generator struct {
	source      source.Source
	root        string
	log         logger.Logger
	plannerOpts []planner.Option
}

// Option configures a Generator.
type Option func(*Generator)

// WithRoot sets the URL root pages are planned under (default "/api").
func WithRoot(root string) Option {
	return func(g *Generator) {
		g.root = root
	}
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(g *Generator) {
		g.log = log
	}
}

// WithPlannerOptions passes options to every run's planner.
func WithPlannerOptions(opts ...planner.Option) Option {
	return func(g *Generator) {
		g.plannerOpts = append(g.plannerOpts, opts...)
	}
}

// New creates a generator reading from src.
func New(src source.Source, opts ...Option) *Generator {
	g := &Generator{
		source: src,
		root:   "/api",
		log:    logger.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run performs one generation. Packages are processed one at a time in the
// order the source lists them, and each plan reaches sink as soon as it is
// planned. Problems with single files, symbols or pages are collected as
// diagnostics. An unavailable source yields a degraded result with zero
// pages and no error; only a failing source listing or a cancelled context
// returns an error.
func (g *Generator) Run(ctx context.Context, sink Sink) (*Result, error) {
	result := &Result{RunID: uuid.NewString()}
	log := g.log.WithFields(logger.F("run", result.RunID))

	refs, err := g.source.Open(ctx)
	if err != nil {
		var unavailable *source.UnavailableError
		if errors.As(err, &unavailable) {
			log.Warn("Skipping reference generation", logger.F("reason", unavailable.Error()))
			result.Degraded = true
			return result, nil
		}
		return nil, fmt.Errorf("opening source: %w", err)
	}

	diags := diag.NewCollector(log)
	p := planner.New(planner.NewURLSet(), diags, log, g.plannerOpts...)

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			result.Diagnostics = diags.Diagnostics()
			return result, err
		}

		pages, ok := g.runPackage(ctx, p, diags, log, ref, result.RunID, sink)
		result.Pages += pages
		if ok {
			result.Packages++
		}
	}

	result.Diagnostics = diags.Diagnostics()
	log.Info(fmt.Sprintf("Generated %d reference pages", result.Pages),
		logger.F("packages", result.Packages),
		logger.F("diagnostics", len(result.Diagnostics)))

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

func (g *Generator) runPackage(
	ctx context.Context,
	p *planner.Planner,
	diags *diag.Collector,
	log logger.Logger,
	ref source.PackageRef,
	runID string,
	sink Sink,
) (int, bool) {
	log = log.WithFields(logger.F("package", ref.Name))

	raw, err := g.source.Load(ctx, ref)
	if err != nil {
		diags.Report(ref.Name, err)
		return 0, false
	}
	diags.ReportAll(ref.Name, raw.Errors)

	inputs := make([][]symbols.QualifiedSymbol, 0, len(raw.Inputs))
	for _, in := range raw.Inputs {
		flat, errs := symbols.Flatten(in.Nodes, "")
		diags.ReportAll(ref.Name, errs)
		inputs = append(inputs, flat)
	}
	merged := symbols.Merge(inputs...)

	forest := raw.Forest()
	tree, err := symbols.BuildTree(ref.Name, forest)
	if err != nil {
		diags.Report(ref.Name, fmt.Errorf("building namespace tree: %w", err))
	}

	pkg := &planner.Package{
		Name:       ref.Name,
		Forest:     forest,
		Symbols:    merged,
		Categories: categories.Build(merged, raw.Descriptions),
	}
	rc := &RunContext{
		RunID:      runID,
		Root:       g.root,
		Package:    pkg,
		Tree:       tree,
		Categories: pkg.Categories,
	}

	log.Debug("Planning package",
		logger.F("symbols", len(merged)),
		logger.F("categories", pkg.Categories.Len()))

	pages := 0
	for plan := range p.Plan(*pkg, g.root) {
		if ctx.Err() != nil {
			break
		}
		if sink != nil {
			if err := sink(plan, rc); err != nil {
				diags.Report(ref.Name, fmt.Errorf("rendering %s: %w", plan.URL, err))
				continue
			}
		}
		pages++
	}
	return pages, true
}
