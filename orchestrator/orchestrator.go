// Package orchestrator drives an objective.ObjectiveFunction through the
// optimizer suite: single-start, multi-start, and two-stage runs, with
// progress callbacks and cooperative cancellation (spec §4.7).
package orchestrator

import (
	"fmt"

	"github.com/cwbudde/wwidesigner-core/evaluator"
	"github.com/cwbudde/wwidesigner-core/objective"
	"github.com/cwbudde/wwidesigner-core/optimizer"
	"github.com/cwbudde/wwidesigner-core/optimizer/bobyqa"
	"github.com/cwbudde/wwidesigner-core/optimizer/brent"
	"github.com/cwbudde/wwidesigner-core/optimizer/cmaes"
	"github.com/cwbudde/wwidesigner-core/optimizer/direct"
	"github.com/cwbudde/wwidesigner-core/optimizer/mayflyopt"
	"github.com/cwbudde/wwidesigner-core/optimizer/powell"
	"github.com/cwbudde/wwidesigner-core/optimizer/simplex"
	"github.com/cwbudde/wwidesigner-core/rangeprocessor"
)

// State is a run's position in the Idle -> (Sampling) -> Optimizing ->
// (Refining) -> Done|Failed state machine (spec §4.7).
type State string

const (
	StateIdle       State = "IDLE"
	StateSampling   State = "SAMPLING"
	StateOptimizing State = "OPTIMIZING"
	StateRefining   State = "REFINING"
	StateDone       State = "DONE"
	StateFailed     State = "FAILED"
)

// Progress is one state-transition event, emitted at most once per phase
// boundary (spec §4.7 "single progress callback per phase boundary").
type Progress struct {
	State       State
	Message     string
	Evaluations int
}

// ProgressFunc receives Progress events inline; it must not block.
type ProgressFunc func(Progress)

// Result is the uniform outcome of any orchestrator run.
type Result struct {
	Point       []float64
	Value       float64
	Evaluations int
	Success     bool
	Cancelled   bool
	Message     string
}

// Dispatcher maps an objective's declared OptimizerType to the concrete
// Minimizer that runs it (spec §4.6 selection policy: 1-D objectives
// always go to Brent regardless of the declared type).
type Dispatcher struct {
	byType map[objective.OptimizerType]optimizer.Minimizer
}

// NewDispatcher wires the full optimizer suite.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{byType: map[objective.OptimizerType]optimizer.Minimizer{
		objective.OptimizerBOBYQA:  minimizerFunc(bobyqa.Minimize),
		objective.OptimizerPowell:  minimizerFunc(powell.Minimize),
		objective.OptimizerSimplex: minimizerFunc(simplex.Minimize),
		objective.OptimizerCMAES:   minimizerFunc(cmaes.Minimize),
		objective.OptimizerDIRECT:  minimizerFunc(direct.Minimize),
		objective.OptimizerMayfly:  mayflyopt.Optimizer{},
	}}
}

// minimizerFunc adapts a package-level Minimize function to the Minimizer
// interface.
type minimizerFunc func(f optimizer.ObjectiveFunc, lower, upper, start []float64, opts optimizer.Options) (optimizer.Result, error)

func (fn minimizerFunc) Minimize(f optimizer.ObjectiveFunc, lower, upper, start []float64, opts optimizer.Options) (optimizer.Result, error) {
	return fn(f, lower, upper, start, opts)
}

// mayflyVariantSelector is implemented by objectives that request a
// specific Mayfly algorithm variant (objective.GlobalObjectiveFunction's
// Variant field); objectives that don't implement it run the standard
// algorithm.
type mayflyVariantSelector interface {
	MayflyVariant() string
}

// For selects the minimizer for an objective: 1-D objectives always use
// Brent, regardless of the objective's declared OptimizerType.
func (d *Dispatcher) For(obj objective.ObjectiveFunction) optimizer.Minimizer {
	if obj.NumberOfDimensions() == 1 {
		return minimizerFunc(brent.Minimize)
	}
	if obj.OptimizerType() == objective.OptimizerMayfly {
		if vs, ok := obj.(mayflyVariantSelector); ok {
			if v := vs.MayflyVariant(); v != "" {
				return mayflyopt.Optimizer{Variant: v}
			}
		}
	}
	if m, ok := d.byType[obj.OptimizerType()]; ok {
		return m
	}
	return minimizerFunc(bobyqa.Minimize)
}

// Orchestrator runs objectives through the dispatcher, reporting progress
// and honoring cancellation.
type Orchestrator struct {
	Dispatcher *Dispatcher
	Progress   ProgressFunc
	Cancel     func() bool
}

// New builds an Orchestrator with the default dispatcher.
func New() *Orchestrator {
	return &Orchestrator{Dispatcher: NewDispatcher()}
}

func (o *Orchestrator) report(p Progress) {
	if o.Progress != nil {
		o.Progress(p)
	}
}

func (o *Orchestrator) options(obj objective.ObjectiveFunction) optimizer.Options {
	opts := optimizer.DefaultOptions()
	opts.MaxEvaluations = obj.MaxEvaluations()
	opts.InitialTrustRegion, opts.StoppingTrustRegion = obj.TrustRegionRadii()
	opts.Cancel = o.Cancel
	return opts
}

// RunSingleStart optimizes obj from start (defaulting to its current
// geometry point when start is nil), writes the result point back via
// SetGeometryPoint, and returns the outcome (spec §4.7 "Single-start").
func (o *Orchestrator) RunSingleStart(obj objective.ObjectiveFunction, start []float64) (Result, error) {
	lower, upper := obj.Bounds()
	if len(lower) != len(upper) || len(lower) != obj.NumberOfDimensions() {
		return Result{}, fmt.Errorf("orchestrator: malformed bounds (lower=%d upper=%d dims=%d)", len(lower), len(upper), obj.NumberOfDimensions())
	}
	for i := range lower {
		if lower[i] > upper[i] {
			return Result{Success: false, Message: "bounds violation"}, fmt.Errorf("orchestrator: lower[%d]=%v > upper[%d]=%v", i, lower[i], i, upper[i])
		}
	}
	if start == nil {
		start = obj.GetGeometryPoint()
	}
	if !optimizer.InBounds(start, lower, upper) {
		return Result{Success: false, Message: "bounds violation"}, fmt.Errorf("orchestrator: start point outside bounds")
	}

	o.report(Progress{State: StateOptimizing, Message: fmt.Sprintf("optimizer=%s", obj.OptimizerType())})
	minimizer := o.Dispatcher.For(obj)
	res, err := minimizer.Minimize(obj.Value, lower, upper, start, o.options(obj))
	if err != nil {
		o.report(Progress{State: StateFailed, Message: err.Error()})
		return Result{Success: false, Message: err.Error()}, err
	}

	if err := obj.SetGeometryPoint(res.Point); err != nil {
		o.report(Progress{State: StateFailed, Message: err.Error()})
		return Result{Point: res.Point, Value: res.Value, Evaluations: res.Evaluations, Success: false, Message: err.Error()}, nil
	}

	cancelled := o.Cancel != nil && o.Cancel() && !res.Converged
	o.report(Progress{State: StateDone, Message: "completed", Evaluations: res.Evaluations})
	return Result{
		Point:       res.Point,
		Value:       res.Value,
		Evaluations: res.Evaluations,
		Success:     true,
		Cancelled:   cancelled,
		Message:     res.Message,
	}, nil
}

// RunMultiStart runs RunSingleStart once per point rp yields (splitting
// the objective's evaluation budget evenly across starts), keeps the
// best-by-value result, writes it back, and performs one final
// refinement run at the best point (spec §4.7 "Multi-start").
func (o *Orchestrator) RunMultiStart(obj objective.ObjectiveFunction, rp rangeprocessor.RangeProcessor) (Result, error) {
	n := rp.NumberOfStarts()
	if n <= 0 {
		return Result{}, fmt.Errorf("orchestrator: range processor yields no starts")
	}

	totalBudget := obj.MaxEvaluations()
	perStart := totalBudget / n
	if perStart < 1 {
		perStart = 1
	}

	o.report(Progress{State: StateSampling, Message: fmt.Sprintf("%d starts", n)})

	capped := &budgetCappedObjective{ObjectiveFunction: obj, cap: perStart}
	var best Result
	haveBest := false
	totalEvals := 0

	for i := 0; i < n; i++ {
		if o.Cancel != nil && o.Cancel() {
			break
		}
		start := rp.Next()
		res, err := o.RunSingleStart(capped, start)
		totalEvals += res.Evaluations
		if err != nil || !res.Success {
			continue
		}
		if !haveBest || res.Value < best.Value {
			best = res
			haveBest = true
		}
	}

	if !haveBest {
		o.report(Progress{State: StateFailed, Message: "no successful start"})
		return Result{Success: false, Message: "no successful start", Evaluations: totalEvals}, nil
	}

	o.report(Progress{State: StateRefining, Message: "refining best start"})
	refined, err := o.RunSingleStart(obj, best.Point)
	totalEvals += refined.Evaluations
	if err == nil && refined.Success && refined.Value <= best.Value {
		best = refined
	} else {
		_ = obj.SetGeometryPoint(best.Point)
	}
	best.Evaluations = totalEvals

	o.report(Progress{State: StateDone, Message: "multi-start complete", Evaluations: totalEvals})
	return best, nil
}

// evaluatorSwapper is implemented by objective.Base (and anything
// embedding it) and lets RunTwoStage swap the scoring evaluator.
type evaluatorSwapper interface {
	Evaluator() evaluator.Evaluator
	SetEvaluator(evaluator.Evaluator)
	FirstStageEvaluator() evaluator.Evaluator
}

// RunTwoStage swaps obj's evaluator to its first-stage evaluator, runs
// DIRECT as the global optimizer whatever obj's declared OptimizerType,
// restores the main evaluator unconditionally, then runs
// BOBYQA locally from the global best (spec §4.7 "Two-stage";
// restoration is guaranteed on all exit paths, spec test #8).
func (o *Orchestrator) RunTwoStage(obj objective.ObjectiveFunction, start []float64) (Result, error) {
	swapper, ok := obj.(evaluatorSwapper)
	if !ok || swapper.FirstStageEvaluator() == nil {
		return o.RunSingleStart(obj, start)
	}

	mainEval := swapper.Evaluator()
	firstStage := swapper.FirstStageEvaluator()
	swapper.SetEvaluator(firstStage)
	restored := false
	restore := func() {
		if !restored {
			swapper.SetEvaluator(mainEval)
			restored = true
		}
	}
	defer restore()

	global := &forcedOptimizerObjective{ObjectiveFunction: obj, optType: objective.OptimizerDIRECT, maxEval: maxInt(obj.MaxEvaluations(), 30000)}
	o.report(Progress{State: StateOptimizing, Message: "two-stage: global phase"})
	globalResult, err := o.RunSingleStart(global, start)
	restore()
	if err != nil || !globalResult.Success {
		o.report(Progress{State: StateFailed, Message: "two-stage global phase failed"})
		if err != nil {
			return Result{Success: false, Message: err.Error()}, err
		}
		return globalResult, nil
	}

	o.report(Progress{State: StateRefining, Message: "two-stage: local refinement"})
	local := &forcedOptimizerObjective{ObjectiveFunction: obj, optType: objective.OptimizerBOBYQA, maxEval: obj.MaxEvaluations()}
	localResult, err := o.RunSingleStart(local, globalResult.Point)
	if err != nil {
		return globalResult, nil
	}
	localResult.Evaluations += globalResult.Evaluations
	o.report(Progress{State: StateDone, Message: "two-stage complete", Evaluations: localResult.Evaluations})
	return localResult, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// forcedOptimizerObjective overrides OptimizerType/MaxEvaluations on top of
// an existing ObjectiveFunction, used by RunTwoStage's two phases.
type forcedOptimizerObjective struct {
	objective.ObjectiveFunction
	optType objective.OptimizerType
	maxEval int
}

func (f *forcedOptimizerObjective) OptimizerType() objective.OptimizerType { return f.optType }
func (f *forcedOptimizerObjective) MaxEvaluations() int                   { return f.maxEval }

// budgetCappedObjective overrides MaxEvaluations to split a shared budget
// across multi-start iterations.
type budgetCappedObjective struct {
	objective.ObjectiveFunction
	cap int
}

func (b *budgetCappedObjective) MaxEvaluations() int { return b.cap }
