package objective

// GlobalObjectiveFunction wraps any ObjectiveFunction and forces DIRECT
// global search with a larger evaluation budget, matching the GlobalHole…
// family (spec §4.5: "wrap the base objectives but set optimizerType =
// DIRECT with larger maxEvaluations, typ. 30k-60k").
//
// When Variant is set, OptimizerType instead selects MAYFLY and the
// orchestrator's dispatcher runs the named population-based algorithm
// variant ("desma", "olce", "eobbma", "gsasma", "mpma", "aoblmoa") in place
// of DIRECT's Lipschitzian partitioning — an alternate global search over
// the same wrapped objective.
type GlobalObjectiveFunction struct {
	ObjectiveFunction
	maxEval int
	Variant string
}

// NewGlobal wraps inner, overriding its optimizer selection to DIRECT and
// its evaluation ceiling to maxEvaluations (defaulting to 30000 if <= 0).
func NewGlobal(inner ObjectiveFunction, maxEvaluations int) *GlobalObjectiveFunction {
	if maxEvaluations <= 0 {
		maxEvaluations = 30000
	}
	return &GlobalObjectiveFunction{ObjectiveFunction: inner, maxEval: maxEvaluations}
}

// NewGlobalMayfly wraps inner like NewGlobal but selects the named Mayfly
// algorithm variant as the global search instead of DIRECT.
func NewGlobalMayfly(inner ObjectiveFunction, maxEvaluations int, variant string) *GlobalObjectiveFunction {
	g := NewGlobal(inner, maxEvaluations)
	g.Variant = variant
	return g
}

func (g *GlobalObjectiveFunction) OptimizerType() OptimizerType {
	if g.Variant != "" {
		return OptimizerMayfly
	}
	return OptimizerDIRECT
}
func (g *GlobalObjectiveFunction) MaxEvaluations() int { return g.maxEval }

// MayflyVariant implements the orchestrator's variant-selection hook.
func (g *GlobalObjectiveFunction) MayflyVariant() string { return g.Variant }
