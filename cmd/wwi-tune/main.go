// Command wwi-tune drives the full design-kernel pipeline from the command
// line: load an instrument and tuning document, build an objective over the
// requested parameterization, multi-start optimize it, write the tuned
// instrument back to disk, and print a per-fingering cents-error report
// (grounded on cmd/piano-fit/main.go's flag layout and report conventions).
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/wwidesigner-core/acoustic/simplecalc"
	"github.com/cwbudde/wwidesigner-core/design"
	"github.com/cwbudde/wwidesigner-core/evaluator"
	"github.com/cwbudde/wwidesigner-core/instrument"
	"github.com/cwbudde/wwidesigner-core/internal/numeric"
	"github.com/cwbudde/wwidesigner-core/objective"
	"github.com/cwbudde/wwidesigner-core/orchestrator"
	"github.com/cwbudde/wwidesigner-core/rangeprocessor"
	"github.com/cwbudde/wwidesigner-core/tuner"
)

func main() {
	instrumentPath := flag.String("instrument", "", "Instrument JSON document path (ignored if -project is set)")
	tuningPath := flag.String("tuning", "", "Tuning JSON document path (ignored if -project is set)")
	projectPath := flag.String("project", "", "Project JSON document referencing instrument+tuning paths")
	outputPath := flag.String("output", "", "Path to write the tuned instrument JSON (default: overwrite -instrument)")
	objectiveKind := flag.String("objective", "hole-position", "Objective: hole-position, hole-size, hole-and-position")
	tunerKind := flag.String("tuner", "simple", "Tuner: simple, linearv")
	blowLevel := flag.Int("blow-level", 5, "LinearV blowing level (0-10), used when -tuner=linearv")
	temperature := flag.Float64("temperature", 20, "Ambient temperature, degrees C")
	pressure := flag.Float64("pressure", 101325, "Ambient pressure, Pa")
	humidity := flag.Float64("humidity", 0.5, "Relative humidity, 0..1")
	starts := flag.Int("starts", 1, "Number of multi-start points (1 runs a single start from current geometry)")
	strategy := flag.String("strategy", "random", "Multi-start strategy: random, grid, lhs")
	maxEvals := flag.Int("max-evals", 2000, "Evaluation budget (shared across starts)")
	seed := flag.Int64("seed", 1, "Random seed for random/lhs strategies")
	report := flag.Bool("report", true, "Print a per-fingering cents-error report after optimizing")
	flag.Parse()

	in, tuning := loadDocuments(*projectPath, *instrumentPath, *tuningPath)

	params := simplecalc.NewPhysicalParameters(*temperature, *pressure, *humidity)
	calc := simplecalc.New(in, params)

	tun := buildTuner(*tunerKind, calc, *blowLevel, in)
	eval := evaluator.NewCentDeviation(tun)

	base := objective.Base{
		Instrument: in,
		Calc:       calc,
		Eval:       eval,
		Tuning:     tuning,
		OptType:    objective.OptimizerBOBYQA,
		MaxEval:    *maxEvals,
	}
	obj := buildObjective(*objectiveKind, base)

	o := orchestrator.New()
	o.Progress = func(p orchestrator.Progress) {
		fmt.Fprintf(os.Stderr, "[%s] %s (evals=%d)\n", p.State, p.Message, p.Evaluations)
	}

	var result orchestrator.Result
	var err error
	if *starts <= 1 {
		result, err = o.RunSingleStart(obj, nil)
	} else {
		lower, upper := obj.Bounds()
		rp := buildRangeProcessor(*strategy, lower, upper, *starts, *seed)
		result, err = o.RunMultiStart(obj, rp)
	}
	if err != nil {
		die("optimization failed: %v", err)
	}
	if !result.Success {
		die("optimization did not succeed: %s", result.Message)
	}

	out := *outputPath
	if out == "" {
		out = *instrumentPath
	}
	if out != "" {
		if err := design.SaveInstrument(out, in); err != nil {
			die("failed to write tuned instrument: %v", err)
		}
	}

	fmt.Printf("Done evals=%d value=%.6f\n", result.Evaluations, result.Value)
	if *report {
		printCentsReport(tun, tuning)
	}
}

func loadDocuments(projectPath, instrumentPath, tuningPath string) (*instrument.Instrument, instrument.Tuning) {
	if projectPath != "" {
		in, tuning, err := design.LoadProject(projectPath)
		if err != nil {
			die("failed to load project: %v", err)
		}
		return in, tuning
	}
	if instrumentPath == "" || tuningPath == "" {
		die("either -project, or both -instrument and -tuning, must be set")
	}
	in, err := design.LoadInstrument(instrumentPath)
	if err != nil {
		die("failed to load instrument: %v", err)
	}
	tuning, err := design.LoadTuning(tuningPath)
	if err != nil {
		die("failed to load tuning: %v", err)
	}
	return in, tuning
}

func buildTuner(kind string, calc *simplecalc.Calculator, blowLevel int, in *instrument.Instrument) tuner.InstrumentTuner {
	switch strings.ToLower(kind) {
	case "linearv":
		windowLength := 0.01
		if in.Mouthpiece.Fipple != nil {
			windowLength = in.Mouthpiece.Fipple.WindowLength
		}
		return tuner.NewLinearV(calc, blowLevel, windowLength)
	default:
		return tuner.NewSimple(calc)
	}
}

func buildObjective(kind string, base objective.Base) objective.ObjectiveFunction {
	switch strings.ToLower(kind) {
	case "hole-size":
		return objective.NewHoleSize(base)
	case "hole-and-position":
		return objective.NewHoleAndBorePosition(base, objective.MoveBottom)
	default:
		return objective.NewHolePosition(base, objective.MoveBottom)
	}
}

func buildRangeProcessor(strategy string, lower, upper []float64, starts int, seed int64) rangeprocessor.RangeProcessor {
	switch strings.ToLower(strategy) {
	case "grid":
		rp, err := rangeprocessor.NewGrid(lower, upper, starts, nil, nil)
		if err != nil {
			die("failed to build grid range processor: %v", err)
		}
		return rp
	case "lhs":
		rp, err := rangeprocessor.NewLHS(lower, upper, starts, nil, nil, seed)
		if err != nil {
			die("failed to build LHS range processor: %v", err)
		}
		return rp
	default:
		rp, err := rangeprocessor.NewRandom(lower, upper, starts, nil, nil, seed)
		if err != nil {
			die("failed to build random range processor: %v", err)
		}
		return rp
	}
}

func printCentsReport(tun tuner.InstrumentTuner, tuning instrument.Tuning) {
	tun.SetTuning(tuning)
	fmt.Println("fingering          target(Hz)   predicted(Hz)   cents")
	for i, f := range tuning.Fingerings {
		target := f.Note.Target()
		note := tun.PredictedFrequency(f)
		name := f.Note.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if !note.Ok {
			fmt.Printf("%-18s %10.2f   %13s   %s\n", name, target, "--", "no prediction")
			continue
		}
		cents := numeric.CalcCents(target, note.Frequency)
		fmt.Printf("%-18s %10.2f   %13.2f   %+.1f\n", name, target, note.Frequency, cents)
	}
}

func die(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
