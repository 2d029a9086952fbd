package instrument

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Note is a named target pitch. If Frequency is zero and exactly one of
// FrequencyMin/FrequencyMax is set, that bound is treated as the target by
// Target().
type Note struct {
	Name          string
	Frequency     float64
	FrequencyMin  float64
	FrequencyMax  float64
}

// Target returns the frequency a tuner should aim for, per the rule in
// SPEC_FULL/spec.md §3: Frequency if set, else whichever of Min/Max is the
// sole non-zero bound, else 0 (no target).
func (n Note) Target() float64 {
	if n.Frequency > 0 {
		return n.Frequency
	}
	switch {
	case n.FrequencyMin > 0 && n.FrequencyMax == 0:
		return n.FrequencyMin
	case n.FrequencyMax > 0 && n.FrequencyMin == 0:
		return n.FrequencyMax
	default:
		return 0
	}
}

// Validate checks that any frequencies present are positive.
func (n Note) Validate() error {
	for _, f := range []float64{n.Frequency, n.FrequencyMin, n.FrequencyMax} {
		if f < 0 || (f != 0 && !IsFinite(f)) {
			return fmt.Errorf("note %q: frequency fields must be positive when present", n.Name)
		}
	}
	return nil
}

// Fingering is one playable configuration: a note target, an open/closed
// pattern for every hole, and an optional open-end flag and optimization
// weight (absent means weight 1; a stored negative weight means 0, i.e.
// ignored; see Weight).
type Fingering struct {
	Note               Note
	OpenHole           []bool
	OpenEnd            bool
	HasOpenEnd         bool
	OptimizationWeight float64
	HasWeight          bool
}

// Weight returns the effective optimization weight: 1 if unset, 0 if the
// stored weight is negative, else the stored value.
func (f Fingering) Weight() float64 {
	if !f.HasWeight {
		return 1
	}
	if f.OptimizationWeight < 0 {
		return 0
	}
	return f.OptimizationWeight
}

// Tuning is a named, ordered collection of fingerings that all address the
// same number of holes.
type Tuning struct {
	Name       string
	Fingerings []Fingering
}

// NumberOfHoles returns the hole count shared by every fingering, or 0 for
// an empty tuning.
func (t Tuning) NumberOfHoles() int {
	if len(t.Fingerings) == 0 {
		return 0
	}
	return len(t.Fingerings[0].OpenHole)
}

// Validate checks that the tuning name is non-empty, that there is at least
// one fingering, that every fingering's OpenHole length matches the tuning's
// hole count, and that every note's frequencies pass Note.Validate.
// Fingering note names are not checked.
func (t Tuning) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("tuning: name must not be empty")
	}
	if len(t.Fingerings) == 0 {
		return fmt.Errorf("tuning %q: at least one fingering is required", t.Name)
	}
	n := t.NumberOfHoles()
	for i, f := range t.Fingerings {
		if len(f.OpenHole) != n {
			return fmt.Errorf("tuning %q: fingering %d has %d holes, want %d", t.Name, i, len(f.OpenHole), n)
		}
		if err := f.Note.Validate(); err != nil {
			return fmt.Errorf("tuning %q: fingering %d: %w", t.Name, i, err)
		}
	}
	return nil
}

var fingeringPattern = regexp.MustCompile(`^[XOxo][XOxo ]*(_|\]|)$`)

// ParseFingeringPattern parses the §6 test-fixture string form: X/x closed,
// O/o open, trailing '_' open end, trailing ']' closed end, an optional
// space at the midpoint purely for readability.
func ParseFingeringPattern(s string) (openHole []bool, openEnd bool, hasOpenEnd bool, err error) {
	if !fingeringPattern.MatchString(s) {
		return nil, false, false, fmt.Errorf("instrument: %q does not match fingering pattern", s)
	}
	body := s
	switch {
	case strings.HasSuffix(s, "_"):
		openEnd, hasOpenEnd = true, true
		body = s[:len(s)-1]
	case strings.HasSuffix(s, "]"):
		openEnd, hasOpenEnd = false, true
		body = s[:len(s)-1]
	}
	body = strings.ReplaceAll(body, " ", "")
	openHole = make([]bool, len(body))
	for i, c := range body {
		switch c {
		case 'O', 'o':
			openHole[i] = true
		case 'X', 'x':
			openHole[i] = false
		}
	}
	return openHole, openEnd, hasOpenEnd, nil
}

// NewChromaticTuning builds a synthetic tuning of nHoles-hole fingerings
// (all closed, for bookkeeping only — real chromatic fingerings are
// instrument-specific) whose note frequencies form a strict equal-tempered
// progression of n notes starting at startFreq, used by test fixtures (S2)
// and quick what-if studies.
func NewChromaticTuning(name string, nHoles int, startFreq float64, startName string) Tuning {
	const n = 12
	fingerings := make([]Fingering, n)
	for i := 0; i < n; i++ {
		freq := startFreq * math.Pow(2, float64(i)/12.0)
		fingerings[i] = Fingering{
			Note:     Note{Name: fmt.Sprintf("%s+%d", startName, i), Frequency: freq},
			OpenHole: make([]bool, nHoles),
		}
	}
	return Tuning{Name: name, Fingerings: fingerings}
}
