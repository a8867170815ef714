package regression

import "github.com/pfrederiksen/nfl-combine/internal/combine"

// Variable is one modelling column read from a cleaned record
type Variable struct {
	Name string
	// LowerIsBetter variables are negated after standardizing.
	LowerIsBetter bool
	value         func(r *combine.Record) (float64, bool)
}

// Value returns the variable for r, or false when r does not carry it
func (v Variable) Value(r *combine.Record) (float64, bool) {
	return v.value(r)
}

func floatVar(name string, lowerIsBetter bool, get func(r *combine.Record) *float64) Variable {
	return Variable{
		Name:          name,
		LowerIsBetter: lowerIsBetter,
		value: func(r *combine.Record) (float64, bool) {
			p := get(r)
			if p == nil {
				return 0, false
			}
			return *p, true
		},
	}
}

func intVar(name string, lowerIsBetter bool, get func(r *combine.Record) *int) Variable {
	return Variable{
		Name:          name,
		LowerIsBetter: lowerIsBetter,
		value: func(r *combine.Record) (float64, bool) {
			p := get(r)
			if p == nil {
				return 0, false
			}
			return float64(*p), true
		},
	}
}

var (
	Wt        = floatVar("Wt", false, func(r *combine.Record) *float64 { return r.Wt })
	Forty     = floatVar("40yd", true, func(r *combine.Record) *float64 { return r.Forty })
	Vertical  = floatVar("Vertical", false, func(r *combine.Record) *float64 { return r.Vertical })
	BroadJump = floatVar("Broad Jump", false, func(r *combine.Record) *float64 { return r.BroadJump })
	ThreeCone = floatVar("3Cone", true, func(r *combine.Record) *float64 { return r.ThreeCone })
	Shuttle   = floatVar("Shuttle", true, func(r *combine.Record) *float64 { return r.Shuttle })
	Height    = floatVar("Height (cm)", false, func(r *combine.Record) *float64 { return r.HeightCM })
	Pick      = intVar("Pick", true, func(r *combine.Record) *int { return r.Pick })
	AV        = intVar("5AV", false, func(r *combine.Record) *int { return r.AV })
)

// Measures are the combine measurements used as predictors
func Measures() []Variable {
	return []Variable{Wt, Forty, Vertical, BroadJump, ThreeCone, Shuttle, Height}
}

// Study is one regression run over all position groups
type Study struct {
	Name    string
	File    string
	Inputs  []Variable
	Outcome Variable
}

// InputNames returns the predictor names in coefficient order
func (s Study) InputNames() []string {
	names := make([]string, len(s.Inputs))
	for i, v := range s.Inputs {
		names[i] = v.Name
	}
	return names
}

// Studies returns the three standard studies: measurements plus pick against career
// value, pick alone against career value, and measurements against pick.
func Studies() []Study {
	return []Study{
		{
			Name:    "results",
			File:    "results/results.json",
			Inputs:  append(Measures(), Pick),
			Outcome: AV,
		},
		{
			Name:    "just_pick",
			File:    "results/just_pick.json",
			Inputs:  []Variable{Pick},
			Outcome: AV,
		},
		{
			Name:    "pick",
			File:    "results/pick.json",
			Inputs:  Measures(),
			Outcome: Pick,
		},
	}
}

// StudyByName looks up one of Studies
func StudyByName(name string) (Study, bool) {
	for _, s := range Studies() {
		if s.Name == name {
			return s, true
		}
	}
	return Study{}, false
}
