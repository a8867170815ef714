package combine

// MissKind explains why a player's five-year AV could not be computed.
type MissKind string

const (
	MissNone    MissKind = ""
	MissNoURL   MissKind = "no_url"
	MissFetch   MissKind = "fetch"
	MissNoTable MissKind = "no_table"
	MissParse   MissKind = "parse"
)

// Record is a single combine participant for one year
type Record struct {
	Year    int    `json:"year"`
	Player  string `json:"player"`
	Pos     string `json:"pos"`
	School  string `json:"school,omitempty"`
	College string `json:"college,omitempty"`

	// Raw descriptors, cleared once the derived values have been computed.
	Ht      string `json:"ht,omitempty"`
	Drafted string `json:"drafted,omitempty"`

	Wt        *float64 `json:"wt"`
	Forty     *float64 `json:"forty"`
	Vertical  *float64 `json:"vertical"`
	Bench     *float64 `json:"bench,omitempty"`
	BroadJump *float64 `json:"broad_jump"`
	ThreeCone *float64 `json:"three_cone"`
	Shuttle   *float64 `json:"shuttle"`

	ProfilePath string   `json:"profile_path,omitempty"`
	AV          *int     `json:"av"`
	AVMiss      MissKind `json:"av_miss,omitempty"`
	Ambiguous   bool     `json:"ambiguous,omitempty"`

	Pick     *int     `json:"pick"`
	HeightCM *float64 `json:"height_cm"`
}

// Measurements returns the six numeric measurement columns in table order
func (r *Record) Measurements() []*float64 {
	return []*float64{r.Wt, r.Forty, r.Vertical, r.BroadJump, r.ThreeCone, r.Shuttle}
}

// Complete reports whether every column retained after cleaning is present
func (r *Record) Complete() bool {
	for _, m := range r.Measurements() {
		if m == nil {
			return false
		}
	}
	return r.AV != nil && r.Pick != nil && r.HeightCM != nil
}

// Float returns a pointer to v
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v
func Int(v int) *int {
	return &v
}
