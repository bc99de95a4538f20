package engine

// Per-dimension baseline scores. Deductions and bonuses accumulate from
// these fixed starting points before clamping.
const (
	BaselineQuality         = 100
	BaselineMaintainability = 85
	BaselinePerformance     = 85
	BaselineSecurity        = 85
	BaselineScalability     = 75
	BaselineReliability     = 80
	BaselineAccessibility   = 75
	BaselineDataIntegrity   = 80
)

// ScoreCard accumulates rule findings for one dimension. Intermediate
// totals may leave [0,100]; Result clamps once at the end.
type ScoreCard struct {
	baseline    int
	delta       int
	issues      []string
	suggestions []string
	constraints []string
}

// NewScoreCard starts an accumulation from the given baseline.
func NewScoreCard(baseline int) *ScoreCard {
	return &ScoreCard{
		baseline:    baseline,
		issues:      []string{},
		suggestions: []string{},
		constraints: []string{},
	}
}

// Record folds one finding into the card. Empty strings are skipped so a
// rule can report a bonus without an issue message (or vice versa).
func (s *ScoreCard) Record(f *Finding) {
	if f == nil {
		return
	}
	s.delta += f.Delta
	if f.Issue != "" {
		s.issues = append(s.issues, f.Issue)
	}
	if f.Suggestion != "" {
		s.suggestions = append(s.suggestions, f.Suggestion)
	}
	if f.Constraint != "" {
		s.constraints = append(s.constraints, f.Constraint)
	}
}

// Result finalizes the card into a DimensionResult with the score clamped
// into [0,100].
func (s *ScoreCard) Result() *DimensionResult {
	score := s.baseline + s.delta
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	res := &DimensionResult{
		Score:       score,
		Issues:      s.issues,
		Suggestions: s.suggestions,
	}
	if len(s.constraints) > 0 {
		res.Constraints = s.constraints
	}
	return res
}
