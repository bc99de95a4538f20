package engine

import "strings"

// Finding is a single rule match: a human-readable message plus a signed
// score delta. Constraint is used only by data-integrity rules.
type Finding struct {
	Issue      string
	Suggestion string
	Constraint string
	Delta      int
}

// Rule is one independent detection. Detect must be a total function over
// its input domain: empty code, invalid syntax and arbitrary length all
// yield either a finding or nil, never a panic.
type Rule struct {
	ID     string
	Detect func(code, technology string) *Finding
}

// RuleSet is an ordered collection of rules. Slice order fixes the order
// findings appear in the result; deltas themselves are commutative.
type RuleSet []Rule

// Apply evaluates every rule against the fragment and folds the findings
// into the score card in declaration order. Rules receive the fragment
// lowercased, so predicates match case-insensitively with lowercase
// patterns.
func (rs RuleSet) Apply(code, technology string, sc *ScoreCard) {
	lower := strings.ToLower(code)
	for _, r := range rs {
		sc.Record(r.Detect(lower, technology))
	}
}

// Analyze is the standard rule-set evaluation: baseline in, clamped
// DimensionResult out.
func (rs RuleSet) Analyze(code, technology string, baseline int) *DimensionResult {
	sc := NewScoreCard(baseline)
	rs.Apply(code, technology, sc)
	return sc.Result()
}

// ContainsAny reports whether the fragment contains at least one of the
// given lowercase substrings. Shared by rule predicates across engines.
func ContainsAny(code string, patterns ...string) bool {
	for _, p := range patterns {
		if strings.Contains(code, p) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every given substring is present.
func ContainsAll(code string, patterns ...string) bool {
	for _, p := range patterns {
		if !strings.Contains(code, p) {
			return false
		}
	}
	return true
}
