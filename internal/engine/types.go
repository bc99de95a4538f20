package engine

// DimensionResult is the outcome of one quality dimension analysis.
// Score is always clamped into [0,100]; Issues and Suggestions appear in
// rule-declaration order so repeated runs produce identical output.
type DimensionResult struct {
	Score       int      `json:"score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
	// Constraints is populated only by the data-integrity dimension.
	Constraints []string `json:"constraints,omitempty"`
}

// CodeAnalysis aggregates the dimension results for one fragment.
// Quality, Maintainability, Performance and Security are present for every
// category; the remaining dimensions exist only where the category defines
// them (accessibility is frontend-only, data integrity database-only).
type CodeAnalysis struct {
	Quality         *DimensionResult `json:"quality"`
	Maintainability *DimensionResult `json:"maintainability"`
	Performance     *DimensionResult `json:"performance"`
	Security        *DimensionResult `json:"security"`
	Scalability     *DimensionResult `json:"scalability,omitempty"`
	Reliability     *DimensionResult `json:"reliability,omitempty"`
	Accessibility   *DimensionResult `json:"accessibility,omitempty"`
	DataIntegrity   *DimensionResult `json:"dataIntegrity,omitempty"`
}

// InsightBundle is the core of the externally supplied knowledge payload.
type InsightBundle struct {
	Patterns        []string       `json:"patterns"`
	Recommendations []string       `json:"recommendations"`
	QualityMetrics  QualityMetrics `json:"qualityMetrics"`
}

// QualityMetrics carries aggregate quality signals from the broker.
type QualityMetrics struct {
	Overall float64 `json:"overall"`
}

// Context7Data is the read-only knowledge bundle supplied by the external
// broker. Engines never mutate it; a nil pointer or nil Insights simply
// degrades to static knowledge only.
type Context7Data struct {
	Insights           *InsightBundle                `json:"insights,omitempty"`
	ProjectContext     map[string]any                `json:"projectContext,omitempty"`
	TechnologyInsights map[string]TechnologyInsights `json:"technologyInsights,omitempty"`
}

// TechnologyInsights is the per-technology knowledge derived from
// Context7Data, appended after each engine's static lists.
type TechnologyInsights struct {
	BestPractices []string `json:"bestPractices"`
	AntiPatterns  []string `json:"antiPatterns"`
}

// CodeGenerationRequest describes one artifact to generate. TechStack[0],
// when present, selects the technology; otherwise the category default
// applies.
type CodeGenerationRequest struct {
	FeatureDescription string   `json:"featureDescription" validate:"required"`
	TechStack          []string `json:"techStack,omitempty"`
	Role               string   `json:"role,omitempty"`
	Quality            string   `json:"quality,omitempty" validate:"omitempty,oneof=basic standard enterprise production"`
}

// Technology returns the requested technology or the given fallback.
func (r *CodeGenerationRequest) Technology(fallback string) string {
	if len(r.TechStack) > 0 && r.TechStack[0] != "" {
		return r.TechStack[0]
	}
	return fallback
}

// Quality tiers, in increasing strictness.
const (
	QualityBasic      = "basic"
	QualityStandard   = "standard"
	QualityEnterprise = "enterprise"
	QualityProduction = "production"
)

// ValidationResult is the outcome of ValidateCode. Valid mirrors
// len(Errors) == 0; warnings and suggestions never affect validity.
type ValidationResult struct {
	Valid       bool     `json:"valid"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

// AddError records a hard failure and flips Valid.
func (v *ValidationResult) AddError(msg string) {
	v.Errors = append(v.Errors, msg)
	v.Valid = false
}

// NewValidationResult returns an empty, valid result with non-nil slices
// so the JSON form always carries arrays.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Valid:       true,
		Errors:      []string{},
		Warnings:    []string{},
		Suggestions: []string{},
	}
}
