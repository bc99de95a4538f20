// Package database implements the database category engine: schema and
// query analysis across quality, maintainability, performance, security
// and data-integrity dimensions, plus SQL/NoSQL artifact generation.
package database

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vampirenirmal/codeintel/internal/engine"
	"github.com/vampirenirmal/codeintel/internal/insight"
)

// Engine analyzes and generates database artifacts. Stateless; safe for
// concurrent use.
type Engine struct {
	logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger.With("component", "database_engine")}
}

func (e *Engine) Category() string { return "database" }

// AnalyzeCode runs the five database dimensions concurrently and
// assembles the composite report. Analyzers are pure functions over the
// same immutable inputs, so the fan-out needs no locking.
func (e *Engine) AnalyzeCode(ctx context.Context, code, technology string, context7 *engine.Context7Data) (*engine.CodeAnalysis, error) {
	result := &engine.CodeAnalysis{}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		result.Quality = qualityRules.Analyze(code, technology, engine.BaselineQuality)
		return nil
	})
	g.Go(func() error {
		result.Maintainability = maintainabilityRules.Analyze(code, technology, engine.BaselineMaintainability)
		return nil
	})
	g.Go(func() error {
		result.Performance = performanceRules.Analyze(code, technology, engine.BaselinePerformance)
		return nil
	})
	g.Go(func() error {
		result.Security = securityRules.Analyze(code, technology, engine.BaselineSecurity)
		return nil
	})
	g.Go(func() error {
		result.DataIntegrity = integrityRules.Analyze(code, technology, engine.BaselineDataIntegrity)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Debug("database analysis completed",
		"technology", technology,
		"code_length", len(code),
		"quality", result.Quality.Score,
		"data_integrity", result.DataIntegrity.Score)
	return result, nil
}

// GenerateCode builds a technology-specific artifact and runs it through
// the quality-tier, insight and category post-processing steps.
func (e *Engine) GenerateCode(ctx context.Context, req *engine.CodeGenerationRequest, context7 *engine.Context7Data) (string, error) {
	if req == nil || strings.TrimSpace(req.FeatureDescription) == "" {
		return "", &engine.RequestError{Field: "featureDescription", Reason: "must not be empty"}
	}

	technology := req.Technology(DefaultTechnology)
	ins := insight.Extract(technology, context7)
	style := commentStyleFor(technology)

	code := generators.Resolve(technology)(req, ins)
	code = e.applyQualityStandards(code, req.Quality, style)
	code = engine.ApplyInsights(code, ins, style)
	code = e.addIntegrityConstraints(code, style)
	code = e.addOptimizationFeatures(code, style)
	code = e.addSecurityFeatures(code, style)

	e.logger.Info("database artifact generated",
		"technology", technology,
		"quality_tier", req.Quality,
		"artifact_length", len(code))
	return code, nil
}

// ValidateCode runs the hard-fail checks, then folds analysis
// suggestions into the result as non-blocking advisories.
func (e *Engine) ValidateCode(ctx context.Context, code, technology string) (*engine.ValidationResult, error) {
	result := engine.NewValidationResult()
	lower := strings.ToLower(code)

	if HasConcatenatedSQL(lower) {
		result.AddError("SQL statement assembled by string concatenation; use parameterized queries")
	}
	if strings.Contains(lower, "create table") && !strings.Contains(lower, "primary key") {
		result.AddError("table definition lacks a primary key")
	}
	if strings.Contains(lower, "grant all") {
		result.AddError("GRANT ALL violates least-privilege access")
	}
	if engine.ContainsAny(lower, "password = '", "password='", "identified by '") {
		result.AddError("credential literal embedded in SQL")
	}

	if strings.Contains(lower, "select *") {
		result.Warnings = append(result.Warnings, "SELECT * retrieves all columns; list the required ones")
	}
	if strings.Contains(lower, "delete from") && !strings.Contains(lower, "where") {
		result.Warnings = append(result.Warnings, "DELETE without WHERE removes every row")
	}

	analysis, err := e.AnalyzeCode(ctx, code, technology, nil)
	if err != nil {
		return nil, err
	}
	for _, dim := range []*engine.DimensionResult{
		analysis.Quality,
		analysis.Maintainability,
		analysis.Performance,
		analysis.Security,
		analysis.DataIntegrity,
	} {
		result.Suggestions = append(result.Suggestions, dim.Suggestions...)
	}
	return result, nil
}

// OptimizeCode applies the generation post-processors to existing code.
// Marker guards make a second pass a no-op.
func (e *Engine) OptimizeCode(ctx context.Context, code, technology string, context7 *engine.Context7Data) (string, error) {
	style := commentStyleFor(technology)
	out := e.addOptimizationFeatures(code, style)
	out = e.addIntegrityConstraints(out, style)
	out = e.addSecurityFeatures(out, style)
	out = engine.ApplyInsights(out, insight.Extract(technology, context7), style)
	return out, nil
}

var staticBestPractices = []string{
	"Use parameterized queries for every variable input",
	"Declare a primary key on every table",
	"Index the columns used by joins and frequent filters",
	"Keep transactions short and scoped to one unit of work",
	"Use explicit column lists in SELECT and INSERT statements",
	"Version schema changes through migrations",
}

var staticAntiPatterns = []string{
	"Building SQL through string concatenation",
	"SELECT * in production queries",
	"UPDATE or DELETE without a WHERE clause",
	"Storing plaintext credentials in scripts",
	"Issuing queries inside application loops (N+1)",
	"GRANT ALL instead of scoped privileges",
}

// BestPractices returns the static database list followed by whatever
// the context bundle contributes.
func (e *Engine) BestPractices(technology string, context7 *engine.Context7Data) []string {
	ins := insight.Extract(technology, context7)
	out := make([]string, 0, len(staticBestPractices)+len(ins.BestPractices))
	out = append(out, staticBestPractices...)
	return append(out, ins.BestPractices...)
}

func (e *Engine) AntiPatterns(technology string, context7 *engine.Context7Data) []string {
	ins := insight.Extract(technology, context7)
	out := make([]string, 0, len(staticAntiPatterns)+len(ins.AntiPatterns))
	out = append(out, staticAntiPatterns...)
	return append(out, ins.AntiPatterns...)
}

// applyQualityStandards augments the artifact for stricter tiers. The
// step is monotonic: it only ever appends, never rewrites.
func (e *Engine) applyQualityStandards(code, tier string, style engine.CommentStyle) string {
	switch tier {
	case engine.QualityEnterprise, engine.QualityProduction:
	default:
		return code
	}
	p := string(style)
	lines := []string{
		p + " - Wrap multi-statement changes in explicit transactions",
		p + " - Apply schema changes through reviewed migrations",
		p + " - Capture slow-query logs and review execution plans",
	}
	if tier == engine.QualityProduction {
		lines = append(lines,
			p+" - Point-in-time recovery and tested restore procedures required",
			p+" - Role-based access with least privilege per service account")
	}
	return engine.AppendSection(code, "Quality standards ("+tier+")", style, lines...)
}

func (e *Engine) addIntegrityConstraints(code string, style engine.CommentStyle) string {
	p := string(style)
	return engine.AppendSection(code, "Integrity checklist", style,
		p+" - Every table declares a PRIMARY KEY",
		p+" - Relationships enforced with FOREIGN KEY references",
		p+" - NOT NULL on required columns, CHECK on value ranges",
	)
}

func (e *Engine) addOptimizationFeatures(code string, style engine.CommentStyle) string {
	p := string(style)
	return engine.AppendSection(code, "Optimization checklist", style,
		p+" - Index the join and filter columns used above",
		p+" - Bound result sets with LIMIT or pagination",
		p+" - Verify plans with EXPLAIN before shipping",
	)
}

func (e *Engine) addSecurityFeatures(code string, style engine.CommentStyle) string {
	p := string(style)
	return engine.AppendSection(code, "Security checklist", style,
		p+" - Parameterize every variable input",
		p+" - Scope grants to the specific privileges required",
		p+" - Source credentials from the environment or a secret store",
	)
}
