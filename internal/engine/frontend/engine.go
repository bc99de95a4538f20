// Package frontend implements the frontend category engine: UI-code
// analysis across quality, maintainability, performance, security and
// accessibility, plus component skeleton generation for the common view
// frameworks.
package frontend

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vampirenirmal/codeintel/internal/engine"
	"github.com/vampirenirmal/codeintel/internal/insight"
)

// Engine analyzes and generates frontend code. Stateless; safe for
// concurrent use.
type Engine struct {
	logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger.With("component", "frontend_engine")}
}

func (e *Engine) Category() string { return "frontend" }

// AnalyzeCode fans the five frontend dimensions out concurrently.
// Accessibility is the dimension unique to this category.
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
		result.Accessibility = accessibilityRules.Analyze(code, technology, engine.BaselineAccessibility)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Debug("frontend analysis completed",
		"technology", technology,
		"code_length", len(code),
		"accessibility", result.Accessibility.Score)
	return result, nil
}

// GenerateCode builds a component skeleton for the resolved framework
// and applies the quality-tier, insight and category post-processors.
func (e *Engine) GenerateCode(ctx context.Context, req *engine.CodeGenerationRequest, context7 *engine.Context7Data) (string, error) {
	if req == nil || strings.TrimSpace(req.FeatureDescription) == "" {
		return "", &engine.RequestError{Field: "featureDescription", Reason: "must not be empty"}
	}

	technology := req.Technology(DefaultTechnology)
	ins := insight.Extract(technology, context7)

	code := generators.Resolve(technology)(req, ins)
	code = e.applyQualityStandards(code, req.Quality)
	code = engine.ApplyInsights(code, ins, engine.CommentSlash)
	code = e.addAccessibilityFeatures(code)
	code = e.addOptimizationFeatures(code)

	e.logger.Info("frontend artifact generated",
		"technology", technology,
		"quality_tier", req.Quality,
		"artifact_length", len(code))
	return code, nil
}

// ValidateCode runs the frontend hard-fail checks, then folds analysis
// suggestions into the result.
func (e *Engine) ValidateCode(ctx context.Context, code, technology string) (*engine.ValidationResult, error) {
	result := engine.NewValidationResult()
	lower := strings.ToLower(code)

	if engine.ContainsAny(lower, "innerhtml =", "innerhtml=") &&
		engine.ContainsAny(lower, `+ "`, `+ '`, "${", `" +`, `' +`) {
		result.AddError("HTML injected by string concatenation into innerHTML")
	}
	if engine.ContainsAny(lower, "eval(", "new function(") {
		result.AddError("dynamic code evaluation in client code is forbidden")
	}
	if strings.Contains(lower, "javascript:") {
		result.AddError("javascript: URLs are an XSS vector")
	}

	if strings.Contains(lower, "<img") && !strings.Contains(lower, "alt=") {
		result.Warnings = append(result.Warnings, "images without alt text fail accessibility review")
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
		analysis.Accessibility,
	} {
		result.Suggestions = append(result.Suggestions, dim.Suggestions...)
	}
	return result, nil
}

// OptimizeCode applies the generation post-processors to existing code;
// idempotent for the same input.
func (e *Engine) OptimizeCode(ctx context.Context, code, technology string, context7 *engine.Context7Data) (string, error) {
	out := e.addOptimizationFeatures(code)
	out = e.addAccessibilityFeatures(out)
	out = engine.ApplyInsights(out, insight.Extract(technology, context7), engine.CommentSlash)
	return out, nil
}

var staticBestPractices = []string{
	"Give every informative image alt text",
	"Associate labels with every form input",
	"Use semantic landmarks so assistive tech can navigate",
	"Key list items by a stable identifier",
	"Code-split routes and heavy components",
	"Render data through the framework instead of raw innerHTML",
}

var staticAntiPatterns = []string{
	"dangerouslySetInnerHTML / innerHTML with untrusted data",
	"eval in the client bundle",
	"javascript: URLs",
	"Direct DOM manipulation inside framework components",
	"Rendering unbounded lists without virtualization",
	"target=\"_blank\" links without rel=\"noopener\"",
}

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

func (e *Engine) applyQualityStandards(code, tier string) string {
	switch tier {
	case engine.QualityEnterprise, engine.QualityProduction:
	default:
		return code
	}
	lines := []string{
		"// - Error boundaries around every route-level component",
		"// - Loading and empty states for async views",
		"// - Automated accessibility checks in CI",
	}
	if tier == engine.QualityProduction {
		lines = append(lines,
			"// - Performance budget enforced on bundle size",
			"// - Real-user monitoring for core web vitals")
	}
	return engine.AppendSection(code, "Quality standards ("+tier+")", engine.CommentSlash, lines...)
}

func (e *Engine) addAccessibilityFeatures(code string) string {
	return engine.AppendSection(code, "Accessibility checklist", engine.CommentSlash,
		"// - Alt text on informative images, empty alt on decorative ones",
		"// - Keyboard focus order follows the visual order",
		"// - Color contrast meets WCAG AA",
	)
}

func (e *Engine) addOptimizationFeatures(code string) string {
	return engine.AppendSection(code, "Optimization checklist", engine.CommentSlash,
		"// - Lazy-load below-the-fold images and heavy components",
		"// - Memoize derived values in hot render paths",
		"// - Virtualize long lists",
	)
}
