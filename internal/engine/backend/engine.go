// Package backend implements the backend category engine: service-code
// analysis across quality, maintainability, performance, security,
// scalability and reliability, plus server skeleton generation for the
// common backend stacks.
package backend

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vampirenirmal/codeintel/internal/engine"
	"github.com/vampirenirmal/codeintel/internal/insight"
)

// Engine analyzes and generates backend service code. Stateless; safe
// for concurrent use.
type Engine struct {
	logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger.With("component", "backend_engine")}
}

func (e *Engine) Category() string { return "backend" }

// AnalyzeCode fans the six backend dimensions out concurrently and joins
// the results into one report.
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
		result.Scalability = scalabilityRules.Analyze(code, technology, engine.BaselineScalability)
		return nil
	})
	g.Go(func() error {
		result.Reliability = reliabilityRules.Analyze(code, technology, engine.BaselineReliability)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Debug("backend analysis completed",
		"technology", technology,
		"code_length", len(code),
		"security", result.Security.Score,
		"scalability", result.Scalability.Score)
	return result, nil
}

// GenerateCode builds a server skeleton for the resolved technology and
// applies the quality-tier, insight and security/optimization steps.
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
	code = e.addSecurityFeatures(code, style)
	code = e.addOptimizationFeatures(code, style)

	e.logger.Info("backend artifact generated",
		"technology", technology,
		"quality_tier", req.Quality,
		"artifact_length", len(code))
	return code, nil
}

// ValidateCode runs the backend hard-fail checks, then folds analysis
// suggestions into the result.
func (e *Engine) ValidateCode(ctx context.Context, code, technology string) (*engine.ValidationResult, error) {
	result := engine.NewValidationResult()
	lower := strings.ToLower(code)

	if engine.ContainsAny(lower, "eval(", "exec(", "new function(") {
		result.AddError("dynamic code evaluation (eval/exec) is forbidden")
	}
	if engine.ContainsAny(lower, "select", "insert", "update", "delete") &&
		engine.ContainsAny(lower, `" +`, `' +`, `+ "`, `+ '`, "${") {
		result.AddError("SQL statement assembled by string concatenation; use parameterized queries")
	}
	if engine.ContainsAny(lower, "api_key = \"", "secret = \"", "password = \"") {
		result.AddError("credential literal committed with the code")
	}

	if strings.Contains(lower, "http://") && !engine.ContainsAny(lower, "localhost", "127.0.0.1") {
		result.Warnings = append(result.Warnings, "plain HTTP endpoint referenced; use TLS")
	}
	if engine.ContainsAny(lower, "catch {}", "except: pass") {
		result.Warnings = append(result.Warnings, "errors are being swallowed without handling")
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
		analysis.Scalability,
		analysis.Reliability,
	} {
		result.Suggestions = append(result.Suggestions, dim.Suggestions...)
	}
	return result, nil
}

// OptimizeCode applies the generation post-processors to existing code;
// a second application returns the input unchanged.
func (e *Engine) OptimizeCode(ctx context.Context, code, technology string, context7 *engine.Context7Data) (string, error) {
	style := commentStyleFor(technology)
	out := e.addOptimizationFeatures(code, style)
	out = e.addSecurityFeatures(out, style)
	out = engine.ApplyInsights(out, insight.Extract(technology, context7), style)
	return out, nil
}

var staticBestPractices = []string{
	"Validate and bound every request input",
	"Authenticate and authorize every non-public route",
	"Hash passwords with bcrypt or argon2",
	"Set timeouts on all outbound calls",
	"Fan out independent async work instead of awaiting in a loop",
	"Expose a health endpoint and shut down gracefully on SIGTERM",
}

var staticAntiPatterns = []string{
	"Dynamic code evaluation (eval/exec) on request data",
	"SQL built by string concatenation",
	"Secrets committed in source",
	"Synchronous blocking I/O on the request path",
	"Unbounded queries without pagination",
	"Catch blocks that swallow errors",
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

// applyQualityStandards appends tier-specific scaffolding notes; it never
// removes or rewrites existing constructs.
func (e *Engine) applyQualityStandards(code, tier string, style engine.CommentStyle) string {
	switch tier {
	case engine.QualityEnterprise, engine.QualityProduction:
	default:
		return code
	}
	p := string(style)
	lines := []string{
		p + " - Structured logging with request correlation IDs",
		p + " - Input validation at every trust boundary",
		p + " - Metrics on request rate, latency and error ratio",
	}
	if tier == engine.QualityProduction {
		lines = append(lines,
			p+" - Graceful shutdown draining in-flight requests",
			p+" - Circuit breakers and retry budgets on downstream calls")
	}
	return engine.AppendSection(code, "Quality standards ("+tier+")", style, lines...)
}

func (e *Engine) addSecurityFeatures(code string, style engine.CommentStyle) string {
	p := string(style)
	return engine.AppendSection(code, "Security checklist", style,
		p+" - Authentication middleware on every non-public route",
		p+" - Rate limiting on authentication and write endpoints",
		p+" - Security headers (CSP, HSTS, X-Frame-Options)",
	)
}

func (e *Engine) addOptimizationFeatures(code string, style engine.CommentStyle) string {
	p := string(style)
	return engine.AppendSection(code, "Optimization checklist", style,
		p+" - Cache hot reads with explicit invalidation",
		p+" - Pool outbound connections",
		p+" - Paginate every collection endpoint",
	)
}
