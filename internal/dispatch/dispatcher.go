// Package dispatch routes analysis and generation requests to the
// category engine that owns them. The dispatcher performs no analysis
// itself: it resolves a category, forwards the call and returns the
// engine's result unchanged.
package dispatch

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/vampirenirmal/codeintel/internal/engine"
	"github.com/vampirenirmal/codeintel/internal/engine/backend"
	"github.com/vampirenirmal/codeintel/internal/engine/database"
	"github.com/vampirenirmal/codeintel/internal/engine/frontend"
)

// DefaultCategory receives requests that resolve to no known category.
const DefaultCategory = "backend"

// categoryKey maps a technology substring to its category. The table is
// scanned in order, first match wins: database names come first so
// "mongo" never reaches the backend "go" key, frontend framework names
// come before the broad backend keys.
type categoryKey struct {
	key      string
	category string
}

var technologyCategories = []categoryKey{
	{"postgres", "database"},
	{"mysql", "database"},
	{"mariadb", "database"},
	{"mongo", "database"},
	{"redis", "database"},
	{"sqlite", "database"},
	{"cassandra", "database"},
	{"dynamo", "database"},
	{"oracle", "database"},
	{"sql", "database"},
	{"database", "database"},

	{"react", "frontend"},
	{"next", "frontend"},
	{"vue", "frontend"},
	{"nuxt", "frontend"},
	{"angular", "frontend"},
	{"svelte", "frontend"},
	{"html", "frontend"},
	{"css", "frontend"},
	{"frontend", "frontend"},

	{"node", "backend"},
	{"express", "backend"},
	{"python", "backend"},
	{"fastapi", "backend"},
	{"flask", "backend"},
	{"django", "backend"},
	{"java", "backend"},
	{"spring", "backend"},
	{"golang", "backend"},
	{"go", "backend"},
	{"rust", "backend"},
	{"backend", "backend"},
}

// Dispatcher owns the singleton category engines and routes every call.
// It has exactly two states, idle and dispatching, and holds no request
// state between calls.
type Dispatcher struct {
	engines  map[string]engine.CategoryEngine
	validate *validator.Validate
	logger   *slog.Logger
}

// New builds a dispatcher with the three built-in category engines.
func New(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		engines:  make(map[string]engine.CategoryEngine),
		validate: validator.New(),
		logger:   logger.With("component", "dispatcher"),
	}
	for _, e := range []engine.CategoryEngine{
		database.NewEngine(logger),
		backend.NewEngine(logger),
		frontend.NewEngine(logger),
	} {
		d.engines[e.Category()] = e
	}
	return d
}

// Register adds (or replaces) a category engine. Additional categories
// plug in without touching the routing logic.
func (d *Dispatcher) Register(e engine.CategoryEngine) {
	d.engines[e.Category()] = e
}

// Categories lists the registered categories in sorted order.
func (d *Dispatcher) Categories() []string {
	out := make([]string, 0, len(d.engines))
	for c := range d.engines {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// TechnologiesFor lists the routing-table keys that resolve to the
// given category, in table order.
func (d *Dispatcher) TechnologiesFor(category string) []string {
	c := strings.ToLower(strings.TrimSpace(category))
	var out []string
	for _, entry := range technologyCategories {
		if entry.category == c {
			out = append(out, entry.key)
		}
	}
	return out
}

// ResolveCategory applies the routing rules: explicit category first,
// else the technology lookup table, else the backend default.
func (d *Dispatcher) ResolveCategory(category, technology string) (string, error) {
	if category != "" {
		c := strings.ToLower(strings.TrimSpace(category))
		if _, ok := d.engines[c]; !ok {
			return "", engine.NewUnsupportedCategoryError(category)
		}
		return c, nil
	}
	tech := strings.ToLower(strings.TrimSpace(technology))
	if tech != "" {
		for _, entry := range technologyCategories {
			if strings.Contains(tech, entry.key) {
				return entry.category, nil
			}
		}
	}
	return DefaultCategory, nil
}

func (d *Dispatcher) engineFor(category, technology string) (engine.CategoryEngine, string, error) {
	resolved, err := d.ResolveCategory(category, technology)
	if err != nil {
		return nil, "", err
	}
	e, ok := d.engines[resolved]
	if !ok {
		return nil, "", engine.NewUnsupportedCategoryError(resolved)
	}
	return e, resolved, nil
}

// AnalyzeCode routes an analysis request. An empty category is resolved
// by sniffing the technology.
func (d *Dispatcher) AnalyzeCode(ctx context.Context, category, code, technology string, context7 *engine.Context7Data) (*engine.CodeAnalysis, error) {
	e, resolved, err := d.engineFor(category, technology)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("dispatching analyze",
		"request_id", uuid.New().String(),
		"category", resolved,
		"technology", technology,
		"code_length", len(code))
	return e.AnalyzeCode(ctx, code, technology, context7)
}

// GenerateCode validates the request shape, then routes it. The category
// is sniffed from TechStack[0] when not given explicitly.
func (d *Dispatcher) GenerateCode(ctx context.Context, category string, req *engine.CodeGenerationRequest, context7 *engine.Context7Data) (string, error) {
	if req == nil {
		return "", &engine.RequestError{Field: "request", Reason: "must not be nil"}
	}
	if err := d.validate.Struct(req); err != nil {
		return "", &engine.RequestError{Field: "request", Reason: err.Error()}
	}

	e, resolved, err := d.engineFor(category, req.Technology(""))
	if err != nil {
		return "", err
	}
	d.logger.Info("dispatching generate",
		"request_id", uuid.New().String(),
		"category", resolved,
		"quality_tier", req.Quality)
	return e.GenerateCode(ctx, req, context7)
}

// ValidateCode routes a validation request.
func (d *Dispatcher) ValidateCode(ctx context.Context, category, code, technology string) (*engine.ValidationResult, error) {
	e, resolved, err := d.engineFor(category, technology)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("dispatching validate",
		"request_id", uuid.New().String(),
		"category", resolved,
		"technology", technology)
	return e.ValidateCode(ctx, code, technology)
}

// OptimizeCode routes an optimization request.
func (d *Dispatcher) OptimizeCode(ctx context.Context, category, code, technology string, context7 *engine.Context7Data) (string, error) {
	e, resolved, err := d.engineFor(category, technology)
	if err != nil {
		return "", err
	}
	d.logger.Debug("dispatching optimize",
		"request_id", uuid.New().String(),
		"category", resolved,
		"technology", technology)
	return e.OptimizeCode(ctx, code, technology, context7)
}

// BestPractices routes a practice listing.
func (d *Dispatcher) BestPractices(category, technology string, context7 *engine.Context7Data) ([]string, error) {
	e, _, err := d.engineFor(category, technology)
	if err != nil {
		return nil, err
	}
	return e.BestPractices(technology, context7), nil
}

// AntiPatterns routes an anti-pattern listing.
func (d *Dispatcher) AntiPatterns(category, technology string, context7 *engine.Context7Data) ([]string, error) {
	e, _, err := d.engineFor(category, technology)
	if err != nil {
		return nil, err
	}
	return e.AntiPatterns(technology, context7), nil
}
