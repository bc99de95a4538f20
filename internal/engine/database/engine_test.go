package database

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/vampirenirmal/codeintel/internal/engine"
)

func TestAnalyzeSelectStar(t *testing.T) {
	e := NewEngine(nil)

	analysis, err := e.AnalyzeCode(context.Background(), "SELECT * FROM users", "PostgreSQL", nil)
	if err != nil {
		t.Fatalf("AnalyzeCode: %v", err)
	}

	if analysis.Quality.Score >= 100 {
		t.Errorf("quality score = %d, want < 100", analysis.Quality.Score)
	}
	found := false
	for _, issue := range analysis.Quality.Issues {
		if strings.Contains(issue, "SELECT *") {
			found = true
		}
	}
	if !found {
		t.Errorf("quality issues %v missing a SELECT * finding", analysis.Quality.Issues)
	}
}

func TestAnalyzePrimaryKeyConstraint(t *testing.T) {
	e := NewEngine(nil)

	analysis, err := e.AnalyzeCode(context.Background(), "CREATE TABLE t (id SERIAL PRIMARY KEY)", "PostgreSQL", nil)
	if err != nil {
		t.Fatalf("AnalyzeCode: %v", err)
	}

	integrity := analysis.DataIntegrity
	if integrity == nil {
		t.Fatal("data integrity dimension missing")
	}
	found := false
	for _, c := range integrity.Constraints {
		if c == "Primary key constraint" {
			found = true
		}
	}
	if !found {
		t.Errorf("constraints %v missing primary key entry", integrity.Constraints)
	}
	if integrity.Score < engine.BaselineDataIntegrity {
		t.Errorf("integrity score = %d, want >= %d", integrity.Score, engine.BaselineDataIntegrity)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	e := NewEngine(nil)
	code := "CREATE TABLE orders (id INT); SELECT * FROM orders JOIN users ON users.id = orders.user_id"

	first, err := e.AnalyzeCode(context.Background(), code, "mysql", nil)
	if err != nil {
		t.Fatalf("first AnalyzeCode: %v", err)
	}
	second, err := e.AnalyzeCode(context.Background(), code, "mysql", nil)
	if err != nil {
		t.Fatalf("second AnalyzeCode: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different analyses:\n%+v\n%+v", first, second)
	}
}

func TestAnalyzeScoreBounds(t *testing.T) {
	e := NewEngine(nil)
	fragments := []string{
		"",
		"not sql at all",
		strings.Repeat("DELETE FROM t; UPDATE t SET x = 1; GRANT ALL; \"SELECT \" + v; ", 50),
	}

	for _, code := range fragments {
		analysis, err := e.AnalyzeCode(context.Background(), code, "postgres", nil)
		if err != nil {
			t.Fatalf("AnalyzeCode(%q): %v", code[:min(len(code), 20)], err)
		}
		for name, dim := range map[string]*engine.DimensionResult{
			"quality":         analysis.Quality,
			"maintainability": analysis.Maintainability,
			"performance":     analysis.Performance,
			"security":        analysis.Security,
			"dataIntegrity":   analysis.DataIntegrity,
		} {
			if dim == nil {
				t.Fatalf("%s dimension missing", name)
			}
			if dim.Score < 0 || dim.Score > 100 {
				t.Errorf("%s score %d outside [0,100]", name, dim.Score)
			}
		}
	}
}

func TestValidateGating(t *testing.T) {
	e := NewEngine(nil)

	tests := []struct {
		name      string
		code      string
		wantValid bool
	}{
		{
			name:      "concatenated sql fails",
			code:      `query = "SELECT * FROM users WHERE name = '" + name + "'"`,
			wantValid: false,
		},
		{
			name:      "table without primary key fails",
			code:      "CREATE TABLE logs (message TEXT)",
			wantValid: false,
		},
		{
			name:      "grant all fails",
			code:      "GRANT ALL ON db.* TO 'app'",
			wantValid: false,
		},
		{
			name:      "parameterized query passes",
			code:      "SELECT id, name FROM users WHERE id = $1 LIMIT 1",
			wantValid: true,
		},
		{
			name:      "empty fragment passes",
			code:      "",
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := e.ValidateCode(context.Background(), tt.code, "postgresql")
			if err != nil {
				t.Fatalf("ValidateCode: %v", err)
			}
			if result.Valid != tt.wantValid {
				t.Errorf("valid = %v, want %v (errors: %v)", result.Valid, tt.wantValid, result.Errors)
			}
			if result.Valid != (len(result.Errors) == 0) {
				t.Errorf("valid flag %v inconsistent with %d errors", result.Valid, len(result.Errors))
			}
		})
	}
}

func TestGenerateStructuralInvariants(t *testing.T) {
	e := NewEngine(nil)
	req := &engine.CodeGenerationRequest{FeatureDescription: "order history tracking"}

	tests := []struct {
		technology string
		wantAll    []string
	}{
		{technology: "PostgreSQL", wantAll: []string{"CREATE TABLE", "PRIMARY KEY", "CREATE INDEX"}},
		{technology: "MySQL", wantAll: []string{"CREATE TABLE", "PRIMARY KEY", "ENGINE=InnoDB"}},
		{technology: "SQLite", wantAll: []string{"CREATE TABLE", "PRIMARY KEY"}},
		{technology: "MongoDB", wantAll: []string{"createCollection", "createIndex"}},
		{technology: "Redis", wantAll: []string{"HSET", "EXPIRE"}},
		{technology: "CockroachDB", wantAll: []string{"CREATE TABLE", "PRIMARY KEY"}},
	}

	for _, tt := range tests {
		t.Run(tt.technology, func(t *testing.T) {
			req.TechStack = []string{tt.technology}
			code, err := e.GenerateCode(context.Background(), req, nil)
			if err != nil {
				t.Fatalf("GenerateCode: %v", err)
			}
			for _, want := range tt.wantAll {
				if !strings.Contains(code, want) {
					t.Errorf("generated %s artifact missing %q", tt.technology, want)
				}
			}
			if !strings.Contains(code, "order history tracking") {
				t.Error("generated artifact does not reference the feature description")
			}
		})
	}
}

func TestGenerateTechnologyOrdering(t *testing.T) {
	e := NewEngine(nil)
	req := &engine.CodeGenerationRequest{
		FeatureDescription: "inventory",
		TechStack:          []string{"postgresql"},
	}

	code, err := e.GenerateCode(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("GenerateCode: %v", err)
	}
	if !strings.Contains(code, "PostgreSQL") {
		t.Error("postgresql routed away from the PostgreSQL builder")
	}
	if strings.Contains(code, "ENGINE=InnoDB") {
		t.Error("postgresql routed to the MySQL builder")
	}
}

func TestGenerateQualityTiersAreMonotonic(t *testing.T) {
	e := NewEngine(nil)
	base := &engine.CodeGenerationRequest{FeatureDescription: "audit trail", TechStack: []string{"postgres"}}

	standard, err := e.GenerateCode(context.Background(), base, nil)
	if err != nil {
		t.Fatalf("GenerateCode standard: %v", err)
	}

	prod := &engine.CodeGenerationRequest{
		FeatureDescription: "audit trail",
		TechStack:          []string{"postgres"},
		Quality:            engine.QualityProduction,
	}
	production, err := e.GenerateCode(context.Background(), prod, nil)
	if err != nil {
		t.Fatalf("GenerateCode production: %v", err)
	}

	if !strings.Contains(production, "Quality standards (production)") {
		t.Error("production tier missing its standards section")
	}
	// Stricter tiers add, never remove: the skeleton statements survive.
	for _, construct := range []string{"CREATE TABLE", "PRIMARY KEY", "CREATE INDEX"} {
		if strings.Count(production, construct) < strings.Count(standard, construct) {
			t.Errorf("production tier dropped %q occurrences", construct)
		}
	}
}

func TestGenerateRejectsEmptyFeature(t *testing.T) {
	e := NewEngine(nil)
	_, err := e.GenerateCode(context.Background(), &engine.CodeGenerationRequest{FeatureDescription: "   "}, nil)
	if !engine.IsInvalidRequest(err) {
		t.Errorf("want invalid request error, got %v", err)
	}
}

func TestOptimizeIdempotent(t *testing.T) {
	e := NewEngine(nil)
	ctx := context.Background()
	context7 := &engine.Context7Data{
		Insights: &engine.InsightBundle{
			Patterns:        []string{"use connection pooling"},
			Recommendations: []string{"add covering indexes"},
		},
	}

	once, err := e.OptimizeCode(ctx, "SELECT id FROM t WHERE x = $1", "postgres", context7)
	if err != nil {
		t.Fatalf("first OptimizeCode: %v", err)
	}
	twice, err := e.OptimizeCode(ctx, once, "postgres", context7)
	if err != nil {
		t.Fatalf("second OptimizeCode: %v", err)
	}
	if once != twice {
		t.Error("OptimizeCode is not idempotent")
	}
	for _, marker := range []string{"Optimization checklist", "Integrity checklist", "Security checklist"} {
		if strings.Count(once, marker) != 1 {
			t.Errorf("marker %q appears %d times, want 1", marker, strings.Count(once, marker))
		}
	}
}

func TestBestPracticesAppendInsights(t *testing.T) {
	e := NewEngine(nil)
	context7 := &engine.Context7Data{
		Insights: &engine.InsightBundle{
			Recommendations: []string{"partition large tables"},
		},
	}

	static := e.BestPractices("postgres", nil)
	merged := e.BestPractices("postgres", context7)

	if len(merged) != len(static)+1 {
		t.Fatalf("merged length = %d, want %d", len(merged), len(static)+1)
	}
	// Static entries come first, dynamic entries after.
	for i, s := range static {
		if merged[i] != s {
			t.Errorf("static entry %d reordered: %q", i, merged[i])
		}
	}
	if merged[len(merged)-1] != "partition large tables" {
		t.Errorf("dynamic entry missing, got %q", merged[len(merged)-1])
	}
}
