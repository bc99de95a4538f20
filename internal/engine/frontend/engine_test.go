package frontend

import (
	"context"
	"strings"
	"testing"

	"github.com/vampirenirmal/codeintel/internal/engine"
)

func TestAnalyzeAccessibilityFindings(t *testing.T) {
	tests := []struct {
		name          string
		code          string
		wantIssuePart string
	}{
		{
			name:          "image without alt",
			code:          `<div><img src="logo.png" /></div>`,
			wantIssuePart: "alt",
		},
		{
			name:          "input without label",
			code:          `<div><input type="text" name="q" /></div>`,
			wantIssuePart: "label",
		},
		{
			name:          "vague link text",
			code:          `<div><a href="/docs">click here</a></div>`,
			wantIssuePart: "low-information",
		},
	}

	e := NewEngine(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := e.AnalyzeCode(context.Background(), tt.code, "react", nil)
			if err != nil {
				t.Fatalf("AnalyzeCode: %v", err)
			}
			if analysis.Accessibility == nil {
				t.Fatal("accessibility dimension missing")
			}
			if analysis.Accessibility.Score >= engine.BaselineAccessibility {
				t.Errorf("accessibility score = %d, want below baseline", analysis.Accessibility.Score)
			}
			found := false
			for _, issue := range analysis.Accessibility.Issues {
				if strings.Contains(strings.ToLower(issue), tt.wantIssuePart) {
					found = true
				}
			}
			if !found {
				t.Errorf("issues %v missing %q finding", analysis.Accessibility.Issues, tt.wantIssuePart)
			}
		})
	}
}

func TestAccessibleMarkupScoresAboveBaseline(t *testing.T) {
	e := NewEngine(nil)
	code := `<main><h1>Title</h1><img src="a.png" alt="diagram" /><button aria-label="close">x</button></main>`

	analysis, err := e.AnalyzeCode(context.Background(), code, "react", nil)
	if err != nil {
		t.Fatalf("AnalyzeCode: %v", err)
	}
	if analysis.Accessibility.Score <= engine.BaselineAccessibility {
		t.Errorf("accessible markup scored %d, want above baseline %d",
			analysis.Accessibility.Score, engine.BaselineAccessibility)
	}
}

func TestAnalyzeDetectsHTMLInjection(t *testing.T) {
	e := NewEngine(nil)
	analysis, err := e.AnalyzeCode(context.Background(),
		`el.innerHTML = "<b>" + userInput + "</b>"`, "javascript", nil)
	if err != nil {
		t.Fatalf("AnalyzeCode: %v", err)
	}
	if analysis.Security.Score >= engine.BaselineSecurity {
		t.Errorf("security score = %d, want below baseline", analysis.Security.Score)
	}
}

func TestGenerateSkeletons(t *testing.T) {
	e := NewEngine(nil)
	req := &engine.CodeGenerationRequest{FeatureDescription: "activity feed", Role: "ui-dev"}

	tests := []struct {
		technology string
		wantAll    []string
	}{
		{technology: "React", wantAll: []string{"export default function", "useState", "key={item.id}"}},
		{technology: "Vue 3", wantAll: []string{"<script setup>", "<template>", ":key"}},
		{technology: "Angular", wantAll: []string{"@Component", "trackBy"}},
		{technology: "Svelte", wantAll: []string{"onMount", "{#each"}},
		{technology: "jquery", wantAll: []string{"export default function"}},
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
					t.Errorf("%s skeleton missing %q", tt.technology, want)
				}
			}
			if !strings.Contains(code, "activity feed") {
				t.Error("skeleton does not reference the feature description")
			}
		})
	}
}

func TestValidateGating(t *testing.T) {
	e := NewEngine(nil)

	tests := []struct {
		name      string
		code      string
		wantValid bool
	}{
		{name: "innerHTML concatenation fails", code: `node.innerHTML = "<p>" + data + "</p>"`, wantValid: false},
		{name: "eval fails", code: "eval(code)", wantValid: false},
		{name: "javascript url fails", code: `<a href="javascript:doThing()">go</a>`, wantValid: false},
		{name: "framework rendering passes", code: `<ul>{items.map((i) => <li key={i.id}>{i.name}</li>)}</ul>`, wantValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := e.ValidateCode(context.Background(), tt.code, "react")
			if err != nil {
				t.Fatalf("ValidateCode: %v", err)
			}
			if result.Valid != tt.wantValid {
				t.Errorf("valid = %v, want %v (errors: %v)", result.Valid, tt.wantValid, result.Errors)
			}
		})
	}
}

func TestOptimizeIdempotent(t *testing.T) {
	e := NewEngine(nil)
	ctx := context.Background()
	context7 := &engine.Context7Data{
		Insights: &engine.InsightBundle{
			Patterns: []string{"avoid re-rendering on every keystroke"},
		},
	}

	once, err := e.OptimizeCode(ctx, "<main><h1>Feed</h1></main>", "react", context7)
	if err != nil {
		t.Fatalf("first OptimizeCode: %v", err)
	}
	twice, err := e.OptimizeCode(ctx, once, "react", context7)
	if err != nil {
		t.Fatalf("second OptimizeCode: %v", err)
	}
	if once != twice {
		t.Error("OptimizeCode is not idempotent")
	}
}

func TestPracticesDegradeWithoutContext(t *testing.T) {
	e := NewEngine(nil)

	noContext := e.BestPractices("react", nil)
	emptyContext := e.BestPractices("react", &engine.Context7Data{})

	if len(noContext) != len(emptyContext) {
		t.Fatalf("nil and empty context disagree: %d vs %d", len(noContext), len(emptyContext))
	}
	for i := range noContext {
		if noContext[i] != emptyContext[i] {
			t.Errorf("entry %d differs: %q vs %q", i, noContext[i], emptyContext[i])
		}
	}
}
