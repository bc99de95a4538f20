package engine

import (
	"strings"
	"testing"
)

func TestSanitizeComment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text unchanged", input: "user login", want: "user login"},
		{name: "block terminator defused", input: "evil */ break out", want: "evil *\\/ break out"},
		{name: "newlines collapsed", input: "line one\nline two", want: "line one line two"},
		{name: "crlf collapsed", input: "a\r\nb", want: "a b"},
		{name: "surrounding space trimmed", input: "  padded  ", want: "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeComment(tt.input); got != tt.want {
				t.Errorf("SanitizeComment(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHeaderNamesFeatureTechnologyRole(t *testing.T) {
	got := Header(CommentDash, "audit log", "PostgreSQL", "dba")
	for _, want := range []string{"-- Feature: audit log", "-- Technology: PostgreSQL", "-- Generated for: dba"} {
		if !strings.Contains(got, want) {
			t.Errorf("header missing %q in %q", want, got)
		}
	}
}

func TestHeaderDefaultsRole(t *testing.T) {
	got := Header(CommentSlash, "f", "Node.js", "")
	if !strings.Contains(got, "// Generated for: developer") {
		t.Errorf("header should default the role, got %q", got)
	}
}

func TestApplyInsightsIdempotent(t *testing.T) {
	ins := TechnologyInsights{
		BestPractices: []string{"use prepared statements"},
		AntiPatterns:  []string{"string concatenation"},
	}

	once := ApplyInsights("SELECT 1;", ins, CommentDash)
	if !strings.Contains(once, "-- - Best practice: use prepared statements") {
		t.Fatalf("insight block missing: %q", once)
	}
	if !strings.Contains(once, "-- - Avoid: string concatenation") {
		t.Fatalf("anti-pattern line missing: %q", once)
	}

	twice := ApplyInsights(once, ins, CommentDash)
	if twice != once {
		t.Error("second application changed the code")
	}
}

func TestApplyInsightsEmptyIsNoop(t *testing.T) {
	code := "SELECT 1;"
	if got := ApplyInsights(code, TechnologyInsights{}, CommentDash); got != code {
		t.Errorf("empty insights changed the code: %q", got)
	}
}

func TestAppendSectionIdempotent(t *testing.T) {
	once := AppendSection("x = 1", "Security checklist", CommentSlash, "// - item")
	twice := AppendSection(once, "Security checklist", CommentSlash, "// - item")
	if twice != once {
		t.Error("second append changed the code")
	}
	if !strings.Contains(once, "// Security checklist") {
		t.Errorf("marker line missing: %q", once)
	}
}

func TestGeneratorTableOrderAndFallback(t *testing.T) {
	table := GeneratorTable{
		{Keys: []string{"postgres"}, Build: func(*CodeGenerationRequest, TechnologyInsights) string { return "pg" }},
		{Keys: []string{"mysql"}, Build: func(*CodeGenerationRequest, TechnologyInsights) string { return "my" }},
		{Build: func(*CodeGenerationRequest, TechnologyInsights) string { return "generic" }},
	}

	tests := []struct {
		tech string
		want string
	}{
		{tech: "PostgreSQL", want: "pg"},
		{tech: "postgres 15", want: "pg"},
		{tech: "MySQL", want: "my"},
		{tech: "cockroachdb", want: "generic"},
		{tech: "", want: "generic"},
	}

	for _, tt := range tests {
		t.Run(tt.tech, func(t *testing.T) {
			build := table.Resolve(tt.tech)
			if build == nil {
				t.Fatal("Resolve returned nil")
			}
			if got := build(nil, TechnologyInsights{}); got != tt.want {
				t.Errorf("Resolve(%q) routed to %q, want %q", tt.tech, got, tt.want)
			}
		})
	}
}

func TestUnsupportedCategoryError(t *testing.T) {
	err := NewUnsupportedCategoryError("quantum")
	if !IsUnsupportedCategory(err) {
		t.Error("IsUnsupportedCategory should match")
	}
	if !strings.Contains(err.Error(), "quantum") {
		t.Errorf("error should name the category: %v", err)
	}
}
