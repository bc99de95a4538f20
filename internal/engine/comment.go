package engine

import "strings"

// CommentStyle selects the line-comment prefix used when annotating
// generated or optimized code.
type CommentStyle string

const (
	CommentSlash CommentStyle = "//"
	CommentHash  CommentStyle = "#"
	CommentDash  CommentStyle = "--"
)

// SanitizeComment makes free text safe to embed inside any comment
// syntax: block-comment terminators are defused and newlines collapsed so
// a hostile feature description cannot break out of its comment.
func SanitizeComment(s string) string {
	s = strings.ReplaceAll(s, "*/", "*\\/")
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}

// Header builds the leading comment block every generated artifact
// carries: feature description, technology and requesting role.
func Header(style CommentStyle, feature, technology, role string) string {
	feature = SanitizeComment(feature)
	if role == "" {
		role = "developer"
	}
	role = SanitizeComment(role)

	var b strings.Builder
	p := string(style)
	b.WriteString(p + " Feature: " + feature + "\n")
	b.WriteString(p + " Technology: " + technology + "\n")
	b.WriteString(p + " Generated for: " + role + "\n")
	return b.String()
}

// insightMarker guards ApplyInsights against double application.
const insightMarker = "Context7 insights"

// ApplyInsights appends a comment-only block derived from external
// best practices and anti-patterns. Executable statements are never
// touched, and a second application is a no-op.
func ApplyInsights(code string, ins TechnologyInsights, style CommentStyle) string {
	if len(ins.BestPractices) == 0 && len(ins.AntiPatterns) == 0 {
		return code
	}
	if strings.Contains(code, insightMarker) {
		return code
	}

	p := string(style)
	var b strings.Builder
	b.WriteString(code)
	if !strings.HasSuffix(code, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n" + p + " " + insightMarker + ":\n")
	for _, bp := range ins.BestPractices {
		b.WriteString(p + " - Best practice: " + SanitizeComment(bp) + "\n")
	}
	for _, ap := range ins.AntiPatterns {
		b.WriteString(p + " - Avoid: " + SanitizeComment(ap) + "\n")
	}
	return b.String()
}

// AppendSection adds a comment-prefixed block once; when the marker is
// already present the code is returned unchanged. This is the shared
// guard that keeps the category post-processors idempotent.
func AppendSection(code, marker string, style CommentStyle, lines ...string) string {
	if strings.Contains(code, marker) {
		return code
	}
	p := string(style)
	var b strings.Builder
	b.WriteString(code)
	if !strings.HasSuffix(code, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n" + p + " " + marker + "\n")
	for _, l := range lines {
		b.WriteString(l + "\n")
	}
	return b.String()
}
