package engine

import "context"

// CategoryEngine is the contract every category implementation satisfies.
// All operations are pure over their inputs: no persisted state, results
// created fresh per call, identical inputs produce identical outputs.
type CategoryEngine interface {
	// Category returns the lowercase category name this engine serves.
	Category() string

	// AnalyzeCode runs every dimension analyzer of the category over the
	// fragment and assembles the composite report. The analyzers are
	// independent pure functions and run concurrently. Code may be empty
	// or syntactically invalid; baseline scores come back when nothing
	// matches.
	AnalyzeCode(ctx context.Context, code, technology string, context7 *Context7Data) (*CodeAnalysis, error)

	// GenerateCode builds a new artifact for the resolved technology,
	// then applies quality-tier augmentation, insight annotations and the
	// category's idempotent post-processors.
	GenerateCode(ctx context.Context, req *CodeGenerationRequest, context7 *Context7Data) (string, error)

	// ValidateCode runs the category's hard-fail checks, then folds
	// analysis suggestions into the result as advisories.
	ValidateCode(ctx context.Context, code, technology string) (*ValidationResult, error)

	// OptimizeCode applies the category post-processors and insight
	// annotations to existing code. Idempotent for the same input.
	OptimizeCode(ctx context.Context, code, technology string, context7 *Context7Data) (string, error)

	// BestPractices returns the static category list followed by any
	// practices extracted from the context bundle.
	BestPractices(technology string, context7 *Context7Data) []string

	// AntiPatterns mirrors BestPractices for things to avoid.
	AntiPatterns(technology string, context7 *Context7Data) []string
}
