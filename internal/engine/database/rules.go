package database

import (
	"strings"

	"github.com/vampirenirmal/codeintel/internal/engine"
)

// Rule sets for the database category. Slice order fixes the order
// findings appear in each dimension result.

var qualityRules = engine.RuleSet{
	{
		ID: "select_star",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "select *") {
				return &engine.Finding{
					Issue:      "SELECT * retrieves all columns regardless of need",
					Suggestion: "List the required columns explicitly instead of SELECT *",
					Delta:      -10,
				}
			}
			return nil
		},
	},
	{
		ID: "update_without_where",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "update ") && strings.Contains(code, " set ") && !strings.Contains(code, "where") {
				return &engine.Finding{
					Issue:      "UPDATE statement without a WHERE clause affects every row",
					Suggestion: "Add a WHERE clause to scope the UPDATE",
					Delta:      -20,
				}
			}
			return nil
		},
	},
	{
		ID: "delete_without_where",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "delete from") && !strings.Contains(code, "where") {
				return &engine.Finding{
					Issue:      "DELETE statement without a WHERE clause removes every row",
					Suggestion: "Add a WHERE clause to scope the DELETE",
					Delta:      -20,
				}
			}
			return nil
		},
	},
	{
		ID: "implicit_column_insert",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "insert into") && !strings.Contains(code, "(") {
				return &engine.Finding{
					Issue:      "INSERT without an explicit column list breaks when the schema changes",
					Suggestion: "Name the target columns in INSERT statements",
					Delta:      -8,
				}
			}
			return nil
		},
	},
	{
		ID: "documented_schema",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "-- ", "/*", "comment on") {
				return &engine.Finding{Delta: 3}
			}
			return nil
		},
	},
}

var maintainabilityRules = engine.RuleSet{
	{
		ID: "inline_documentation",
		Detect: func(code, tech string) *engine.Finding {
			if len(code) > 200 && !engine.ContainsAny(code, "-- ", "/*", "//") {
				return &engine.Finding{
					Issue:      "Non-trivial statement block carries no comments",
					Suggestion: "Document intent of multi-step SQL with inline comments",
					Delta:      -5,
				}
			}
			return nil
		},
	},
	{
		ID: "select_into_temp",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "select into #", "create table #") {
				return &engine.Finding{
					Issue:      "Ad-hoc temp tables make statement flow hard to follow",
					Suggestion: "Prefer common table expressions over temp tables",
					Delta:      -5,
				}
			}
			return nil
		},
	},
	{
		ID: "cte_usage",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "with ") && strings.Contains(code, " as (") {
				return &engine.Finding{Delta: 4}
			}
			return nil
		},
	},
	{
		ID: "migration_style",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "if not exists", "if exists") {
				return &engine.Finding{Delta: 3}
			}
			return nil
		},
	},
}

var performanceRules = engine.RuleSet{
	{
		ID: "select_star_scan",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "select *") {
				return &engine.Finding{
					Issue:      "SELECT * widens row reads and defeats covering indexes",
					Suggestion: "Project only the columns the caller needs",
					Delta:      -5,
				}
			}
			return nil
		},
	},
	{
		ID: "join_without_index",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, " join ") && !strings.Contains(code, "index") {
				return &engine.Finding{
					Issue:      "JOIN-heavy statement with no index declared or referenced",
					Suggestion: "Create indexes on the join columns",
					Delta:      -8,
				}
			}
			return nil
		},
	},
	{
		ID: "leading_wildcard",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "like '%") {
				return &engine.Finding{
					Issue:      "Leading-wildcard LIKE forces a full scan",
					Suggestion: "Use a trailing wildcard or full-text search instead of LIKE '%...'",
					Delta:      -8,
				}
			}
			return nil
		},
	},
	{
		ID: "query_in_loop",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "for ", "foreach", "while ") && strings.Contains(code, "select") {
				return &engine.Finding{
					Issue:      "Query issued inside a loop (N+1 access pattern)",
					Suggestion: "Batch the lookups into a single set-based query",
					Delta:      -12,
				}
			}
			return nil
		},
	},
	{
		ID: "random_ordering",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "order by rand()", "order by random()") {
				return &engine.Finding{
					Issue:      "ORDER BY RANDOM sorts the whole result set",
					Suggestion: "Sample rows with an indexed key range instead of random ordering",
					Delta:      -10,
				}
			}
			return nil
		},
	},
	{
		ID: "bounded_result",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "select") && engine.ContainsAny(code, "limit ", "fetch first", "top ") {
				return &engine.Finding{Delta: 5}
			}
			return nil
		},
	},
	{
		ID: "index_created",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "create index") || strings.Contains(code, "create unique index") {
				return &engine.Finding{Delta: 8}
			}
			return nil
		},
	},
	{
		ID: "explain_usage",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "explain ") {
				return &engine.Finding{Delta: 3}
			}
			return nil
		},
	},
}

var securityRules = engine.RuleSet{
	{
		ID: "sql_concatenation",
		Detect: func(code, tech string) *engine.Finding {
			if HasConcatenatedSQL(code) {
				return &engine.Finding{
					Issue:      "SQL assembled by string concatenation (injection risk)",
					Suggestion: "Use parameterized queries or prepared statements",
					Delta:      -25,
				}
			}
			return nil
		},
	},
	{
		ID: "parameterized_queries",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "$1", "= ?", "(?", ":param", "prepare ") && !HasConcatenatedSQL(code) {
				return &engine.Finding{Delta: 8}
			}
			return nil
		},
	},
	{
		ID: "grant_all",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "grant all") {
				return &engine.Finding{
					Issue:      "GRANT ALL hands out every privilege at once",
					Suggestion: "Grant only the specific privileges each role needs",
					Delta:      -15,
				}
			}
			return nil
		},
	},
	{
		ID: "plaintext_credentials",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "password = '", "password='", "identified by '") {
				return &engine.Finding{
					Issue:      "Credential literal embedded in the statement",
					Suggestion: "Load credentials from the environment or a secret store",
					Delta:      -20,
				}
			}
			return nil
		},
	},
	{
		ID: "row_level_security",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "row level security") || strings.Contains(code, "create policy") {
				return &engine.Finding{Delta: 6}
			}
			return nil
		},
	},
}

var integrityRules = engine.RuleSet{
	{
		ID: "primary_key",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "primary key") {
				return &engine.Finding{
					Constraint: "Primary key constraint",
					Delta:      5,
				}
			}
			return nil
		},
	},
	{
		ID: "table_without_primary_key",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "create table") && !strings.Contains(code, "primary key") {
				return &engine.Finding{
					Issue:      "Table created without a primary key",
					Suggestion: "Declare a PRIMARY KEY so every row is uniquely addressable",
					Delta:      -15,
				}
			}
			return nil
		},
	},
	{
		ID: "foreign_key",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "foreign key") || strings.Contains(code, "references ") {
				return &engine.Finding{
					Constraint: "Foreign key constraint",
					Delta:      5,
				}
			}
			return nil
		},
	},
	{
		ID: "not_null",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "not null") {
				return &engine.Finding{
					Constraint: "NOT NULL constraint",
					Delta:      3,
				}
			}
			return nil
		},
	},
	{
		ID: "unique_constraint",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "unique") {
				return &engine.Finding{
					Constraint: "Unique constraint",
					Delta:      3,
				}
			}
			return nil
		},
	},
	{
		ID: "check_constraint",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "check (") || strings.Contains(code, "check(") {
				return &engine.Finding{
					Constraint: "Check constraint",
					Delta:      3,
				}
			}
			return nil
		},
	},
	{
		ID: "default_values",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "default ") {
				return &engine.Finding{
					Constraint: "Default value constraint",
					Delta:      2,
				}
			}
			return nil
		},
	},
	{
		ID: "cascading_rules",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "on delete cascade", "on update cascade", "on delete set null") {
				return &engine.Finding{
					Constraint: "Referential action",
					Delta:      2,
				}
			}
			return nil
		},
	},
}

// HasConcatenatedSQL reports whether a fragment builds SQL by gluing
// strings around a keyword. Shared by the security rule and the
// validation hard-fail check. Expects lowercased input.
func HasConcatenatedSQL(code string) bool {
	if !engine.ContainsAny(code, "select", "insert", "update", "delete", "where") {
		return false
	}
	return engine.ContainsAny(code, `" +`, `' +`, `+ "`, `+ '`, `" . $`, "${", "f\"select", "f'select")
}
