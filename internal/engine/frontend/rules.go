package frontend

import (
	"strings"

	"github.com/vampirenirmal/codeintel/internal/engine"
)

// Rule sets for the frontend category. Slice order fixes finding order.

var qualityRules = engine.RuleSet{
	{
		ID: "inline_styles",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "style=\"") || strings.Contains(code, "style={{") {
				return &engine.Finding{
					Issue:      "Inline styles scattered through the markup",
					Suggestion: "Move presentation into stylesheets or a styling system",
					Delta:      -5,
				}
			}
			return nil
		},
	},
	{
		ID: "key_prop_on_lists",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, ".map(") && !strings.Contains(code, "key=") {
				return &engine.Finding{
					Issue:      "List rendering without stable key props",
					Suggestion: "Give each rendered list item a stable key",
					Delta:      -6,
				}
			}
			return nil
		},
	},
	{
		ID: "prop_types_or_ts",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "proptypes", "interface ", ": react.fc", "defineprops") {
				return &engine.Finding{Delta: 4}
			}
			return nil
		},
	},
	{
		ID: "component_tests",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "render(", "screen.", "@testing-library") {
				return &engine.Finding{Delta: 4}
			}
			return nil
		},
	},
}

var maintainabilityRules = engine.RuleSet{
	{
		ID: "oversized_component",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Count(code, "\n") > 200 {
				return &engine.Finding{
					Issue:      "Component exceeds 200 lines",
					Suggestion: "Extract subcomponents and hooks",
					Delta:      -8,
				}
			}
			return nil
		},
	},
	{
		ID: "direct_dom_manipulation",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "document.getelementbyid", "document.queryselector") &&
				engine.ContainsAny(code, "react", "usestate", "useeffect", "vue", "angular") {
				return &engine.Finding{
					Issue:      "Direct DOM access bypasses the framework's rendering model",
					Suggestion: "Use refs or framework bindings instead of raw DOM queries",
					Delta:      -8,
				}
			}
			return nil
		},
	},
	{
		ID: "extracted_hooks",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "function use", "const use") {
				return &engine.Finding{Delta: 4}
			}
			return nil
		},
	},
}

var performanceRules = engine.RuleSet{
	{
		ID: "code_splitting",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "react.lazy", "lazy(", "import(", "defineasynccomponent") {
				return &engine.Finding{Delta: 8}
			}
			return nil
		},
	},
	{
		ID: "memoization",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "usememo", "usecallback", "react.memo", "computed(") {
				return &engine.Finding{Delta: 5}
			}
			return nil
		},
	},
	{
		ID: "inline_function_props",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "onclick={() =>", "onclick={ () =>", "onchange={() =>") &&
				strings.Contains(code, ".map(") {
				return &engine.Finding{
					Issue:      "Inline handler functions recreated on every render of a hot list",
					Suggestion: "Hoist handlers out of the render path or memoize them",
					Delta:      -5,
				}
			}
			return nil
		},
	},
	{
		ID: "unvirtualized_large_list",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, ".map(") && engine.ContainsAny(code, "1000", "10000") &&
				!engine.ContainsAny(code, "virtual", "windowed") {
				return &engine.Finding{
					Issue:      "Large list rendered without virtualization",
					Suggestion: "Virtualize long lists so only visible rows render",
					Delta:      -10,
				}
			}
			return nil
		},
	},
	{
		ID: "effect_without_deps",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "useeffect(") && !strings.Contains(code, "], ") && !strings.Contains(code, "[]") {
				return &engine.Finding{
					Issue:      "Effect declared without a dependency array runs every render",
					Suggestion: "Declare the effect's dependency array explicitly",
					Delta:      -6,
				}
			}
			return nil
		},
	},
	{
		ID: "image_optimization",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "loading=\"lazy\"", "srcset", "next/image") {
				return &engine.Finding{Delta: 4}
			}
			return nil
		},
	},
}

var securityRules = engine.RuleSet{
	{
		ID: "html_injection",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "dangerouslysetinnerhtml", "innerhtml =", "innerhtml=") {
				return &engine.Finding{
					Issue:      "Raw HTML injection surface (innerHTML/dangerouslySetInnerHTML)",
					Suggestion: "Render data through the framework, or sanitize before injecting",
					Delta:      -20,
				}
			}
			return nil
		},
	},
	{
		ID: "eval_usage",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "eval(", "new function(") {
				return &engine.Finding{
					Issue:      "Dynamic code evaluation in the client bundle",
					Suggestion: "Remove eval; ship only static, reviewable code",
					Delta:      -25,
				}
			}
			return nil
		},
	},
	{
		ID: "javascript_url",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "javascript:") {
				return &engine.Finding{
					Issue:      "javascript: URL usable as an XSS vector",
					Suggestion: "Bind click handlers instead of javascript: URLs",
					Delta:      -12,
				}
			}
			return nil
		},
	},
	{
		ID: "unsafe_blank_target",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "target=\"_blank\"") && !strings.Contains(code, "noopener") {
				return &engine.Finding{
					Issue:      "target=\"_blank\" without rel=\"noopener\" leaks the opener window",
					Suggestion: "Add rel=\"noopener noreferrer\" to external links",
					Delta:      -6,
				}
			}
			return nil
		},
	},
	{
		ID: "csp_meta",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "content-security-policy") {
				return &engine.Finding{Delta: 5}
			}
			return nil
		},
	},
}

var accessibilityRules = engine.RuleSet{
	{
		ID: "img_without_alt",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "<img") && !strings.Contains(code, "alt=") {
				return &engine.Finding{
					Issue:      "Image elements without alt text",
					Suggestion: "Give every informative image an alt attribute",
					Delta:      -12,
				}
			}
			return nil
		},
	},
	{
		ID: "input_without_label",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "<input") && !engine.ContainsAny(code, "<label", "aria-label", "arialabel") {
				return &engine.Finding{
					Issue:      "Form inputs without associated labels",
					Suggestion: "Associate a label or aria-label with every input",
					Delta:      -10,
				}
			}
			return nil
		},
	},
	{
		ID: "missing_landmarks",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "<div", "<span") &&
				!engine.ContainsAny(code, "<main", "<nav", "<header", "<footer", "role=") {
				return &engine.Finding{
					Issue:      "Markup lacks semantic landmarks",
					Suggestion: "Use main/nav/header/footer (or roles) so assistive tech can navigate",
					Delta:      -8,
				}
			}
			return nil
		},
	},
	{
		ID: "vague_link_text",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, ">click here<", ">here<", ">read more<") {
				return &engine.Finding{
					Issue:      "Links labeled with low-information text",
					Suggestion: "Write link text that describes the destination",
					Delta:      -5,
				}
			}
			return nil
		},
	},
	{
		ID: "aria_usage",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "aria-") {
				return &engine.Finding{Delta: 6}
			}
			return nil
		},
	},
	{
		ID: "alt_text_present",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "alt=") {
				return &engine.Finding{Delta: 5}
			}
			return nil
		},
	},
	{
		ID: "heading_structure",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "<h1", "<h2") {
				return &engine.Finding{Delta: 4}
			}
			return nil
		},
	},
}
