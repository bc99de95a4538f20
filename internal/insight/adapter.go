package insight

import (
	"sort"
	"strings"

	"github.com/vampirenirmal/codeintel/internal/engine"
)

// antiMarkers flag a broker pattern as something to avoid rather than
// adopt. Matched case-insensitively against the whole entry.
var antiMarkers = []string{
	"avoid",
	"anti-pattern",
	"antipattern",
	"deprecated",
	"never ",
	"do not ",
	"don't ",
}

// Extract maps the external knowledge bundle onto the per-technology
// insight lists. It is pure and total: nil or malformed data yields empty
// lists, never an error, so generation and practice listing degrade to
// static knowledge only.
func Extract(technology string, data *engine.Context7Data) engine.TechnologyInsights {
	out := engine.TechnologyInsights{
		BestPractices: []string{},
		AntiPatterns:  []string{},
	}
	if data == nil {
		return out
	}

	// Per-technology entries supplied by the broker take precedence over
	// the generic bundle. Keys are scanned in sorted order so a fragment
	// matching several entries resolves the same way every call.
	if len(data.TechnologyInsights) > 0 {
		key := strings.ToLower(strings.TrimSpace(technology))
		names := make([]string, 0, len(data.TechnologyInsights))
		for name := range data.TechnologyInsights {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if strings.Contains(key, strings.ToLower(name)) {
				ins := data.TechnologyInsights[name]
				out.BestPractices = append(out.BestPractices, ins.BestPractices...)
				out.AntiPatterns = append(out.AntiPatterns, ins.AntiPatterns...)
				return out
			}
		}
	}

	if data.Insights == nil {
		return out
	}

	for _, p := range data.Insights.Patterns {
		if p == "" {
			continue
		}
		if isAntiPattern(p) {
			out.AntiPatterns = append(out.AntiPatterns, p)
		} else {
			out.BestPractices = append(out.BestPractices, p)
		}
	}
	for _, r := range data.Insights.Recommendations {
		if r != "" {
			out.BestPractices = append(out.BestPractices, r)
		}
	}
	return out
}

func isAntiPattern(entry string) bool {
	lower := strings.ToLower(entry)
	for _, m := range antiMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
