package engine

import "strings"

// GeneratorFunc builds a technology-specific skeleton for a request,
// given the insights already fetched for that technology.
type GeneratorFunc func(req *CodeGenerationRequest, ins TechnologyInsights) string

// GeneratorEntry binds an ordered set of technology keys to a builder.
// Keys are matched as lowercase substrings of the requested technology,
// first entry wins, so overlapping names (mysql vs postgresql) must be
// listed in the order the table documents.
type GeneratorEntry struct {
	Keys  []string
	Build GeneratorFunc
}

// GeneratorTable is the ordered dispatch list for one category. The last
// entry acts as the terminal fallback when its Keys are empty.
type GeneratorTable []GeneratorEntry

// Resolve returns the first entry whose key matches the technology, or
// the terminal fallback entry. The table must end with an entry with no
// keys; Resolve returns nil only for an empty or malformed table.
func (t GeneratorTable) Resolve(technology string) GeneratorFunc {
	tech := strings.ToLower(strings.TrimSpace(technology))
	for _, e := range t {
		if len(e.Keys) == 0 {
			return e.Build
		}
		for _, k := range e.Keys {
			if strings.Contains(tech, k) {
				return e.Build
			}
		}
	}
	return nil
}
