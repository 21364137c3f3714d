package contextbuild

import (
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[A-Za-z0-9_]+`)

// ExtractKeywords tokenizes task by runs of alphanumeric-or-underscore
// characters, lower-cases each token, and drops tokens of length <= 2 or
// on stopWords, per spec.md §4.7 step 1. Order is preserved and duplicates
// are removed, keeping the first occurrence.
func ExtractKeywords(task string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tok := range tokenPattern.FindAllString(task, -1) {
		kw := strings.ToLower(tok)
		if len(kw) <= 2 || stopWords[kw] || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}
