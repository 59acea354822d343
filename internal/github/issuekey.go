package github

import (
	"regexp"
	"strings"
)

// issueKeyPattern is deliberately unanchored: a key embedded in a longer
// token (XBUG-12) still matches. Changing this silently would reclassify
// historical commit messages, so it stays until product says otherwise.
var issueKeyPattern = regexp.MustCompile(`(?i)BUG-\d+`)

// ExtractIssueKeys scans text for issue key references and returns the
// distinct keys uppercased, in first-seen order. Empty input yields nil.
func ExtractIssueKeys(text string) []string {
	if text == "" {
		return nil
	}

	var keys []string
	seen := make(map[string]struct{})
	for _, match := range issueKeyPattern.FindAllString(text, -1) {
		key := strings.ToUpper(match)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}
