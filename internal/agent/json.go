package agent

import (
	"fmt"
	"strings"
)

// extractJSON recovers the JSON object from messy model output: markdown
// code fences and surrounding prose are stripped, then the outermost
// {...} substring is returned. Returns ErrMalformedOutput if no object
// delimiters are found.
func extractJSON(text string) (string, error) {
	// Strip markdown code fences if present.
	if strings.Contains(text, "```") {
		text = strings.ReplaceAll(text, "```json", "```")
		if start := strings.Index(text, "```"); start >= 0 {
			rest := text[start+3:]
			if end := strings.Index(rest, "```"); end >= 0 {
				text = rest[:end]
			} else {
				text = rest
			}
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("%w", ErrMalformedOutput)
	}
	return text[start : end+1], nil
}
