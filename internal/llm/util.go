package llm

import "strings"

// CleanJSONBlock strips a surrounding markdown code fence from a model
// response. Models wrap JSON in ``` fences even when told to return bare JSON.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	body, fenced := strings.CutPrefix(text, "```")
	if !fenced {
		return text
	}

	// The opening fence may carry a language tag ("json", "javascript").
	if rest, ok := strings.CutPrefix(body, "json"); ok {
		body = rest
	} else if line, rest, ok := strings.Cut(body, "\n"); ok && isLanguageTag(line) {
		body = rest
	}

	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}

// isLanguageTag reports whether a fence's opening line is a language marker
// rather than content
func isLanguageTag(line string) bool {
	return len(line) < 20 && !strings.ContainsAny(line, " {")
}
