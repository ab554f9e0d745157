package extraction

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeJSON parses the model's response text into out. The model is asked
// for JSON only, but responses sometimes arrive wrapped in code fences or
// embedded in prose, so parsing falls back to the first balanced JSON object
// found in the text before giving up.
func decodeJSON(text string, out any) error {
	trimmed := trimFences(text)
	if err := json.Unmarshal([]byte(trimmed), out); err == nil {
		return nil
	}
	embedded, ok := firstJSONObject(trimmed)
	if !ok {
		return fmt.Errorf("no JSON object in response")
	}
	if err := json.Unmarshal([]byte(embedded), out); err != nil {
		return fmt.Errorf("parse embedded JSON: %w", err)
	}
	return nil
}

func trimFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// firstJSONObject scans for the first balanced {...} span, skipping braces
// inside string literals.
func firstJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
