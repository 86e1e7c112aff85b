package pipeline

import (
	"fmt"
	"strings"
)

// cleanJSON strips markdown code fences and leading/trailing prose around a
// JSON object in LLM output.
func cleanJSON(text string) string {
	text = stripFences(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}

// cleanJSONArray is cleanJSON for a top-level JSON array.
func cleanJSONArray(text string) string {
	text = stripFences(text)

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	return strings.TrimSpace(text)
}

// asString coerces a decoded JSON value to a string. Numbers are formatted
// without a decimal point when integral; nil and unknown types yield "".
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%g", s)
	case bool:
		return fmt.Sprintf("%t", s)
	default:
		return ""
	}
}

// asStringSlice coerces a decoded JSON value to a slice of strings, dropping
// blank entries. A bare string is split on commas.
func asStringSlice(v any) []string {
	out := []string{}
	switch s := v.(type) {
	case []any:
		for _, item := range s {
			if str := asString(item); str != "" {
				out = append(out, str)
			}
		}
	case string:
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
