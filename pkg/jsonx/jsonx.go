// Package jsonx extracts strict JSON from AI responses that may be wrapped
// in markdown fences or surrounded by prose. Every AI-backed call in the
// service shares this contract: strip fencing, parse strictly, and return an
// empty object on any failure.
package jsonx

import (
	"encoding/json"
	"strings"
)

// ExtractObject returns the first balanced JSON object found in raw, parsed
// into a map. Markdown code fences are stripped first. A missing or
// unparseable object yields an empty, non-nil map.
func ExtractObject(raw string) map[string]any {
	s := stripFences(raw)
	s = firstObject(s)
	out := map[string]any{}
	if s == "" {
		return out
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return map[string]any{}
	}
	return out
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// firstObject scans for the first balanced {...} block.
func firstObject(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
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
				return s[start : i+1]
			}
		}
	}
	return ""
}

// String returns m[key] when it is a string, else the empty string.
func String(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// Number returns m[key] coerced to float64 when it is a JSON number or a
// numeric string, else 0.
func Number(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case string:
		var f float64
		if err := json.Unmarshal([]byte(strings.TrimSpace(v)), &f); err == nil {
			return f
		}
	}
	return 0
}
