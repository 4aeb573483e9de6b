package summary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// structuredCandidate mirrors {"summary": string, "recommendations": []string}.
// Fields stay raw so that wrong types are reported as validation failures.
type structuredCandidate struct {
	Summary         json.RawMessage `json:"summary"`
	Recommendations json.RawMessage `json:"recommendations"`
}

// jsonObjects returns every balanced {...} substring of s, in order of
// their opening brace. Nested objects are not returned separately.
func jsonObjects(s string) []string {
	var out []string
	for i := 0; i < len(s); {
		idx := strings.IndexByte(s[i:], '{')
		if idx < 0 {
			break
		}
		start := i + idx
		obj := balancedObject(s[start:])
		if obj == "" {
			// unbalanced: a later brace may still open a complete object
			i = start + 1
			continue
		}
		out = append(out, obj)
		i = start + len(obj)
	}
	return out
}

// balancedObject returns the prefix of s that forms a balanced object,
// or "" if s does not start with '{' or never closes.
func balancedObject(s string) string {
	if s == "" || s[0] != '{' {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && ch == '\\':
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}

// decodeStructured decodes one object. ok is false for malformed JSON.
func decodeStructured(obj string) (candidate, bool) {
	var sc structuredCandidate
	if err := json.Unmarshal([]byte(obj), &sc); err != nil {
		return candidate{}, false
	}
	var c candidate
	if len(sc.Summary) > 0 && !isNull(sc.Summary) {
		var text string
		if err := json.Unmarshal(sc.Summary, &text); err != nil {
			empty := ""
			c.text = &empty
		} else {
			c.text = &text
		}
	}
	if len(sc.Recommendations) > 0 && !isNull(sc.Recommendations) {
		var recs []string
		if err := json.Unmarshal(sc.Recommendations, &recs); err != nil {
			c.recsErr = fmt.Errorf("%w: %s", ErrInvalidRecommendations, compact(sc.Recommendations))
		} else {
			c.recs = recs
		}
	}
	return c, true
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func compact(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	s := buf.String()
	if len(s) > 80 {
		s = s[:80] + "..."
	}
	return s
}
