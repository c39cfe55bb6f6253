package llm

import (
	"encoding/json"
	"strings"
)

// SanitizeDecisionFields coerces a loosely shaped reply toward the decision
// schema: numbers become their literal text, strings are trimmed, "null"
// strings and values of any other type become null, and unknown keys are
// removed. It returns the cleaned copy and what it changed.
func SanitizeDecisionFields(m map[string]any) (map[string]any, []string) {
	allowed := make(map[string]struct{}, len(FieldNames))
	for _, k := range FieldNames {
		allowed[k] = struct{}{}
	}

	out := make(map[string]any, len(FieldNames))
	changed := make([]string, 0, 4)
	for k, v := range m {
		if _, ok := allowed[k]; !ok {
			changed = append(changed, k+"(unknown)")
			continue
		}
		switch t := v.(type) {
		case nil:
			out[k] = nil
		case string:
			s := strings.TrimSpace(t)
			if strings.EqualFold(s, "null") {
				out[k] = nil
				changed = append(changed, k+"(null-string)")
				continue
			}
			out[k] = s
		case json.Number:
			out[k] = t.String()
			changed = append(changed, k+"(number)")
		default:
			// bool, array, object
			out[k] = nil
			changed = append(changed, k+"(type)")
		}
	}
	return out, changed
}
