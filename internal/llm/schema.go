package llm

// FieldNames lists the keys the model is asked to return, in prompt order.
var FieldNames = []string{"decision_date", "debt_amount", "fine_amount"}

// BuildDecisionJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
// Every field is optional and may be a string or null; nothing else is allowed.
func BuildDecisionJSONSchema() map[string]any {
	props := make(map[string]any, len(FieldNames))
	for _, name := range FieldNames {
		props[name] = nullableStringProp()
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}

func nullableStringProp() map[string]any {
	return map[string]any{
		"type": []string{"string", "null"},
	}
}
