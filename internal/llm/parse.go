package llm

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
)

type ParseStatus int

const (
	// StatusUnparsed means no usable structure was recovered; all fields are absent.
	StatusUnparsed ParseStatus = iota
	// StatusParsed means the reply decoded into the decision shape, possibly partially.
	StatusParsed
)

func (s ParseStatus) String() string {
	if s == StatusParsed {
		return "parsed"
	}
	return "unparsed"
}

// ParseResult is the tagged outcome of ParseReply. Fields is only meaningful
// when Status is StatusParsed; Reason explains an unparsed reply.
type ParseResult struct {
	Status ParseStatus
	Fields DecisionFields
	Reason string
}

func unparsed(reason string) ParseResult {
	return ParseResult{Status: StatusUnparsed, Reason: reason}
}

// ParseReply decodes an untrusted model reply into decision fields. It never
// panics and never returns an error: anything it cannot make sense of comes
// back as StatusUnparsed.
func ParseReply(raw string, ok bool, logger *slog.Logger) ParseResult {
	if logger == nil {
		logger = slog.Default()
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return unparsed("no response")
	}

	doc, err := decodeObject(stripFences(raw))
	if err != nil {
		logger.Warn("llm.parse.decode_error", "error", err, "reply_len", len(raw))
		return unparsed(err.Error())
	}

	if !hasAnyField(doc) {
		logger.Warn("llm.parse.no_expected_keys", "keys", len(doc))
		return unparsed("no expected keys")
	}

	cleaned, changed := SanitizeDecisionFields(doc)
	if err := ValidateDecision(cleaned); err != nil {
		logger.Warn("llm.parse.schema_validation_failed", "error", err)
		return unparsed("schema validation failed")
	}
	if len(changed) > 0 {
		logger.Warn("llm.parse.lenient_sanitize_applied", "changed", changed)
	}
	return ParseResult{Status: StatusParsed, Fields: fieldsFrom(cleaned)}
}

func hasAnyField(doc map[string]any) bool {
	for _, k := range FieldNames {
		if _, ok := doc[k]; ok {
			return true
		}
	}
	return false
}

var errNotObject = errors.New("reply is not a JSON object")

// decodeObject decodes s as a single JSON object. When s carries prose around
// the object, the outermost {...} span is tried as a fallback.
func decodeObject(s string) (map[string]any, error) {
	m, err := decodeStrict(s)
	if err == nil {
		return m, nil
	}
	start, end := strings.Index(s, "{"), strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return nil, err
	}
	if m, innerErr := decodeStrict(s[start : end+1]); innerErr == nil {
		return m, nil
	}
	return nil, err
}

func decodeStrict(s string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return m, nil
}

// stripFences removes a surrounding markdown code fence such as ```json ... ```.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.ContainsAny(s[:i], "{[") {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func fieldsFrom(doc map[string]any) DecisionFields {
	get := func(k string) *string {
		if s, ok := doc[k].(string); ok {
			return &s
		}
		return nil
	}
	return DecisionFields{
		DecisionDate: get("decision_date"),
		DebtAmount:   get("debt_amount"),
		FineAmount:   get("fine_amount"),
	}
}
