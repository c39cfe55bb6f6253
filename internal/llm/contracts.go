package llm

import "context"

// DecisionFields is the shape we want from the LLM. A nil field means the
// model did not supply a value; a pointer to "" means it supplied an empty one.
type DecisionFields struct {
	DecisionDate *string `json:"decision_date"` // DD.MM.YYYY, not validated
	DebtAmount   *string `json:"debt_amount"`   // digits, currency stripped
	FineAmount   *string `json:"fine_amount"`
}

// Completer sends one prompt to a text-generation endpoint. ok is false when
// no usable reply was obtained; implementations log the cause and never fail
// the caller.
type Completer interface {
	Complete(ctx context.Context, prompt string) (reply string, ok bool)
}

// CompleterFunc adapts a plain function to Completer.
type CompleterFunc func(ctx context.Context, prompt string) (string, bool)

func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, bool) {
	return f(ctx, prompt)
}
