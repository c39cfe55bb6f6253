package entity

// Decision is one stored court decision. The three extracted fields are
// independently optional: nil means the value was never extracted.
type Decision struct {
	ID           int64   `json:"id"`
	DecisionDate *string `json:"decision_date"`
	DebtAmount   *string `json:"debt_amount"`
	FineAmount   *string `json:"fine_amount"`
}
