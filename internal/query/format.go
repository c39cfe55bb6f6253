package query

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/decisions-extractor/internal/entity"
)

const (
	// absentValue stands in for a field the extraction never produced.
	absentValue = "n/a"

	NoRecordsMessage   = "No records found for the sampled IDs."
	UnavailableMessage = "The decision store is temporarily unavailable. Please try again later."
	UsageMessage       = "Send /start to see a random sample of stored decisions, or send a decision ID (digits only) to look it up."
)

// FormatDecision renders one record as a single chat line.
func FormatDecision(d *entity.Decision) string {
	return fmt.Sprintf("ID: %d, Date: %s, Debt: %s, Fine: %s",
		d.ID, orAbsent(d.DecisionDate), orAbsent(d.DebtAmount), orAbsent(d.FineAmount))
}

// FormatDecisions renders records one per line, in the given order.
func FormatDecisions(ds []*entity.Decision) string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = FormatDecision(d)
	}
	return strings.Join(lines, "\n")
}

func NotFoundMessage(id string) string {
	return fmt.Sprintf("Record with ID %s not found.", id)
}

func orAbsent(s *string) string {
	if s == nil {
		return absentValue
	}
	return *s
}
