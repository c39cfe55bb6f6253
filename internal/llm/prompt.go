package llm

import (
	"strings"
)

// SystemPrompt is the fixed instruction sent ahead of every document.
const SystemPrompt = "You are an assistant that extracts structured data from court decision text."

// BuildUserPrompt embeds the document text and the per-field extraction rules.
// It is pure: the same text always yields the same prompt.
func BuildUserPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Court decision text:\n\"")
	b.WriteString(text)
	b.WriteString("\"\n\n")
	b.WriteString("Extract the following fields:\n")
	b.WriteString("- decision_date: the date of the court decision in DD.MM.YYYY format,\n")
	b.WriteString("- debt_amount: the debt amount without currency (null if absent),\n")
	b.WriteString("- fine_amount: the fine amount without currency (null if absent).\n\n")
	b.WriteString("Return the answer as a JSON object with exactly these keys: decision_date, debt_amount, fine_amount.")
	return b.String()
}
