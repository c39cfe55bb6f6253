package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var reCRLF = regexp.MustCompile(`\r\n?`)

// Normalize converts s to NFC, turns CR and CRLF line ends into "\n" and trims
// surrounding whitespace. Spacing inside the document is kept as extracted.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = norm.NFC.String(s)
	s = reCRLF.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
