package constants

import (
	"path/filepath"
	"strings"
)

// PDF is the only source format the batch pipeline ingests.
const PDF = "pdf"

// AllowedExtensions holds the file extensions picked up from an input folder.
var AllowedExtensions = map[string]struct{}{
	PDF: {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsPDF reports whether path has a .pdf extension, ignoring case.
func IsPDF(path string) bool {
	_, ok := AllowedExtensions[NormalizeExt(filepath.Ext(path))]
	return ok
}
