package export

import (
	"regexp"
	"strings"
)

// FileSuffix is appended to every exported file name
const FileSuffix = "_Resume.pdf"

var nonAlphanumericRun = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Filename derives the download name from a full name. Every run of characters that are
// neither letters nor digits becomes one underscore, and leading or trailing runs are
// dropped. "Jane Q Doe" becomes "Jane_Q_Doe_Resume.pdf".
func Filename(fullName string) string {
	base := strings.Trim(nonAlphanumericRun.ReplaceAllString(fullName, "_"), "_")
	if base == "" {
		return strings.TrimPrefix(FileSuffix, "_")
	}
	return base + FileSuffix
}
