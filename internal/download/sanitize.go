// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"regexp"
	"strings"
)

// pdfExt is the artifact extension every stored file carries.
const pdfExt = ".pdf"

// maxFilenameLen bounds the sanitized name, in runes, before the extension
// check. Truncation happens first so the final name always ends in .pdf.
const maxFilenameLen = 200

// unsafeFilenameChars matches characters that are invalid in filenames on
// at least one supported platform.
var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename turns an article title into a filesystem-safe PDF
// filename. It never fails: unsafe characters become underscores, the name
// is truncated to 200 runes, and the .pdf suffix is appended when missing.
func SanitizeFilename(title string) string {
	name := unsafeFilenameChars.ReplaceAllString(title, "_")
	if runes := []rune(name); len(runes) > maxFilenameLen {
		name = string(runes[:maxFilenameLen])
	}
	if !strings.HasSuffix(strings.ToLower(name), pdfExt) {
		name += pdfExt
	}
	return name
}
