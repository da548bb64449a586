package files

import (
	"regexp"
	"strings"
)

var (
	// promoTagPattern matches the "(MyMp3Song)" / "(MyMp3Songs)" marketing
	// suffix embedded in uploaded filenames, in any letter case.
	promoTagPattern = regexp.MustCompile(`(?i)\(MyMp3Song[s]?\)`)

	// separatorRunPattern matches runs of whitespace, hyphens and commas.
	separatorRunPattern = regexp.MustCompile(`[\s\-,]+`)

	// extensionPattern matches the trailing dot-delimited file extension.
	extensionPattern = regexp.MustCompile(`\.[a-zA-Z0-9]+$`)
)

// DisplayName returns the human-facing filename: the original name with the
// promotional tag removed and everything else left untouched.
func DisplayName(original string) string {
	return promoTagPattern.ReplaceAllString(original, "")
}

// StorageKey returns the object-store key for an uploaded file: separator
// runs collapsed to a single hyphen, the promotional tag removed and
// surrounding whitespace trimmed. The file extension is kept.
func StorageKey(original string) string {
	key := separatorRunPattern.ReplaceAllString(original, "-")
	key = promoTagPattern.ReplaceAllString(key, "")
	return strings.TrimSpace(key)
}

// BaseTrackName returns the storage-key stem with the file extension
// stripped. It prefixes derived cover-image keys.
func BaseTrackName(original string) string {
	base := separatorRunPattern.ReplaceAllString(original, "-")
	base = promoTagPattern.ReplaceAllString(base, "")
	base = extensionPattern.ReplaceAllString(base, "")
	return strings.TrimSpace(base)
}
