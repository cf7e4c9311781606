package domain

import (
	"regexp"
	"strings"

	"github.com/oklog/ulid/v2"
)

// IDLength is the encoded length of a post identifier. Identifiers are
// ULIDs, so lexicographic order approximates creation order and a directory
// listing sorted by filename is already roughly chronological.
const IDLength = ulid.EncodedSize

// nonWordRun matches runs of characters that do not belong in a slug.
// Letters from any script and digits are kept, so non-Latin titles keep
// their characters instead of being transliterated away.
var nonWordRun = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// NewID returns a fresh post identifier. IDs are unique for the process
// lifetime and strictly increasing when generated in sequence.
func NewID() string {
	return ulid.Make().String()
}

// IsID reports whether s has the shape of a post identifier.
func IsID(s string) bool {
	if len(s) != IDLength {
		return false
	}
	_, err := ulid.ParseStrict(s)
	return err == nil
}

// Slugify derives a URL-safe label from a title: lowercased, with every run
// of non-word characters collapsed to a single hyphen and no leading or
// trailing hyphens. An empty result means the title cannot name a post.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = nonWordRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
