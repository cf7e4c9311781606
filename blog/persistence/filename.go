package persistence

import (
	"strings"

	"github.com/dhkim-dev/inkpress/blog/domain"
)

const postExt = ".md"

// decodedFilename is the result of decoding an on-disk post filename.
// Canonical names embed a fixed-length id before the slug; anything else is
// a legacy name whose whole stem doubles as the slug.
type decodedFilename struct {
	ID     string // empty for legacy files
	Slug   string
	Legacy bool
}

// encodeFilename produces the canonical filename for a post. New and updated
// files always use this shape.
func encodeFilename(id, slug string) string {
	return id + "-" + slug + postExt
}

// decodeFilename splits a filename into id and slug. It never fails:
// malformed or pre-identifier names fall back to the legacy interpretation.
func decodeFilename(name string) decodedFilename {
	stem := strings.TrimSuffix(name, postExt)
	if len(stem) > domain.IDLength && stem[domain.IDLength] == '-' {
		if id := stem[:domain.IDLength]; domain.IsID(id) {
			return decodedFilename{ID: id, Slug: stem[domain.IDLength+1:]}
		}
	}
	return decodedFilename{Slug: stem, Legacy: true}
}
