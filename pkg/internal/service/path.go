package service

import (
	"fmt"
	"path/filepath"
	"strings"
)

// fallbackStem names blobs whose original filename slugs to nothing
// (e.g. "ñ.pdf" or a name of pure punctuation).
const fallbackStem = "archivo"

// ResolvePath derives the deterministic blob key for an uploaded file:
//
//	documents/{fraction}/{year}/{slug}{ext}
//
// Two uploads of the same filename under the same key resolve to the same
// path; the newer blob overwrites the older one and the database rows keep
// the full version history.
func ResolvePath(fractionNumber string, year int, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	stem := slugify(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))

	return fmt.Sprintf("documents/%s/%d/%s%s", fractionNumber, year, stem, ext)
}

// slugify lowercases the stem and collapses every run of characters outside
// [a-z0-9] into a single dash, trimming dashes at both ends.
func slugify(stem string) string {
	var b strings.Builder

	dash := false
	for _, r := range strings.ToLower(stem) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}

			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}

	if b.Len() == 0 {
		return fallbackStem
	}

	return b.String()
}
