package database

import (
	"strconv"
	"strings"
	"time"
)

// Characters removed outright during slugification instead of being
// replaced with a separator.
const slugStripSet = `*+~.()'"!:@`

// Slugify lowercases the title, drops the stripped punctuation set and
// collapses every other non-alphanumeric run into a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		case strings.ContainsRune(slugStripSet, r):
			// dropped entirely, no separator
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// GenerateSlug derives a URL-safe identifier from a title, suffixed with the
// millisecond epoch so identical titles still get distinct slugs. Two calls
// within the same millisecond can still collide; the unique constraint on
// posts.slug is the safety net, and PostRepo.UniqueSlug regenerates on
// conflict.
func GenerateSlug(title string) string {
	return GenerateSlugAt(title, time.Now())
}

// GenerateSlugAt is GenerateSlug with an injectable clock.
func GenerateSlugAt(title string, now time.Time) string {
	base := Slugify(title)
	if base == "" {
		base = "post"
	}
	return base + "-" + strconv.FormatInt(now.UnixMilli(), 10)
}
