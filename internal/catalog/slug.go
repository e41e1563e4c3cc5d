package catalog

import (
	"fmt"
	"strings"
)

// slugFallback stands in for titles whose slug reduces to nothing
// (all punctuation, non-latin, etc).
const slugFallback = "wallpaper"

// Slugify lowercases the title and collapses every run of
// non-alphanumeric characters into a single dash, with no leading or
// trailing dashes.
func Slugify(title string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// UniqueSlug derives a slug from title and appends -1, -2, ... until
// exists reports the candidate free. The result is deterministic for a
// given title and set of taken slugs.
func UniqueSlug(title string, exists func(slug string) (bool, error)) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = slugFallback
	}

	slug := base
	for n := 1; ; n++ {
		taken, err := exists(slug)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", slug, err)
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}
