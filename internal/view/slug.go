package view

import "strings"

// Slugify maps a display title to its URL-safe identifier: lowercase, every
// run of characters outside [a-z0-9] collapsed to a single '-', and no
// leading or trailing '-'. Product detail resolution and the site index
// both call this function; there must never be a second implementation,
// since any divergence breaks links between the two.
//
// Slugify is idempotent: Slugify(Slugify(s)) == Slugify(s).
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingDash := false
	for _, r := range strings.ToLower(title) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingDash = true
			continue
		}
		if pendingDash && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingDash = false
		b.WriteRune(r)
	}
	return b.String()
}
