package app

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// idAllocator hands out unique, URL-safe identifiers derived from labels.
type idAllocator struct {
	used map[string]int
}

func newIDAllocator() *idAllocator {
	return &idAllocator{used: make(map[string]int)}
}

// reserve claims an explicit ID. It reports false when the ID is taken.
func (a *idAllocator) reserve(id string) bool {
	if _, taken := a.used[id]; taken {
		return false
	}
	a.used[id] = 1
	return true
}

// next derives an ID from label (or fallback when the label has no usable
// characters) and suffixes -2, -3... on collisions.
func (a *idAllocator) next(label, fallback string) string {
	base := slugify(label)
	if base == "" {
		base = fallback
	}
	count, taken := a.used[base]
	if !taken {
		a.used[base] = 1
		return base
	}
	for {
		count++
		candidate := base + "-" + strconv.Itoa(count)
		if _, exists := a.used[candidate]; exists {
			continue
		}
		a.used[base] = count
		a.used[candidate] = 1
		return candidate
	}
}

var germanFolding = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"Ä", "ae", "Ö", "oe", "Ü", "ue",
)

// slugify lower-cases label, folds umlauts, strips remaining diacritics and
// joins the alphanumeric runs with dashes.
func slugify(label string) string {
	folded := germanFolding.Replace(strings.TrimSpace(label))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, folded)
	if err != nil {
		stripped = folded
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(stripped) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}
	return b.String()
}
