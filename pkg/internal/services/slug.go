package services

import (
	"strings"

	"github.com/gosimple/slug"
)

// SlugLanguage selects the substitution table used by ToSlug.
// It is set once during boot.
var SlugLanguage = "en"

// ToSlug transliterates free text into a lowercase, hyphen separated token.
// The result may be empty when nothing in the input can be converted.
func ToSlug(text string) string {
	return slug.MakeLang(text, SlugLanguage)
}

// SlugOr falls back to the slug of fallback when text yields nothing.
func SlugOr(text, fallback string) string {
	if out := ToSlug(text); len(out) > 0 {
		return out
	}
	if out := ToSlug(fallback); len(out) > 0 {
		return out
	}
	return strings.ToLower(fallback)
}
