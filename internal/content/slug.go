package content

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Slugify lower-cases name and replaces every run of whitespace with a
// single hyphen. Other punctuation is kept: "Jane Q. Public" becomes
// "jane-q.-public".
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	inSpace := false
	for _, r := range name {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}

	return cases.Lower(language.Und).String(b.String())
}
