package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases a name and collapses runs of whitespace.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return whitespaceRegex.ReplaceAllString(name, " ")
}

// NameParts returns the first word of a name and the first letter of its
// second word, so "Ana Maria Smith" gives "Ana" and "M". lastInitial is
// empty for single word names.
func NameParts(name string) (first string, lastInitial string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}
	first = fields[0]
	if len(fields) < 2 {
		return first, ""
	}
	r, _ := utf8.DecodeRuneInString(fields[1])
	return first, string(r)
}

// Slug joins the words of a name with dashes.
func Slug(name string) string {
	return strings.Join(strings.Fields(name), "-")
}

// IsNumeric reports whether s is made of digits only.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !unicode.IsDigit(c) {
			return false
		}
	}
	return true
}
