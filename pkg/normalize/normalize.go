// Package normalize canonicalizes free text for comparison.
//
// A Key is produced by case folding, stripping combining marks,
// transliterating letters that have no Unicode decomposition (œ, æ, ø, ł...)
// and trimming. Keys are only ever compared; the original text is what gets
// reported to the operator.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Key is the comparison form of a text value. The zero Key means "no value".
type Key string

// IsZero reports whether the key carries no value.
func (k Key) IsZero() bool { return k == "" }

// String returns the key text.
func (k Key) String() string { return string(k) }

// Equal reports whether both keys carry a value and the values are equal.
// Two absent values never match.
func (k Key) Equal(other Key) bool {
	return k != "" && k == other
}

var stripMarks = runes.Remove(runes.In(unicode.Mn))

// ligatures covers letters that NFD leaves intact. It runs on folded text,
// after marks are stripped, so "ǣ" reaches it as "æ".
var ligatures = strings.NewReplacer(
	"œ", "oe",
	"æ", "ae",
	"ø", "o",
	"ł", "l",
	"đ", "d",
	"ð", "d",
	"þ", "th",
	"ı", "i",
	"’", "'", "‘", "'",
)

// Fold removes diacritics and folds case without trimming. The final
// lowercase pass pins scripts such as Cherokee, whose case folding maps to
// uppercase, so that folding an already folded string changes nothing.
func Fold(s string) string {
	// A fresh caser per call: cases.Caser is stateful and not safe for concurrent use.
	s = cases.Fold().String(s)
	t := transform.Chain(norm.NFD, stripMarks, norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(ligatures.Replace(out))
}

// Text returns the comparison key of a free-text value such as a person or
// dog name. Blank input yields the zero Key.
func Text(s string) Key {
	return Key(strings.TrimSpace(Fold(s)))
}

// Affix returns the comparison key of a kennel affix. Affixes additionally
// drop all internal whitespace, so "Du Clos" and "duclos" share a key.
func Affix(s string) Key {
	return Key(strings.Join(strings.Fields(Fold(s)), ""))
}

// Name joins the non-blank parts with a single space.
func Name(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
