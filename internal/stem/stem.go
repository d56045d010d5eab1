package stem

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
	"mvdan.cc/xurls/v2"
)

var urlPattern = xurls.Strict()

// Stems tokenizes free text into a deduplicated list of normalized word
// stems, in first-appearance order. URLs are removed before tokenization;
// link fragments would otherwise leak meaningless stems into matching.
// Empty or whitespace-only text yields nil.
func Stems(text string) []string {
	text = urlPattern.ReplaceAllString(text, " ")

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	seen := make(map[string]struct{}, len(words))
	var stems []string

	for _, word := range words {
		s := english.Stem(word, true)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		stems = append(stems, s)
	}

	return stems
}
