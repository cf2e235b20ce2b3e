package categorize

import (
	"strings"
	"unicode"
)

// PlaceholderDescription is substituted whenever sanitization or the
// secondary compression call cannot produce a usable phrase.
const PlaceholderDescription = "Misc"

// maxDescriptionWords caps the sanitized description length.
const maxDescriptionWords = 3

// currencyWords are stripped from descriptions; they carry no semantic
// signal beyond what the currency field already holds.
var currencyWords = map[string]bool{
	"ils": true, "usd": true, "eur": true, "rub": true, "gbp": true, "nis": true,
	"shekel": true, "shekels": true,
	"dollar": true, "dollars": true,
	"euro": true, "euros": true,
	"ruble": true, "rubles": true,
	"pound": true, "pounds": true,
}

// Sanitize reduces a free-text fragment to a short phrase: currency symbols
// and words, digits, and all punctuation are removed, whitespace is
// collapsed, and the result is truncated to at most 3 words. The result is
// never empty; PlaceholderDescription covers fully stripped input.
func Sanitize(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		// Everything that is not a letter (digits, punctuation, currency
		// symbols) becomes a token boundary.
		return ' '
	}, text)

	words := make([]string, 0, maxDescriptionWords)
	for _, token := range strings.Fields(cleaned) {
		if currencyWords[strings.ToLower(token)] {
			continue
		}
		words = append(words, token)
		if len(words) == maxDescriptionWords {
			break
		}
	}

	if len(words) == 0 {
		return PlaceholderDescription
	}
	return strings.Join(words, " ")
}

// IsEnglish reports whether the phrase is expressible in the target output
// language. The heuristic is plain ASCII letters: any non-ASCII letter
// (Cyrillic, Hebrew, accented characters) means the extractor should
// escalate to the compression call.
func IsEnglish(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
