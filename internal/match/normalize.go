package match

import (
	"strings"
	"unicode"
)

// strippedSuffixes are dropped from normalized names, longest first.
var strippedSuffixes = []string{"timestamp", "ids", "utc", "id", "at", "on"}

// NormalizeIdent folds an identifier for fuzzy matching: CamelCase and
// separators (_, -, spaces, dots) are flattened and the result lowercased, so
// "createdAt", "created_at" and "Created-At" all become "createdat".
func NormalizeIdent(s string) string {
	return strings.ToLower(strings.Join(tokenizeCamelCase(s), ""))
}

// NormalizeIdentWithSuffixStrip normalizes and strips one common suffix
// (id, ids, at, on, utc, timestamp), unless nothing would remain.
func NormalizeIdentWithSuffixStrip(s string) string {
	normalized := NormalizeIdent(s)

	for _, suffix := range strippedSuffixes {
		if strings.HasSuffix(normalized, suffix) && len(normalized) > len(suffix) {
			return strings.TrimSuffix(normalized, suffix)
		}
	}

	return normalized
}

// tokenizeCamelCase splits an identifier into tokens at separators, at
// lower-to-upper transitions and at the end of acronyms:
//   - "createdAt" -> ["created", "At"]
//   - "HTTPStatus" -> ["HTTP", "Status"]
//   - "user.email_address" -> ["user", "email", "address"]
func tokenizeCamelCase(s string) []string {
	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
