// Package morph inflects Russian personal names and position titles into
// grammatical cases, derives initials, and infers grammatical gender from
// name structure.
//
// Inflection is delegated to an Analyzer so the pipeline can run against a
// deterministic fake in tests; Ruleset returns the built-in suffix-table
// analyzer. Every operation degrades to passing text through unchanged
// rather than failing: a token the analyzer cannot inflect is kept as-is.
package morph

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Case is a Russian grammatical case.
type Case int

const (
	// Nominative is the dictionary form (кто? что?).
	Nominative Case = iota
	// Genitive (кого? чего?).
	Genitive
	// Dative (кому? чему?).
	Dative
	// Accusative (кого? что?).
	Accusative
	// Instrumental (кем? чем?).
	Instrumental
	// Prepositional (о ком? о чём?).
	Prepositional
)

// String returns the conventional short tag for the case.
func (c Case) String() string {
	switch c {
	case Nominative:
		return "nomn"
	case Genitive:
		return "gent"
	case Dative:
		return "datv"
	case Accusative:
		return "accs"
	case Instrumental:
		return "ablt"
	case Prepositional:
		return "loct"
	default:
		return "unknown"
	}
}

// Analyzer provides morphological analysis for single words.
type Analyzer interface {
	// Inflect returns the word in the target case. The second return is
	// false when the analyzer cannot inflect the word; callers keep the
	// original token in that situation.
	Inflect(word string, c Case) (string, bool)

	// FeminineGiven reports whether a given (first) name is grammatically
	// feminine. Used as the gender fallback when the patronymic is absent
	// or unrecognized.
	FeminineGiven(name string) bool
}

// Inflect inflects whitespace-separated text word by word into the target
// case. Each token keeps its original capitalization pattern; tokens the
// analyzer misses pass through unchanged. The recomposed result has its
// first letter capitalized. Empty input returns "".
func Inflect(a Analyzer, text string, c Case) string {
	if text == "" || a == nil {
		return text
	}

	words := strings.Fields(text)
	res := make([]string, 0, len(words))
	for _, w := range words {
		capitalized := startsUpper(w)
		inflected, ok := a.Inflect(w, c)
		if !ok {
			res = append(res, w)
			continue
		}
		if capitalized {
			inflected = upperFirst(inflected)
		}
		res = append(res, inflected)
	}

	return upperFirst(strings.Join(res, " "))
}

// Initials formats a 3+ token full name as "Фамилия И.О.". Shorter names
// are returned unchanged.
func Initials(fullName string) string {
	if fullName == "" {
		return ""
	}
	p := strings.Fields(fullName)
	if len(p) < 3 {
		return fullName
	}
	return titleWord(p[0]) + " " + upperFirst(firstLetter(p[1])) + "." + upperFirst(firstLetter(p[2])) + "."
}

// Feminine patronymic suffixes: Ивановна, Ильинична, Саввишна.
var feminineP = []string{"вна", "чна", "шна"}

// GenderedWord picks the masculine or feminine word form for the person
// named by fullName. The patronymic suffix decides when present; otherwise
// the analyzer classifies the first name; masculine is the default.
func GenderedWord(a Analyzer, fullName, masc, fem string) string {
	if fullName == "" {
		return masc
	}
	parts := strings.Fields(fullName)
	if len(parts) >= 3 {
		patr := strings.ToLower(parts[2])
		for _, suf := range feminineP {
			if strings.HasSuffix(patr, suf) {
				return fem
			}
		}
		if strings.HasSuffix(patr, "вич") {
			return masc
		}
	}
	if len(parts) >= 2 && a != nil && a.FeminineGiven(parts[1]) {
		return fem
	}
	return masc
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// titleWord capitalizes the first letter and lowercases the rest, so an
// all-caps surname from a registry export renders as "Иванов".
func titleWord(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func firstLetter(s string) string {
	if s == "" {
		return s
	}
	r, _ := utf8.DecodeRuneInString(s)
	return string(r)
}
