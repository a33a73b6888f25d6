package morph

import "strings"

// Built-in declension ruleset. It is not a dictionary analyzer: it applies
// longest-suffix-match ending tables that cover the word shapes this system
// actually inflects (Russian surnames, given names, patronymics, position
// titles). Words outside the tables are declined by the default consonant
// pattern or reported as unhandled, and the caller keeps them unchanged.
//
// The accusative follows the animate pattern throughout: every word here
// names a person or a person's position.

// endings maps a nominative suffix to its form in each oblique case, in
// Genitive, Dative, Accusative, Instrumental, Prepositional order.
type endings struct {
	suffix string
	forms  [5]string
}

// Ordered longest suffix first; the first match wins.
var declensions = []endings{
	// Adjectival position titles: главный, генеральный, старший, ведущий.
	{"ший", [5]string{"шего", "шему", "шего", "шим", "шем"}},
	{"щий", [5]string{"щего", "щему", "щего", "щим", "щем"}},
	{"жий", [5]string{"жего", "жему", "жего", "жим", "жем"}},
	{"ний", [5]string{"него", "нему", "него", "ним", "нем"}},
	{"чий", [5]string{"чего", "чему", "чего", "чим", "чем"}},
	{"ый", [5]string{"ого", "ому", "ого", "ым", "ом"}},
	{"ая", [5]string{"ой", "ой", "ую", "ой", "ой"}},
	{"яя", [5]string{"ей", "ей", "юю", "ей", "ей"}},

	// Feminine surnames: Иванова, Сергеева.
	{"ова", [5]string{"овой", "овой", "ову", "овой", "овой"}},
	{"ева", [5]string{"евой", "евой", "еву", "евой", "евой"}},
	{"ёва", [5]string{"ёвой", "ёвой", "ёву", "ёвой", "ёвой"}},

	// Masculine surnames and patronymics: Иванов, Кузьмин, Иванович.
	{"ов", [5]string{"ова", "ову", "ова", "овым", "ове"}},
	{"ев", [5]string{"ева", "еву", "ева", "евым", "еве"}},
	{"ёв", [5]string{"ёва", "ёву", "ёва", "ёвым", "ёве"}},
	{"ин", [5]string{"ина", "ину", "ина", "иным", "ине"}},
	{"ын", [5]string{"ына", "ыну", "ына", "ыным", "ыне"}},
	{"ич", [5]string{"ича", "ичу", "ича", "ичем", "иче"}},

	// Nouns in -ия (Мария), -й (Алексей, Дмитрий), soft sign (Игорь).
	{"ия", [5]string{"ии", "ии", "ию", "ией", "ии"}},
	{"ий", [5]string{"ия", "ию", "ия", "ием", "ии"}},
	{"й", [5]string{"я", "ю", "я", "ем", "е"}},
	{"ь", [5]string{"я", "ю", "я", "ем", "е"}},

	// Generic feminine nouns in -а/-я (Ольга handled by the spelling rule
	// below, Илья by this -я entry).
	{"я", [5]string{"и", "е", "ю", "ей", "е"}},
	{"а", [5]string{"ы", "е", "у", "ой", "е"}},
}

// velarsAndHushers trigger the и-for-ы spelling rule after -а.
const velarsAndHushers = "гкхжчшщ"

// Vowel endings that mark indeclinable surnames (Петренко, Дурново).
const indeclinableEndings = "оеиуюэ"

// ruleset is the built-in Analyzer.
type ruleset struct{}

// Ruleset returns the built-in suffix-table analyzer.
func Ruleset() Analyzer {
	return ruleset{}
}

// Inflect declines a single word into the target case.
func (ruleset) Inflect(word string, c Case) (string, bool) {
	if word == "" {
		return "", false
	}
	if c == Nominative {
		return word, true
	}
	if c < Genitive || c > Prepositional {
		return "", false
	}

	lower := strings.ToLower(word)
	runes := []rune(lower)
	last := runes[len(runes)-1]

	// Indeclinable vowel endings pass through as correctly inflected.
	if strings.ContainsRune(indeclinableEndings, last) {
		return lower, true
	}

	for _, d := range declensions {
		if !strings.HasSuffix(lower, d.suffix) {
			continue
		}
		stem := lower[:len(lower)-len(d.suffix)]
		if stem == "" {
			break
		}
		form := d.forms[int(c)-1]
		if d.suffix == "а" && form == "ы" && endsWithAny(stem, velarsAndHushers) {
			form = "и"
		}
		return stem + form, true
	}

	// Default: consonant-final noun, animate pattern.
	if isCyrillicConsonant(last) {
		switch c {
		case Genitive, Accusative:
			return lower + "а", true
		case Dative:
			return lower + "у", true
		case Instrumental:
			return lower + "ом", true
		case Prepositional:
			return lower + "е", true
		}
	}

	return "", false
}

// Masculine given names ending in a vowel, which the -а/-я heuristic would
// otherwise misclassify.
var masculineVowelNames = map[string]bool{
	"никита":  true,
	"илья":    true,
	"фома":    true,
	"кузьма":  true,
	"лука":    true,
	"савва":   true,
	"данила":  true,
	"гаврила": true,
}

// FeminineGiven reports whether a given name looks grammatically feminine:
// it ends in -а/-я and is not a known masculine exception.
func (ruleset) FeminineGiven(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" || masculineVowelNames[lower] {
		return false
	}
	return strings.HasSuffix(lower, "а") || strings.HasSuffix(lower, "я")
}

func endsWithAny(s, set string) bool {
	runes := []rune(s)
	if len(runes) == 0 {
		return false
	}
	return strings.ContainsRune(set, runes[len(runes)-1])
}

func isCyrillicConsonant(r rune) bool {
	if r < 'а' || r > 'я' {
		return false
	}
	return !strings.ContainsRune("аеёиоуыэюя", r)
}
