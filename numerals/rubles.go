// Package numerals renders integer amounts as Russian cardinal-number
// phrases and grouped-digit strings for use in contract salary clauses.
package numerals

import (
	"strconv"
	"strings"
)

var (
	unitsMasc = []string{"", "один", "два", "три", "четыре", "пять", "шесть", "семь", "восемь", "девять"}
	unitsFem  = []string{"", "одна", "две", "три", "четыре", "пять", "шесть", "семь", "восемь", "девять"}
	teens     = []string{"десять", "одиннадцать", "двенадцать", "тринадцать", "четырнадцать",
		"пятнадцать", "шестнадцать", "семнадцать", "восемнадцать", "девятнадцать"}
	tens = []string{"", "", "двадцать", "тридцать", "сорок", "пятьдесят",
		"шестьдесят", "семьдесят", "восемьдесят", "девяносто"}
	hundreds = []string{"", "сто", "двести", "триста", "четыреста", "пятьсот",
		"шестьсот", "семьсот", "восемьсот", "девятьсот"}
)

// scale describes a thousands group: its three declined names (for counts
// of 1, 2-4, 5+) and whether the group is counted with feminine units
// (тысяча is feminine, миллион and миллиард are masculine).
type scale struct {
	one, few, many string
	feminine       bool
}

var scales = []scale{
	{"", "", "", false}, // ones group, no name
	{"тысяча", "тысячи", "тысяч", true},
	{"миллион", "миллиона", "миллионов", false},
	{"миллиард", "миллиарда", "миллиардов", false},
}

// InWords spells out a non-negative integer as a lowercase Russian cardinal
// phrase: InWords(120000) = "сто двадцать тысяч". Zero renders as "ноль".
func InWords(n int64) string {
	if n == 0 {
		return "ноль"
	}
	if n < 0 {
		return "минус " + InWords(-n)
	}

	// Split into thousands groups, least significant first.
	var groups []int64
	for n > 0 {
		groups = append(groups, n%1000)
		n /= 1000
	}

	var parts []string
	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		if g == 0 {
			continue
		}
		sc := scales[i]
		parts = append(parts, tripleInWords(g, sc.feminine))
		if sc.one != "" {
			parts = append(parts, pluralForm(g, sc.one, sc.few, sc.many))
		}
	}

	return strings.Join(parts, " ")
}

// tripleInWords spells out 1..999.
func tripleInWords(n int64, feminine bool) string {
	units := unitsMasc
	if feminine {
		units = unitsFem
	}

	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, hundreds[h])
	}
	rem := n % 100
	switch {
	case rem >= 10 && rem <= 19:
		parts = append(parts, teens[rem-10])
	default:
		if t := rem / 10; t > 0 {
			parts = append(parts, tens[t])
		}
		if u := rem % 10; u > 0 {
			parts = append(parts, units[u])
		}
	}
	return strings.Join(parts, " ")
}

// pluralForm picks the declined noun for a count: 1 рубль, 2 рубля,
// 5 рублей, with the 11-14 exception.
func pluralForm(n int64, one, few, many string) string {
	n = n % 100
	if n >= 11 && n <= 14 {
		return many
	}
	switch n % 10 {
	case 1:
		return one
	case 2, 3, 4:
		return few
	default:
		return many
	}
}

// RublesInWords renders a whole-ruble salary as the capitalized phrase used
// in contracts: RublesInWords(120000) = "Сто двадцать тысяч рублей 00 копеек".
// The kopeck part is fixed at zero because salaries are entered in whole
// rubles.
func RublesInWords(amount int64) string {
	words := InWords(amount) + " " + pluralForm(amount, "рубль", "рубля", "рублей") + " 00 копеек"
	return strings.ToUpper(words[:lenFirstRune(words)]) + words[lenFirstRune(words):]
}

// GroupDigits formats an integer with space-separated thousands groups:
// GroupDigits(120000) = "120 000".
func GroupDigits(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(c)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func lenFirstRune(s string) int {
	for i := range s {
		if i > 0 {
			return i
		}
	}
	return len(s)
}
