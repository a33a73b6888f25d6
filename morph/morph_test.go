package morph

import (
	"strings"
	"testing"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Иванов Иван Иванович", "Иванов И.И."},
		{"Петрова Анна Сергеевна", "Петрова А.С."},
		{"ИВАНОВ ИВАН ИВАНОВИЧ", "Иванов И.И."},
		{"Иванов Иван", "Иванов Иван"},
		{"Иванов", "Иванов"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Initials(tt.in); got != tt.want {
			t.Errorf("Initials(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenderedWord(t *testing.T) {
	a := Ruleset()
	tests := []struct {
		name string
		want string
	}{
		{"Иванова Мария Петровна", "принята"},
		{"Петров Иван Сергеевич", "принят"},
		{"Кузнецова Дарья Ильинична", "принята"},
		{"Саввишна Анна Саввишна", "принята"},
		// No patronymic: first-name fallback.
		{"Иванова Мария", "принята"},
		{"Петров Иван", "принят"},
		{"Смирнов Никита", "принят"}, // masculine vowel-name exception
		// Inconclusive: masculine default.
		{"Иванов", "принят"},
		{"", "принят"},
	}

	for _, tt := range tests {
		if got := GenderedWord(a, tt.name, "принят", "принята"); got != tt.want {
			t.Errorf("GenderedWord(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInflectFullNames(t *testing.T) {
	a := Ruleset()
	tests := []struct {
		in   string
		c    Case
		want string
	}{
		{"Иванов Иван Иванович", Genitive, "Иванова Ивана Ивановича"},
		{"Иванов Иван Иванович", Dative, "Иванову Ивану Ивановичу"},
		{"Иванов Иван Иванович", Accusative, "Иванова Ивана Ивановича"},
		{"Иванова Мария Петровна", Genitive, "Ивановой Марии Петровны"},
		{"Иванова Мария Петровна", Accusative, "Иванову Марию Петровну"},
		{"Иванова Мария Петровна", Dative, "Ивановой Марии Петровне"},
	}

	for _, tt := range tests {
		if got := Inflect(a, tt.in, tt.c); got != tt.want {
			t.Errorf("Inflect(%q, %v) = %q, want %q", tt.in, tt.c, got, tt.want)
		}
	}
}

func TestInflectPositions(t *testing.T) {
	a := Ruleset()
	tests := []struct {
		in   string
		c    Case
		want string
	}{
		{"инженер", Genitive, "Инженера"},
		{"Генеральный директор", Genitive, "Генерального директора"},
		{"Генеральный директор", Dative, "Генеральному директору"},
		{"старший бухгалтер", Genitive, "Старшего бухгалтера"},
		{"ведущий специалист", Accusative, "Ведущего специалиста"},
	}

	for _, tt := range tests {
		if got := Inflect(a, tt.in, tt.c); got != tt.want {
			t.Errorf("Inflect(%q, %v) = %q, want %q", tt.in, tt.c, got, tt.want)
		}
	}
}

func TestInflectWholeResultCapitalized(t *testing.T) {
	a := Ruleset()
	got := Inflect(a, "менеджер по продажам", Genitive)
	if !startsUpper(got) {
		t.Errorf("Inflect() = %q, want leading capital", got)
	}
}

func TestInflectUnknownTokenPassesThrough(t *testing.T) {
	a := Ruleset()
	// Latin tokens are outside the analyzer's tables and must survive.
	got := Inflect(a, "HR Иванов", Genitive)
	if !strings.Contains(got, "HR") {
		t.Errorf("Inflect() = %q, want unknown token kept verbatim", got)
	}
}

func TestInflectEmptyInput(t *testing.T) {
	if got := Inflect(Ruleset(), "", Genitive); got != "" {
		t.Errorf("Inflect(\"\") = %q, want \"\"", got)
	}
	if got := Inflect(nil, "текст", Genitive); got != "текст" {
		t.Errorf("Inflect(nil analyzer) = %q, want passthrough", got)
	}
}

func TestRulesetInflect(t *testing.T) {
	a := Ruleset()
	tests := []struct {
		word string
		c    Case
		want string
	}{
		{"иванов", Genitive, "иванова"},
		{"иванова", Genitive, "ивановой"},
		{"иван", Dative, "ивану"},
		{"мария", Genitive, "марии"},
		{"ольга", Genitive, "ольги"},
		{"алексей", Genitive, "алексея"},
		{"дмитрий", Genitive, "дмитрия"},
		{"игорь", Dative, "игорю"},
		{"петровна", Genitive, "петровны"},
		{"петренко", Genitive, "петренко"}, // indeclinable
		{"директор", Instrumental, "директором"},
		{"директор", Prepositional, "директоре"},
	}

	for _, tt := range tests {
		got, ok := a.Inflect(tt.word, tt.c)
		if !ok {
			t.Errorf("Inflect(%q, %v) not handled", tt.word, tt.c)
			continue
		}
		if got != tt.want {
			t.Errorf("Inflect(%q, %v) = %q, want %q", tt.word, tt.c, got, tt.want)
		}
	}
}

func TestRulesetNominativeUnchanged(t *testing.T) {
	got, ok := Ruleset().Inflect("Иванов", Nominative)
	if !ok || got != "Иванов" {
		t.Errorf("Inflect(nominative) = %q,%v want unchanged", got, ok)
	}
}

func TestCaseString(t *testing.T) {
	tests := []struct {
		c    Case
		want string
	}{
		{Nominative, "nomn"},
		{Genitive, "gent"},
		{Dative, "datv"},
		{Accusative, "accs"},
		{Instrumental, "ablt"},
		{Prepositional, "loct"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Case(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}
