package fields

import (
	"strings"
	"testing"

	"github.com/tsawler/docassembly/roster"
)

func makeRow(pairs ...string) roster.Row {
	columns := make([]string, 0, len(pairs)/2)
	values := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		columns = append(columns, pairs[i])
		values[pairs[i]] = pairs[i+1]
	}
	return roster.NewRow(columns, values)
}

func TestFormatPassportNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"4510123456", "4510 123456"},
		{"0000000000", "0000 000000"},
		{"451012345", "451012345"},    // 9 digits: unchanged
		{"45101234567", "45101234567"}, // 11 digits: unchanged
		{"4510 123456", "4510 123456"}, // already formatted
		{"AB10123456", "AB10123456"},   // non-digit
		{"", ""},
	}

	for _, tt := range tests {
		if got := FormatPassportNumber(tt.in); got != tt.want {
			t.Errorf("FormatPassportNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractPassportFull(t *testing.T) {
	row := makeRow(
		"ФИО", "Иванов Иван Иванович",
		"Серия и номер паспорта", "4510123456",
		"Кем выдан", "ОВД района Митино г. Москвы",
		"Дата выдачи", "2015-03-07",
	)

	got := ExtractPassport(row)
	want := "Паспорт: 4510 123456, выдан ОВД района Митино г. Москвы, дата выдачи 07.03.2015"
	if got != want {
		t.Errorf("ExtractPassport() = %q, want %q", got, want)
	}
}

func TestExtractPassportNoIDColumn(t *testing.T) {
	row := makeRow("ФИО", "Иванов Иван Иванович", "Оклад", "50000")

	got := ExtractPassport(row)
	if !strings.HasPrefix(got, "Паспорт: ______") {
		t.Errorf("ExtractPassport() = %q, want placeholder underscores", got)
	}
	if strings.Contains(got, "выдан") || strings.Contains(got, "дата выдачи") {
		t.Errorf("ExtractPassport() = %q, want issuer/date clauses omitted", got)
	}
}

func TestExtractPassportIssuerExcludesDateLabels(t *testing.T) {
	// "Когда выдан" matches the issued-by tokens but must be rejected by the
	// exclusion rule, so it lands in the date clause instead.
	row := makeRow(
		"Номер документа", "4510123456",
		"Когда выдан", "01.02.2010",
		"Кем выдан", "УФМС",
	)

	got := ExtractPassport(row)
	want := "Паспорт: 4510 123456, выдан УФМС, дата выдачи 01.02.2010"
	if got != want {
		t.Errorf("ExtractPassport() = %q, want %q", got, want)
	}
}

func TestExtractPassportDateParseFailureKeepsRaw(t *testing.T) {
	row := makeRow(
		"Паспорт", "4510123456",
		"Дата выдачи", "май 2015 года",
	)

	got := ExtractPassport(row)
	if !strings.HasSuffix(got, "дата выдачи май 2015 года") {
		t.Errorf("ExtractPassport() = %q, want raw date preserved", got)
	}
}

func TestExtractPassportFirstMatchingColumnWins(t *testing.T) {
	row := makeRow(
		"Номер пропуска", "77",
		"Паспорт", "4510123456",
	)

	got := ExtractPassport(row)
	if !strings.HasPrefix(got, "Паспорт: 77") {
		t.Errorf("ExtractPassport() = %q, want first matching column (label order) to win", got)
	}
}

func TestExtractPassportSkipsEmptyCells(t *testing.T) {
	row := makeRow(
		"Паспорт", "  ",
		"Номер документа", "4510123456",
	)

	got := ExtractPassport(row)
	if !strings.HasPrefix(got, "Паспорт: 4510 123456") {
		t.Errorf("ExtractPassport() = %q, want empty first cell skipped", got)
	}
}

func TestCleanValue(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"  значение  ", "значение", true},
		{"", "", false},
		{"   ", "", false},
		{"nan", "", false},
		{"NaN", "", false},
		{"0", "0", true},
	}

	for _, tt := range tests {
		got, ok := CleanValue(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("CleanValue(%q) = %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFormatIssueDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"07.03.2015", "07.03.2015"},
		{"7.3.2015", "07.03.2015"},
		{"2015-03-07", "07.03.2015"},
		{"07/03/2015", "07.03.2015"},
		{"2015-03-07 00:00:00", "07.03.2015"},
		{"не помню", "не помню"},
	}

	for _, tt := range tests {
		if got := formatIssueDate(tt.in); got != tt.want {
			t.Errorf("formatIssueDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
