package config

import "testing"

func TestCleanCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ГОРОД МОСКВА УЛИЦА ЛЕНИНА ДОМ 1", "Город москва улица ленина дом 1"},
		{`ООО "Ромашка"`, `ООО "Ромашка"`},
		{"Иванов Иван Иванович", "Иванов Иван Иванович"},
		{"ООО", "ООО"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanCase(tt.in); got != tt.want {
			t.Errorf("CleanCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompanyFromFields(t *testing.T) {
	c := CompanyFromFields(map[string]string{
		"opf":        "ОБЩЕСТВО С ОГРАНИЧЕННОЙ ОТВЕТСТВЕННОСТЬЮ",
		"name":       "АЛЬЯНС",
		"short_name": `ООО "Альянс"`,
		"inn":        "7701234567",
		"kpp":        "770101001",
		"ogrn":       "1027700000000",
		"address":    "ГОРОД МОСКВА, УЛИЦА ЛЕНИНА, ДОМ 1",
		"boss_name":  "ИВАНОВ ИВАН ИВАНОВИЧ",
		"boss_pos":   "ГЕНЕРАЛЬНЫЙ ДИРЕКТОР",
	})

	if c.LegalForm != "Общество с ограниченной ответственностью" {
		t.Errorf("LegalForm = %q", c.LegalForm)
	}
	if c.Name != "Альянс" {
		t.Errorf("Name = %q", c.Name)
	}
	if c.ShortName != `ООО "Альянс"` {
		t.Errorf("ShortName = %q", c.ShortName)
	}
	if c.INN != "7701234567" || c.KPP != "770101001" {
		t.Errorf("codes not carried over: %+v", c)
	}
	if c.HeadName != "Иванов иван иванович" {
		t.Errorf("HeadName = %q", c.HeadName)
	}
}

func TestCompanyFromFieldsMixedCaseName(t *testing.T) {
	c := CompanyFromFields(map[string]string{"name": "Ромашка Плюс"})
	if c.Name != "Ромашка Плюс" {
		t.Errorf("mixed-case name should pass through, got %q", c.Name)
	}
}

func TestCompanyMerge(t *testing.T) {
	own := Company{Name: "Альянс", INN: "7701234567"}
	extracted := Company{Name: "Другое", KPP: "770101001", Address: "Москва"}

	merged := own.Merge(extracted)
	if merged.Name != "Альянс" {
		t.Errorf("configured name should win, got %q", merged.Name)
	}
	if merged.KPP != "770101001" || merged.Address != "Москва" {
		t.Errorf("extracted fields should fill gaps: %+v", merged)
	}
}
