package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleConfig = `
company:
  legal_form: Общество с ограниченной ответственностью
  name: '"Альянс"'
  short_name: ООО "Альянс"
  inn: "7701234567"
  kpp: "770101001"
  ogrn: "1027700000000"
  address: г. Москва, ул. Ленина, д. 1
  head_name: Иванов Иван Иванович
  head_pos: Генеральный директор
city: Казань
date: 15.01.2026
doc_number: 7-К
salary: 95000
style: style3
responsible: Петрова Анна Сергеевна — Бухгалтер
generate_duties: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	r, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := r.Company.FullName(); got != `Общество с ограниченной ответственностью "Альянс"` {
		t.Errorf("FullName = %q", got)
	}
	if got := r.Company.Short(); got != `ООО "Альянс"` {
		t.Errorf("Short = %q", got)
	}
	if r.City != "Казань" || r.DocNumber != "7-К" || r.Salary != 95000 || r.Style != "style3" {
		t.Errorf("batch parameters not loaded: %+v", r)
	}
	if !r.GenerateDuties {
		t.Error("generate_duties not loaded")
	}

	d, err := r.ParsedDate()
	if err != nil {
		t.Fatalf("ParsedDate: %v", err)
	}
	if d.Day() != 15 || d.Month() != time.January || d.Year() != 2026 {
		t.Errorf("ParsedDate = %v", d)
	}
}

func TestLoadDefaults(t *testing.T) {
	r, err := Load(writeConfig(t, "company:\n  name: Тест\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.City != "Москва" || r.DocNumber != "12-К" || r.Salary != 120000 || r.Style != "style1" {
		t.Errorf("defaults not applied: %+v", r)
	}
	if r.TemplateDir != "templates" || r.SignatureDir != "data/signatures" {
		t.Errorf("directory defaults not applied: %+v", r)
	}
}

func TestLoadRejectsEmptyCompany(t *testing.T) {
	if _, err := Load(writeConfig(t, "city: Москва\n")); err == nil {
		t.Error("expected error for missing company name")
	}
}

func TestLoadRejectsBadDate(t *testing.T) {
	if _, err := Load(writeConfig(t, "company:\n  name: Тест\ndate: 2026/01/15\n")); err == nil {
		t.Error("expected error for unsupported date format")
	}
}

func TestParsedDateISO(t *testing.T) {
	r := &Run{Date: "2026-03-07"}
	d, err := r.ParsedDate()
	if err != nil {
		t.Fatalf("ParsedDate: %v", err)
	}
	if d.Day() != 7 || d.Month() != time.March || d.Year() != 2026 {
		t.Errorf("ParsedDate = %v", d)
	}
}
