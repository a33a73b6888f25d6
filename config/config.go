// Package config loads and validates the run configuration for a document
// generation batch: the employer profile, the batch parameters, and the
// directory layout for templates and signature assets.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Company is the employer profile that fills the shared part of every
// document context. LegalForm and Name are concatenated verbatim into the
// full company name; no quoting is added.
type Company struct {
	LegalForm string `yaml:"legal_form"`
	Name      string `yaml:"name"`
	ShortName string `yaml:"short_name"`
	INN       string `yaml:"inn"`
	KPP       string `yaml:"kpp"`
	OGRN      string `yaml:"ogrn"`
	Address   string `yaml:"address"`
	HeadName  string `yaml:"head_name"`
	HeadPos   string `yaml:"head_pos"`
}

// FullName joins the legal form and the name exactly as entered.
func (c Company) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.LegalForm) + " " + strings.TrimSpace(c.Name))
}

// Short returns the short company name, falling back to the full name when
// none is configured.
func (c Company) Short() string {
	if c.ShortName != "" {
		return c.ShortName
	}
	return c.FullName()
}

// Run is the configuration of one generation batch.
type Run struct {
	Company Company `yaml:"company"`

	City      string `yaml:"city"`
	Date      string `yaml:"date"`
	DocNumber string `yaml:"doc_number"`
	Salary    int    `yaml:"salary"`
	Style     string `yaml:"style"`

	TemplateDir  string `yaml:"template_dir"`
	SignatureDir string `yaml:"signature_dir"`

	// DirectorSign and Stamp are signature asset names or paths. Stamp is
	// only used when DirectorSign is set.
	DirectorSign string `yaml:"director_sign"`
	Stamp        string `yaml:"stamp"`

	// Responsible selects a row from the responsible-persons table by its
	// search key. Empty means the director acts as the responsible party.
	Responsible string `yaml:"responsible"`

	GenerateDuties bool `yaml:"generate_duties"`
}

// dateLayouts accepted for Run.Date.
var dateLayouts = []string{"02.01.2006", "2006-01-02"}

// Load reads a Run configuration from a YAML file and validates it.
func Load(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var r Run
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	r.applyDefaults()
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &r, nil
}

func (r *Run) applyDefaults() {
	if r.City == "" {
		r.City = "Москва"
	}
	if r.DocNumber == "" {
		r.DocNumber = "12-К"
	}
	if r.Salary == 0 {
		r.Salary = 120000
	}
	if r.Style == "" {
		r.Style = "style1"
	}
	if r.TemplateDir == "" {
		r.TemplateDir = "templates"
	}
	if r.SignatureDir == "" {
		r.SignatureDir = "data/signatures"
	}
}

// Validate checks the fields a batch cannot run without.
func (r *Run) Validate() error {
	if r.Company.FullName() == "" {
		return fmt.Errorf("company name is required")
	}
	if r.Date != "" {
		if _, err := r.ParsedDate(); err != nil {
			return err
		}
	}
	if !strings.HasPrefix(r.Style, "style") {
		return fmt.Errorf("style must look like style1..style6, got %q", r.Style)
	}
	return nil
}

// ParsedDate returns the batch date, defaulting to today when unset.
func (r *Run) ParsedDate() (time.Time, error) {
	if r.Date == "" {
		return time.Now(), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, r.Date); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q: expected DD.MM.YYYY or YYYY-MM-DD", r.Date)
}
