// Package assembly builds template rendering contexts from the run
// configuration and roster rows: the shared employer context, the per-person
// context, and the employee collection entries for consolidated orders.
//
// Every builder call returns a fresh context map. Per-person data never
// leaks between documents through shared state.
package assembly

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tsawler/docassembly/config"
	"github.com/tsawler/docassembly/docxtpl"
	"github.com/tsawler/docassembly/fields"
	"github.com/tsawler/docassembly/imaging"
	"github.com/tsawler/docassembly/morph"
	"github.com/tsawler/docassembly/numerals"
	"github.com/tsawler/docassembly/roster"
)

// Rendered signature widths in millimetres. The combined director
// signature-and-stamp image is pre-composited and must not be re-trimmed.
const (
	ComboWidthMM        = 45
	DirectorSignWidthMM = 30
	PersonSignWidthMM   = 20
)

var monthsRU = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// Builder assembles contexts using a morphology analyzer for name and
// position inflection and an image resolver for signature lookup.
type Builder struct {
	Analyzer morph.Analyzer
	Resolver *imaging.Resolver
}

// Responsible identifies the person named in documents as responsible for
// personnel records. IsDirector marks the fallback when no responsible
// person was selected.
type Responsible struct {
	Name       string
	Pos        string
	Basis      string
	IsDirector bool
}

// ResponsibleFromRow builds a Responsible from a roster row, picking the
// authority-basis value from the first column whose label mentions a
// grounding document.
func ResponsibleFromRow(row roster.Row) Responsible {
	r := Responsible{
		Name: row.Get(roster.ColFullName),
		Pos:  row.Get(roster.ColPosition),
	}
	for _, col := range row.Columns() {
		label := strings.ToLower(col)
		if strings.Contains(label, "основание") ||
			strings.Contains(label, "документ") ||
			strings.Contains(label, "доверенность") {
			r.Basis = row.Get(col)
			break
		}
	}
	return r
}

// ShortDate renders a date as "02.01.2006 г.".
func ShortDate(t time.Time) string {
	return t.Format("02.01.2006") + " г."
}

// FullDate renders a date as «02» января 2006 г.
func FullDate(t time.Time) string {
	return fmt.Sprintf("«%02d» %s %d г.", t.Day(), monthsRU[t.Month()-1], t.Year())
}

var digitsRe = regexp.MustCompile(`\d+`)

// IncrementDocNumber derives the document number for position step in the
// batch. The first numeric substring of base is advanced by step; a base
// with no digits gets a numeric suffix instead.
func IncrementDocNumber(base string, step int) string {
	if step == 0 {
		return base
	}
	if loc := digitsRe.FindStringIndex(base); loc != nil {
		n, err := strconv.Atoi(base[loc[0]:loc[1]])
		if err == nil {
			return base[:loc[0]] + strconv.Itoa(n+step) + base[loc[1]:]
		}
	}
	return fmt.Sprintf("%s-%d", base, step+1)
}

// Requisites formats the employer requisites block placed into contracts.
func Requisites(c config.Company) string {
	return fmt.Sprintf("%s\nЮр. адрес: %s\nИНН %s, КПП %s, ОГРН %s",
		c.FullName(), c.Address, c.INN, c.KPP, c.OGRN)
}

// ImageValue resolves a signature asset to an embeddable template value.
// Resolution failures come back as the diagnostic string, which the
// renderer places in the document instead of an image.
func (b *Builder) ImageValue(nameOrPath string, widthMM int, trim bool) any {
	path, diag := b.Resolver.Embeddable(nameOrPath, trim)
	if diag != "" {
		return diag
	}
	return docxtpl.InlineImage{Path: path, WidthMM: widthMM}
}

// Company builds the shared employer context present in every document of
// the batch. comboPath is the pre-composited signature-and-stamp image;
// empty means the director assets were not provided.
func (b *Builder) Company(cfg *config.Run, date time.Time, comboPath string) docxtpl.Context {
	c := cfg.Company
	ctx := docxtpl.Context{
		"city":            cfg.City,
		"contract_date":   ShortDate(date),
		"date_ru":         FullDate(date),
		"company_name":    c.FullName(),
		"company_short":   c.Short(),
		"company_address": c.Address,
		"company_inn":     c.INN,
		"company_kpp":     c.KPP,
		"company_ogrn":    c.OGRN,
		"head_name":       c.HeadName,
		"head_pos":        c.HeadPos,
		"head_short":      morph.Initials(c.HeadName),
		"head_name_gen":   morph.Inflect(b.Analyzer, c.HeadName, morph.Genitive),
		"head_pos_gen":    morph.Inflect(b.Analyzer, c.HeadPos, morph.Genitive),
		"head_name_accs":  morph.Inflect(b.Analyzer, c.HeadName, morph.Accusative),
		"head_pos_accs":   morph.Inflect(b.Analyzer, c.HeadPos, morph.Accusative),
		"head_pos_datv":   morph.Inflect(b.Analyzer, c.HeadPos, morph.Dative),
		"employer_reqs":   docxtpl.NewRichText(Requisites(c)),
		"director_combo":  "",
	}
	if comboPath != "" {
		ctx["director_combo"] = b.ImageValue(comboPath, ComboWidthMM, false)
	}
	return ctx
}

// CollectionEntry builds one item of the col_employees repeating block for
// consolidated orders.
func (b *Builder) CollectionEntry(name, pos string) docxtpl.Context {
	return docxtpl.Context{
		"name":      name,
		"short":     morph.Initials(name),
		"pos":       pos,
		"name_gen":  morph.Inflect(b.Analyzer, name, morph.Genitive),
		"pos_gen":   morph.Inflect(b.Analyzer, pos, morph.Genitive),
		"name_accs": morph.Inflect(b.Analyzer, name, morph.Accusative),
		"pos_accs":  morph.Inflect(b.Analyzer, pos, morph.Accusative),
		"accepted":  morph.GenderedWord(b.Analyzer, name, "принят", "принята"),
		"appointed": morph.GenderedWord(b.Analyzer, name, "назначен", "назначена"),
		"sign":      b.ImageValue(name, PersonSignWidthMM, true),
	}
}

// Person extends the shared company context with everything specific to one
// employee's documents. duties is pre-generated AI text; empty renders the
// placeholder blank.
func (b *Builder) Person(company docxtpl.Context, row roster.Row, docNumber string, salary int64, resp Responsible, duties string) docxtpl.Context {
	name := row.Get(roster.ColFullName)
	pos := row.Get(roster.ColPosition)
	passport := fields.ExtractPassport(row)

	ctx := company.Clone()
	ctx["doc_number"] = docNumber
	ctx["resp_name"] = resp.Name
	ctx["resp_pos"] = resp.Pos
	ctx["resp_doc"] = resp.Basis
	ctx["resp_short"] = morph.Initials(resp.Name)
	ctx["employee_name"] = name
	ctx["employee_short"] = morph.Initials(name)
	ctx["employee_pos"] = pos
	ctx["employee_pos_gen"] = morph.Inflect(b.Analyzer, pos, morph.Genitive)
	ctx["employee_pos_dat"] = morph.Inflect(b.Analyzer, pos, morph.Dative)
	ctx["employee_pos_accs"] = morph.Inflect(b.Analyzer, pos, morph.Accusative)
	ctx["salary_digits"] = numerals.GroupDigits(salary)
	ctx["salary_words"] = numerals.RublesInWords(salary)
	ctx["employee_reqs"] = docxtpl.NewRichText(passport)
	ctx["employee_passport"] = passport
	if duties != "" {
		ctx["ai_duties"] = docxtpl.NewRichText(duties)
	} else {
		ctx["ai_duties"] = ""
	}
	ctx["employee_sign"] = b.ImageValue(name, PersonSignWidthMM, true)
	if resp.Name != "" && !resp.IsDirector {
		ctx["resp_sign"] = b.ImageValue(resp.Name, PersonSignWidthMM, true)
	}
	return ctx
}
