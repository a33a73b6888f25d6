package config

import (
	"strings"
	"unicode"
)

// CleanCase normalizes registry text that arrives in all caps (as ЕГРЮЛ
// exports usually do) to sentence case. Mixed-case text is left alone so
// hand-entered names keep their styling.
func CleanCase(s string) string {
	runes := []rune(s)
	if len(runes) <= 4 {
		return s
	}
	var upper int
	for _, r := range runes {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if float64(upper)/float64(len(runes)) <= 0.8 {
		return s
	}

	lower := []rune(strings.ToLower(s))
	lower[0] = unicode.ToUpper(lower[0])
	return string(lower)
}

// CompanyFromFields builds a Company profile from extractor output. Keys
// follow the extraction contract: opf, name, short_name, inn, kpp, ogrn,
// address, boss_name, boss_pos. Missing keys leave fields empty.
func CompanyFromFields(fields map[string]string) Company {
	name := fields["name"]
	if name == strings.ToUpper(name) {
		name = CleanCase(name)
	}
	return Company{
		LegalForm: CleanCase(fields["opf"]),
		Name:      name,
		ShortName: fields["short_name"],
		INN:       fields["inn"],
		KPP:       fields["kpp"],
		OGRN:      fields["ogrn"],
		Address:   CleanCase(fields["address"]),
		HeadName:  CleanCase(fields["boss_name"]),
		HeadPos:   CleanCase(fields["boss_pos"]),
	}
}

// Merge fills the receiver's empty fields from another profile. Configured
// values always win over extracted ones.
func (c Company) Merge(extracted Company) Company {
	pick := func(own, ext string) string {
		if own != "" {
			return own
		}
		return ext
	}
	return Company{
		LegalForm: pick(c.LegalForm, extracted.LegalForm),
		Name:      pick(c.Name, extracted.Name),
		ShortName: pick(c.ShortName, extracted.ShortName),
		INN:       pick(c.INN, extracted.INN),
		KPP:       pick(c.KPP, extracted.KPP),
		OGRN:      pick(c.OGRN, extracted.OGRN),
		Address:   pick(c.Address, extracted.Address),
		HeadName:  pick(c.HeadName, extracted.HeadName),
		HeadPos:   pick(c.HeadPos, extracted.HeadPos),
	}
}
