// Package pipeline runs a generation batch: it renders the packet in a
// fixed document order and isolates every failure to the one document it
// affects.
//
// Order of output: packet inventory, consolidated order with the employee
// collection, the responsible-person order, then per person the employment
// contract, the hiring order, and the job description. A missing template
// or a render error produces a skip record; documents already collected are
// never affected by later failures.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/docassembly/ai"
	"github.com/tsawler/docassembly/assembly"
	"github.com/tsawler/docassembly/config"
	"github.com/tsawler/docassembly/docxtpl"
	"github.com/tsawler/docassembly/imaging"
	"github.com/tsawler/docassembly/morph"
	"github.com/tsawler/docassembly/roster"
)

// Role distinguishes regular hires from the responsible party inside the
// per-person loop. The responsible party gets no job description.
type Role int

const (
	RoleEmployee Role = iota
	RoleResponsible
)

// Person is one unit of the per-person document loop.
type Person struct {
	Row  roster.Row
	Role Role
}

// Deps are the collaborators a batch run needs.
type Deps struct {
	Builder *assembly.Builder
	Store   *docxtpl.Store
	Duties  ai.DutyGenerator
	Log     *zap.Logger
}

// Rendered is one finished document.
type Rendered struct {
	Name string
	Data []byte
}

// Skip records a document that could not be produced and why.
type Skip struct {
	Document string
	Reason   string
}

// Result collects the outcome of one batch run.
type Result struct {
	Documents []Rendered
	Skips     []Skip

	Company string
	Style   string
	People  int
	Date    time.Time
}

// Produced reports how many documents the run yielded. Zero with a
// non-empty roster means no templates were found at all.
func (r *Result) Produced() int {
	return len(r.Documents)
}

// Manifest renders the packet summary written alongside the documents.
func (r *Result) Manifest() string {
	return fmt.Sprintf("Дата генерации: %s\nКомпания: %s\nИспользован стиль: %s\nСотрудников обработано: %d\n",
		r.Date.Format("2006-01-02"), r.Company, r.Style, r.People)
}

// Run executes a generation batch over the selected people.
func Run(ctx context.Context, cfg *config.Run, people []Person, resp assembly.Responsible, deps Deps) (*Result, error) {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if len(people) == 0 {
		return nil, fmt.Errorf("no people selected")
	}

	date, err := cfg.ParsedDate()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Company: cfg.Company.FullName(),
		Style:   cfg.Style,
		People:  len(people),
		Date:    time.Now(),
	}

	directorSign, comboPath := directorAssets(cfg, deps)
	company := deps.Builder.Company(cfg, date, comboPath)
	suffix := "_" + cfg.Style

	// Packet inventory.
	res.render(deps, "00_Опись"+suffix+".docx", func() (string, bool) {
		return deps.Store.Inventory()
	}, company)

	// Consolidated order over all selected people.
	consolidated := company.Clone()
	var entries []docxtpl.Context
	for _, p := range people {
		entries = append(entries, deps.Builder.CollectionEntry(
			p.Row.Get(roster.ColFullName), p.Row.Get(roster.ColPosition)))
	}
	consolidated["col_employees"] = entries
	addDirectorSigns(consolidated, deps.Builder, directorSign, comboPath)
	res.render(deps, "00_Сводный_приказ_Ответственные"+suffix+".docx", func() (string, bool) {
		return deps.Store.Order(cfg.Style)
	}, consolidated)

	// Responsible-person order. Without a selected responsible person the
	// director fills the role.
	target := resp
	respLabel := "Директор"
	if target.Name == "" {
		target = assembly.Responsible{
			Name:       cfg.Company.HeadName,
			Pos:        cfg.Company.HeadPos,
			IsDirector: true,
		}
	} else {
		respLabel = morph.Initials(target.Name)
	}
	respOrder := company.Clone()
	entry := deps.Builder.CollectionEntry(target.Name, target.Pos)
	if target.IsDirector && directorSign != "" {
		entry["sign"] = deps.Builder.ImageValue(directorSign, assembly.DirectorSignWidthMM, true)
	}
	respOrder["col_employees"] = []docxtpl.Context{entry}
	addDirectorSigns(respOrder, deps.Builder, directorSign, comboPath)
	res.render(deps, "00_Приказ_Ответственный_"+respLabel+suffix+".docx", func() (string, bool) {
		return deps.Store.Order(cfg.Style)
	}, respOrder)

	// Per-person documents.
	for i, p := range people {
		docNumber := assembly.IncrementDocNumber(cfg.DocNumber, i)
		pos := p.Row.Get(roster.ColPosition)

		duties := ""
		if cfg.GenerateDuties && p.Role == RoleEmployee && deps.Duties != nil {
			duties = deps.Duties.GenerateDuties(ctx, pos)
		}

		personCtx := deps.Builder.Person(company, p.Row, docNumber, int64(cfg.Salary), resp, duties)
		addDirectorSigns(personCtx, deps.Builder, directorSign, comboPath)

		initials := strings.ReplaceAll(morph.Initials(p.Row.Get(roster.ColFullName)), ".", "")
		roleSuffix := ""
		if p.Role == RoleResponsible {
			roleSuffix = "_RESP"
		}
		prefix := fmt.Sprintf("%02d_%s%s_", i+1, initials, roleSuffix)

		res.render(deps, prefix+"Трудовой_договор"+suffix+".docx", func() (string, bool) {
			return deps.Store.Contract(cfg.Style)
		}, personCtx)
		res.render(deps, prefix+"Приказ"+suffix+".docx", func() (string, bool) {
			return deps.Store.IndividualOrder()
		}, personCtx)
		if p.Role != RoleResponsible {
			res.render(deps, prefix+"Должностная"+suffix+".docx", func() (string, bool) {
				return deps.Store.JobDescription(pos, cfg.Style)
			}, personCtx)
		}
	}

	deps.Log.Info("batch finished",
		zap.Int("documents", res.Produced()),
		zap.Int("skips", len(res.Skips)),
		zap.String("style", cfg.Style))
	return res, nil
}

// directorAssets resolves the director signature path and builds the
// combined signature-and-stamp overlay. Either may come back empty; the
// batch carries on without the images.
func directorAssets(cfg *config.Run, deps Deps) (signPath, comboPath string) {
	if cfg.DirectorSign == "" {
		return "", ""
	}
	resolver := deps.Builder.Resolver

	signPath, diag := resolver.Resolve(cfg.DirectorSign)
	if diag != "" {
		deps.Log.Warn("director signature not found", zap.String("asset", cfg.DirectorSign))
		return "", ""
	}

	stampPath := ""
	if cfg.Stamp != "" {
		if p, diag := resolver.Resolve(cfg.Stamp); diag == "" {
			stampPath = p
		} else {
			deps.Log.Warn("stamp not found", zap.String("asset", cfg.Stamp))
		}
	}

	combo, err := imaging.Overlay(resolver.Dir, signPath, stampPath)
	if err != nil {
		deps.Log.Warn("signature overlay failed", zap.Error(err))
		return signPath, signPath
	}
	return signPath, combo
}

// addDirectorSigns places the director image values into a context when
// the assets exist.
func addDirectorSigns(ctx docxtpl.Context, b *assembly.Builder, directorSign, comboPath string) {
	if comboPath != "" {
		ctx["director_combo"] = b.ImageValue(comboPath, assembly.ComboWidthMM, false)
	}
	if directorSign != "" {
		ctx["director_sign"] = b.ImageValue(directorSign, assembly.DirectorSignWidthMM, true)
	}
}

// render produces one document: locate the template, render it, collect
// the result. Failures become skip records.
func (r *Result) render(deps Deps, name string, locate func() (string, bool), ctx docxtpl.Context) {
	path, ok := locate()
	if !ok {
		r.Skips = append(r.Skips, Skip{Document: name, Reason: "template not found"})
		deps.Log.Debug("template missing", zap.String("document", name))
		return
	}

	tpl, err := docxtpl.Open(path)
	if err != nil {
		r.Skips = append(r.Skips, Skip{Document: name, Reason: err.Error()})
		deps.Log.Warn("template unreadable", zap.String("document", name), zap.Error(err))
		return
	}

	data, err := tpl.Render(ctx)
	if err != nil {
		r.Skips = append(r.Skips, Skip{Document: name, Reason: err.Error()})
		deps.Log.Warn("render failed", zap.String("document", name), zap.Error(err))
		return
	}

	r.Documents = append(r.Documents, Rendered{Name: name, Data: data})
	deps.Log.Debug("document rendered", zap.String("document", name), zap.Int("bytes", len(data)))
}
