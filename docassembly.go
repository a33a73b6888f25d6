// Package docassembly provides a fluent API for generating HR document
// packets: employment contracts, hiring orders, and job descriptions
// rendered from DOCX templates for a roster of employees.
//
// Basic usage:
//
//	result, err := docassembly.New(cfg).
//	    WithRoster("data/employees.xlsx").
//	    Generate(ctx)
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	result, err := docassembly.New(cfg).
//	    WithRoster("data/employees.csv").
//	    WithResponsible("data/responsible.csv", "Петрова Анна Сергеевна — Бухгалтер").
//	    Select("Иванов Иван Иванович — Инженер").
//	    WithDuties(duties).
//	    Generate(ctx)
//
// For lower-level control, the roster, assembly, and pipeline packages are
// also available.
package docassembly

import (
	"archive/zip"
	"context"
	"fmt"
	"io"

	"github.com/tsawler/docassembly/assembly"
	"github.com/tsawler/docassembly/config"
	"github.com/tsawler/docassembly/docxtpl"
	"github.com/tsawler/docassembly/imaging"
	"github.com/tsawler/docassembly/pipeline"
	"github.com/tsawler/docassembly/roster"
)

// New creates a Generator for one batch configuration. Configuration
// methods return new instances, so a Generator can be shared and branched
// safely.
func New(cfg *config.Run) *Generator {
	return &Generator{
		cfg:     cfg,
		options: defaultOptions(),
	}
}

// Generate runs the batch: it resolves the selected roster rows and the
// responsible person, then renders the packet in fixed order.
func (g *Generator) Generate(ctx context.Context) (*pipeline.Result, error) {
	if g.err != nil {
		return nil, g.err
	}
	if g.employees == nil {
		return nil, fmt.Errorf("no employee roster loaded")
	}

	people, err := g.selectPeople()
	if err != nil {
		return nil, err
	}

	resp := assembly.Responsible{}
	if g.responsible != nil {
		key := g.options.responsibleKey
		if key == "" {
			key = g.cfg.Responsible
		}
		if key != "" {
			row, ok := g.responsible.FindRow(key)
			if !ok {
				return nil, fmt.Errorf("responsible person %q not in roster", key)
			}
			resp = assembly.ResponsibleFromRow(row)
		}
	}

	deps := pipeline.Deps{
		Builder: &assembly.Builder{
			Analyzer: g.analyzer(),
			Resolver: &imaging.Resolver{Dir: g.cfg.SignatureDir},
		},
		Store:  &docxtpl.Store{Dir: g.cfg.TemplateDir},
		Duties: g.options.duties,
		Log:    g.options.log,
	}
	return pipeline.Run(ctx, g.cfg, people, resp, deps)
}

// selectPeople maps the selection keys to roster rows. An empty selection
// takes the whole roster.
func (g *Generator) selectPeople() ([]pipeline.Person, error) {
	if len(g.options.selection) == 0 {
		people := make([]pipeline.Person, 0, len(g.employees.Rows))
		for _, row := range g.employees.Rows {
			people = append(people, pipeline.Person{Row: row, Role: pipeline.RoleEmployee})
		}
		return people, nil
	}

	people := make([]pipeline.Person, 0, len(g.options.selection))
	for _, key := range g.options.selection {
		row, ok := g.employees.FindRow(key)
		if !ok {
			return nil, fmt.Errorf("employee %q not in roster", key)
		}
		people = append(people, pipeline.Person{Row: row, Role: pipeline.RoleEmployee})
	}
	return people, nil
}

// WriteArchive packages a batch result as a zip archive: the manifest
// first, then every rendered document in batch order.
func WriteArchive(w io.Writer, res *pipeline.Result) error {
	zw := zip.NewWriter(w)

	mf, err := zw.Create("00_INFO.txt")
	if err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	if _, err := mf.Write([]byte(res.Manifest())); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	for _, doc := range res.Documents {
		f, err := zw.Create(doc.Name)
		if err != nil {
			return fmt.Errorf("writing %s: %w", doc.Name, err)
		}
		if _, err := f.Write(doc.Data); err != nil {
			return fmt.Errorf("writing %s: %w", doc.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	tbl := docassembly.Must(roster.Load("employees.csv"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// LoadRoster reads an employee or responsible-person table from a CSV,
// XLSX, or HTML export. It is a convenience re-export for callers that
// only import the root package.
func LoadRoster(filename string) (*roster.Table, error) {
	return roster.Load(filename)
}
