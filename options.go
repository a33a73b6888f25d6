package docassembly

import (
	"go.uber.org/zap"

	"github.com/tsawler/docassembly/ai"
	"github.com/tsawler/docassembly/config"
	"github.com/tsawler/docassembly/morph"
	"github.com/tsawler/docassembly/roster"
)

// Generator assembles document packets for a batch configuration. Each
// configuration method returns a new Generator instance, making it safe
// for concurrent use and allowing method chaining.
type Generator struct {
	cfg *config.Run

	employees   *roster.Table
	responsible *roster.Table

	options generateOptions

	// Accumulated error (fail-fast)
	err error
}

// generateOptions holds the per-chain configuration.
type generateOptions struct {
	log            *zap.Logger
	analyzer       morph.Analyzer
	duties         ai.DutyGenerator
	selection      []string
	responsibleKey string
}

func defaultOptions() generateOptions {
	return generateOptions{}
}

// clone creates a deep copy of generateOptions.
func (o generateOptions) clone() generateOptions {
	newOpts := o
	if o.selection != nil {
		newOpts.selection = make([]string, len(o.selection))
		copy(newOpts.selection, o.selection)
	}
	return newOpts
}

// clone creates a shallow copy of the Generator with a deep copy of
// options. This ensures immutability; each chain method returns a new
// instance.
func (g *Generator) clone() *Generator {
	return &Generator{
		cfg:         g.cfg,
		employees:   g.employees,
		responsible: g.responsible,
		options:     g.options.clone(),
		err:         g.err,
	}
}

// WithLogger sets the logger used during generation. Without one, the
// batch runs silently.
func (g *Generator) WithLogger(log *zap.Logger) *Generator {
	ng := g.clone()
	ng.options.log = log
	return ng
}

// WithAnalyzer overrides the morphology analyzer used for name and
// position inflection. The built-in rule set is used otherwise.
func (g *Generator) WithAnalyzer(a morph.Analyzer) *Generator {
	ng := g.clone()
	ng.options.analyzer = a
	return ng
}

// WithDuties sets the duty-text generator for job descriptions. Without
// one, the duty placeholder renders blank.
func (g *Generator) WithDuties(d ai.DutyGenerator) *Generator {
	ng := g.clone()
	ng.options.duties = d
	return ng
}

// WithRoster loads the employee roster from a CSV, XLSX, or HTML file.
// Load failures surface from Generate.
func (g *Generator) WithRoster(filename string) *Generator {
	ng := g.clone()
	if ng.err != nil {
		return ng
	}
	tbl, err := roster.Load(filename)
	if err != nil {
		ng.err = err
		return ng
	}
	ng.employees = tbl
	return ng
}

// WithRosterTable uses an already-loaded employee table.
func (g *Generator) WithRosterTable(tbl *roster.Table) *Generator {
	ng := g.clone()
	ng.employees = tbl
	return ng
}

// WithResponsible loads the responsible-persons table and selects one row
// by its search key. An empty key falls back to the configured one; with
// no key at all the director acts as the responsible party.
func (g *Generator) WithResponsible(filename, key string) *Generator {
	ng := g.clone()
	if ng.err != nil {
		return ng
	}
	tbl, err := roster.Load(filename)
	if err != nil {
		ng.err = err
		return ng
	}
	ng.responsible = tbl
	ng.options.responsibleKey = key
	return ng
}

// WithResponsibleTable uses an already-loaded responsible-persons table.
func (g *Generator) WithResponsibleTable(tbl *roster.Table, key string) *Generator {
	ng := g.clone()
	ng.responsible = tbl
	ng.options.responsibleKey = key
	return ng
}

// Select restricts the batch to the named roster search keys, in the given
// order. Without a selection the whole roster is processed.
func (g *Generator) Select(keys ...string) *Generator {
	ng := g.clone()
	ng.options.selection = append([]string(nil), keys...)
	return ng
}

// analyzer returns the configured morphology analyzer or the built-in
// rule set.
func (g *Generator) analyzer() morph.Analyzer {
	if g.options.analyzer != nil {
		return g.options.analyzer
	}
	return morph.Ruleset()
}
