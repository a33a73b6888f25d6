// Command docassembly generates an HR document packet from a run
// configuration and an employee roster, writing the result as a zip
// archive.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/docassembly"
	"github.com/tsawler/docassembly/ai"
	"github.com/tsawler/docassembly/config"
	"github.com/tsawler/docassembly/ocr"
)

var (
	configPath      string
	employeesPath   string
	responsiblePath string
	registryPath    string
	selection       []string
	outPath         string
	verbose         bool
)

var rootCmd = &cobra.Command{
	Use:   "docassembly",
	Short: "Generate an HR document packet from DOCX templates",
	Long: `Generates employment contracts, hiring orders, and job descriptions
for a roster of employees, using the template styles and employer profile
from the run configuration. The packet is written as a zip archive.`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "run.yaml", "run configuration file")
	rootCmd.Flags().StringVarP(&employeesPath, "employees", "e", "", "employee roster (csv, xlsx, or html)")
	rootCmd.Flags().StringVarP(&responsiblePath, "responsible", "r", "", "responsible-persons roster")
	rootCmd.Flags().StringVar(&registryPath, "registry", "", "scanned registry statement to fill missing company fields (needs -tags ocr)")
	rootCmd.Flags().StringSliceVarP(&selection, "select", "s", nil, "roster search keys to process (default: all)")
	rootCmd.Flags().StringVarP(&outPath, "out", "o", "", "output archive path (default: Docs_<date>.zip)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log progress")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if employeesPath == "" {
		return fmt.Errorf("an employee roster is required (--employees)")
	}

	log := zap.NewNop()
	if verbose {
		log, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer log.Sync()
	}

	ctx := context.Background()
	if registryPath != "" {
		if err := fillCompanyFromRegistry(ctx, cfg, log); err != nil {
			log.Warn("registry extraction failed", zap.Error(err))
		}
	}

	gen := docassembly.New(cfg).
		WithLogger(log).
		WithRoster(employeesPath)

	if responsiblePath != "" {
		gen = gen.WithResponsible(responsiblePath, cfg.Responsible)
	}
	if len(selection) > 0 {
		gen = gen.Select(selection...)
	}
	if cfg.GenerateDuties {
		duties, err := ai.NewGemini(ctx, "", "")
		if err != nil {
			return err
		}
		gen = gen.WithDuties(duties)
	}

	res, err := gen.Generate(ctx)
	if err != nil {
		return err
	}
	if res.Produced() == 0 {
		return fmt.Errorf("шаблоны не найдены в %s", cfg.TemplateDir)
	}

	if outPath == "" {
		outPath = fmt.Sprintf("Docs_%s.zip", time.Now().Format("2006-01-02"))
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating archive %s: %w", outPath, err)
	}
	defer f.Close()
	if err := docassembly.WriteArchive(f, res); err != nil {
		return err
	}

	fmt.Printf("Файлов создано: %d\n", res.Produced())
	for _, s := range res.Skips {
		fmt.Printf("Пропущено: %s (%s)\n", s.Document, s.Reason)
	}
	fmt.Printf("Архив: %s\n", outPath)
	return nil
}

// fillCompanyFromRegistry recognizes a scanned registry statement and
// fills the company fields the configuration leaves empty. Configured
// values always win over extracted ones.
func fillCompanyFromRegistry(ctx context.Context, cfg *config.Run, log *zap.Logger) error {
	client, err := ocr.New()
	if err != nil {
		return err
	}
	defer client.Close()

	text, err := client.ExtractText(registryPath)
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("no text recognized in %s", registryPath)
	}

	extractor, err := ai.NewGemini(ctx, "", "")
	if err != nil {
		return err
	}
	fields := extractor.ExtractEntityFields(ctx, text)
	if fields == nil {
		return fmt.Errorf("no company fields extracted from %s", registryPath)
	}

	cfg.Company = cfg.Company.Merge(config.CompanyFromFields(fields))
	log.Info("company profile filled from registry scan", zap.String("scan", registryPath))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}
}
