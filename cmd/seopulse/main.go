// Package main provides the seopulse command: score crawl exports on SEO
// readiness and compare sites against a baseline.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/analyzer"
	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/compare"
	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/config"
	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/logger"
	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/models"
	"github.com/boopin/bulk-seo-competitor-seo-scores/internal/report"
	"github.com/boopin/bulk-seo-competitor-seo-scores/pkg/stamp"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	app := &cli.App{
		Name:    "seopulse",
		Usage:   "score crawl exports and compare sites on SEO readiness",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "score one or more crawl exports and write a report",
				ArgsUsage: " ",
				Flags:     pipelineFlags(),
				Action:    analyzeAction,
			},
			{
				Name:      "compare",
				Usage:     "rank two or more sites against a baseline",
				ArgsUsage: " ",
				Flags:     pipelineFlags(),
				Action:    compareAction,
			},
			{
				Name:      "verify",
				Usage:     "check a markdown report's integrity stamp",
				ArgsUsage: "<report.md>",
				Action:    verifyAction,
			},
			{
				Name:  "version",
				Usage: "print the tool version",
				Action: func(c *cli.Context) error {
					fmt.Printf("seopulse %s\n", version)

					return nil
				},
			},
			{
				Name:  "init-config",
				Usage: "write the default configuration to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Value:   "seopulse.yaml",
						Usage:   "where to write the config",
					},
				},
				Action: initConfigAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func pipelineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to a YAML configuration file",
		},
		&cli.StringSliceFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "crawl export to analyze; repeat once per site",
		},
		&cli.StringFlag{
			Name:    "baseline",
			Aliases: []string{"b"},
			Usage:   "label of the baseline site (default: the first dataset)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "report format: markdown, csv or json",
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "report file path (stdout when empty)",
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"w"},
			Usage:   "concurrent datasets and per-page scoring workers",
		},
		&cli.StringSliceFlag{
			Name:  "alias",
			Usage: "extra column alias as field=Header, e.g. url=Page Address",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error",
		},
	}
}

func analyzeAction(c *cli.Context) error {
	return runPipeline(c, false)
}

func compareAction(c *cli.Context) error {
	return runPipeline(c, true)
}

func runPipeline(c *cli.Context, needComparison bool) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level)

	aliases, err := parseAliases(c.StringSlice("alias"))
	if err != nil {
		return err
	}

	sources, err := resolveSources(c, cfg)
	if err != nil {
		return err
	}

	if needComparison && len(sources) < 2 {
		return errors.New("compare needs at least two datasets")
	}

	opts := []analyzer.Option{
		analyzer.WithLogger(log),
		analyzer.WithProgress(func(site string, stage analyzer.Stage) {
			log.Debug("pipeline stage", "site", site, "stage", string(stage))
		}),
	}

	if len(aliases) > 0 {
		opts = append(opts, analyzer.WithAliases(aliases))
	}

	if w := c.Int("workers"); w > 0 {
		opts = append(opts, analyzer.WithWorkers(w))
	}

	a, err := analyzer.New(cfg, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("🚀 starting analysis", "datasets", len(sources))

	sets, err := a.AnalyzeSources(ctx, sources)
	if err != nil {
		return err
	}

	var comparison *models.ComparisonResult

	if len(sets) > 1 {
		baseline := resolveBaseline(c, cfg, sets)

		comparison, err = compare.Compare(sets, baseline)
		if err != nil {
			return err
		}

		log.Info("✅ comparison ready", "baseline", baseline, "sites", len(sets))
	}

	format, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}

	rendered, err := report.Build("seopulse/"+version, sets, comparison).Render(format)
	if err != nil {
		return err
	}

	return writeReport(log, cfg.Report.Path, rendered)
}

func verifyAction(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New("verify needs exactly one report path")
	}

	path := c.Args().First()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}

	fmt.Printf("📂 Reading: %s (%d bytes)\n", path, len(data))

	ok, err := stamp.Verify(string(data))
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	if !ok {
		return errors.New("report stamp does not match its content")
	}

	fmt.Println("✅ Stamp valid: report is unchanged since generation")

	return nil
}

func initConfigAction(c *cli.Context) error {
	path := c.String("out")

	if err := config.Default().SaveConfig(path); err != nil {
		return err
	}

	fmt.Printf("✅ Wrote default configuration to %s\n", path)

	return nil
}

// loadConfig builds the effective configuration: file (or defaults), then
// flag overrides, then validation.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()

	if path := c.String("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if f := c.String("format"); f != "" {
		format, err := report.ParseFormat(f)
		if err != nil {
			return nil, err
		}

		cfg.Report.Format = string(format)
	}

	if lvl := c.String("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}

	if out := c.String("out"); out != "" {
		cfg.Report.Path = out
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveSources prefers --input flags; without them the configured
// datasets drive the run.
func resolveSources(c *cli.Context, cfg *config.Config) ([]analyzer.Source, error) {
	if inputs := c.StringSlice("input"); len(inputs) > 0 {
		sources := make([]analyzer.Source, len(inputs))
		for i, in := range inputs {
			sources[i] = analyzer.Source{File: in}
		}

		return sources, nil
	}

	if len(cfg.Datasets) > 0 {
		sources := make([]analyzer.Source, len(cfg.Datasets))
		for i, ds := range cfg.Datasets {
			sources[i] = analyzer.SourceFromConfig(ds)
		}

		return sources, nil
	}

	return nil, errors.New("no datasets: pass --input or list datasets in the configuration")
}

// resolveBaseline picks the comparison baseline: the --baseline flag, then
// the configured baseline dataset, then the first analyzed site.
func resolveBaseline(c *cli.Context, cfg *config.Config, sets []*models.SiteScoreSet) string {
	if b := c.String("baseline"); b != "" {
		return b
	}

	for _, ds := range cfg.Datasets {
		if ds.Baseline {
			return analyzer.SourceFromConfig(ds).EffectiveLabel()
		}
	}

	return sets[0].SiteLabel
}

// parseAliases converts repeated field=Header flags into the normalizer's
// override table.
func parseAliases(values []string) (map[string][]string, error) {
	if len(values) == 0 {
		return nil, nil
	}

	aliases := make(map[string][]string, len(values))

	for _, v := range values {
		field, column, ok := strings.Cut(v, "=")

		field = strings.TrimSpace(field)
		column = strings.TrimSpace(column)

		if !ok || field == "" || column == "" {
			return nil, fmt.Errorf("invalid alias %q, expected field=Header", v)
		}

		aliases[field] = append(aliases[field], column)
	}

	return aliases, nil
}

func writeReport(log *logger.Logger, path, content string) error {
	if path == "" {
		fmt.Print(content)

		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	log.Info("✅ report written", "path", path)

	return nil
}
