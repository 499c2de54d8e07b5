// Package config provides configuration management for the scoring pipeline.
// Every weight, deduction amount and threshold used by the evaluators and
// the aggregator is a named field here, so a run can be tuned without
// touching code.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// WeightSumEpsilon is the tolerance when checking that the three
// composite weights sum to 1.0.
const WeightSumEpsilon = 1e-6

// Configuration validation errors.
var (
	ErrNegativeDeduction   = errors.New("deduction amounts must be non-negative")
	ErrInvalidLengthRange  = errors.New("minimum length cannot exceed maximum length")
	ErrUnorderedThresholds = errors.New("thresholds must be in ascending order")
	ErrNoResponseTiers     = errors.New("at least one response time tier is required")
	ErrInvalidAggregation  = errors.New("aggregation.method must be 'mean' or 'median'")
	ErrInvalidReportFormat = errors.New("report.format must be one of: markdown, csv, json")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrDatasetMissingFile  = errors.New("dataset file path is required")
	ErrMultipleBaselines   = errors.New("at most one dataset may be marked as baseline")
)

// InvalidWeightsError reports a weight set that does not sum to 1.0.
// The run fails instead of silently renormalizing, since a bad sum
// almost always means a configuration mistake.
type InvalidWeightsError struct {
	Sum float64
}

func (e *InvalidWeightsError) Error() string {
	return fmt.Sprintf("scoring weights must sum to 1.0 (±%g), got %.4f", WeightSumEpsilon, e.Sum)
}

// Config represents the complete pipeline configuration.
type Config struct {
	Scoring     ScoringConfig     `yaml:"scoring"`
	Aggregation AggregationConfig `yaml:"aggregation"`
	Report      ReportConfig      `yaml:"report"`
	Logging     LoggingConfig     `yaml:"logging"`
	Datasets    []DatasetConfig   `yaml:"datasets"`
}

// ScoringConfig groups the composite weights and the per-evaluator
// deduction tables.
type ScoringConfig struct {
	Weights   Weights        `yaml:"weights"`
	Content   ContentRules   `yaml:"content"`
	Technical TechnicalRules `yaml:"technical"`
	UX        UXRules        `yaml:"ux"`
}

// Weights are the composite weights. They must sum to 1.0 within
// WeightSumEpsilon.
type Weights struct {
	Content   float64 `yaml:"content"`
	Technical float64 `yaml:"technical"`
	UX        float64 `yaml:"ux"`
}

// Sum returns the total of the three weights.
func (w Weights) Sum() float64 {
	return w.Content + w.Technical + w.UX
}

// ContentRules holds the content evaluator's deduction amounts and
// length thresholds.
type ContentRules struct {
	MissingTitle          float64 `yaml:"missing_title"`
	TitleLengthOutOfRange float64 `yaml:"title_length_out_of_range"`
	TitleMinLength        int     `yaml:"title_min_length"`
	TitleMaxLength        int     `yaml:"title_max_length"`

	MissingDescription          float64 `yaml:"missing_description"`
	DescriptionLengthOutOfRange float64 `yaml:"description_length_out_of_range"`
	DescriptionMinLength        int     `yaml:"description_min_length"`
	DescriptionMaxLength        int     `yaml:"description_max_length"`

	MissingH1  float64 `yaml:"missing_h1"`
	MultipleH1 float64 `yaml:"multiple_h1"`

	// LowWordCount is charged once per word count tier the page falls
	// under: below WordCountLow, and again below WordCountCritical.
	LowWordCount      float64 `yaml:"low_word_count"`
	WordCountLow      int     `yaml:"word_count_low"`
	WordCountCritical int     `yaml:"word_count_critical"`
	MissingWordCount  float64 `yaml:"missing_word_count"`

	FewInternalLinks     float64 `yaml:"few_internal_links"`
	MinInternalLinks     int     `yaml:"min_internal_links"`
	MissingInternalLinks float64 `yaml:"missing_internal_links"`
}

// TechnicalRules holds the technical evaluator's deduction amounts and
// response time tiers.
type TechnicalRules struct {
	ErrorStatus    float64 `yaml:"error_status"`
	RedirectStatus float64 `yaml:"redirect_status"`
	MissingStatus  float64 `yaml:"missing_status"`

	NotIndexable float64 `yaml:"not_indexable"`

	// SlowResponse is charged once per tier in ResponseTimeTiersMs that
	// the page's response time exceeds.
	SlowResponse        float64   `yaml:"slow_response"`
	ResponseTimeTiersMs []float64 `yaml:"response_time_tiers_ms"`
	MissingResponseTime float64   `yaml:"missing_response_time"`

	BadCanonical float64 `yaml:"bad_canonical"`
}

// UXRules holds the user experience evaluator's deduction amounts and
// the Core Web Vitals thresholds. The good/poor pairs follow the
// published vitals bands: values between good and poor take the
// moderate deduction, values beyond poor take the severe one.
type UXRules struct {
	NotMobileFriendly     float64 `yaml:"not_mobile_friendly"`
	UnknownMobileFriendly float64 `yaml:"unknown_mobile_friendly"`

	SlowLCP        float64 `yaml:"slow_lcp"`
	VerySlowLCP    float64 `yaml:"very_slow_lcp"`
	LCPGoodSeconds float64 `yaml:"lcp_good_seconds"`
	LCPPoorSeconds float64 `yaml:"lcp_poor_seconds"`

	HighCLS     float64 `yaml:"high_cls"`
	VeryHighCLS float64 `yaml:"very_high_cls"`
	CLSGood     float64 `yaml:"cls_good"`
	CLSPoor     float64 `yaml:"cls_poor"`

	SlowINP     float64 `yaml:"slow_inp"`
	VerySlowINP float64 `yaml:"very_slow_inp"`
	INPGoodMs   float64 `yaml:"inp_good_ms"`
	INPPoorMs   float64 `yaml:"inp_poor_ms"`

	// MissingVital is charged per absent Core Web Vital, with the
	// total capped at MissingVitalCap.
	MissingVital    float64 `yaml:"missing_vital"`
	MissingVitalCap float64 `yaml:"missing_vital_cap"`
}

// AggregationConfig selects how per-page scores roll up to site level.
type AggregationConfig struct {
	Method string `yaml:"method"`
}

// ReportConfig defines report output behavior.
type ReportConfig struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DatasetConfig names one crawl export to analyze.
type DatasetConfig struct {
	Label    string `yaml:"label"`
	File     string `yaml:"file"`
	Baseline bool   `yaml:"baseline"`
}

// Default returns the configuration with every documented default applied.
func Default() *Config {
	return &Config{
		Scoring: ScoringConfig{
			Weights: Weights{Content: 0.40, Technical: 0.35, UX: 0.25},
			Content: ContentRules{
				MissingTitle:          20,
				TitleLengthOutOfRange: 10,
				TitleMinLength:        30,
				TitleMaxLength:        60,

				MissingDescription:          15,
				DescriptionLengthOutOfRange: 8,
				DescriptionMinLength:        50,
				DescriptionMaxLength:        160,

				MissingH1:  15,
				MultipleH1: 15,

				LowWordCount:      10,
				WordCountLow:      300,
				WordCountCritical: 100,
				MissingWordCount:  10,

				FewInternalLinks:     10,
				MinInternalLinks:     3,
				MissingInternalLinks: 10,
			},
			Technical: TechnicalRules{
				ErrorStatus:    40,
				RedirectStatus: 20,
				MissingStatus:  20,

				NotIndexable: 30,

				SlowResponse:        10,
				ResponseTimeTiersMs: []float64{1000, 3000},
				MissingResponseTime: 10,

				BadCanonical: 15,
			},
			UX: UXRules{
				NotMobileFriendly:     30,
				UnknownMobileFriendly: 10,

				SlowLCP:        15,
				VerySlowLCP:    30,
				LCPGoodSeconds: 2.5,
				LCPPoorSeconds: 4.0,

				HighCLS:     10,
				VeryHighCLS: 20,
				CLSGood:     0.1,
				CLSPoor:     0.25,

				SlowINP:     10,
				VerySlowINP: 20,
				INPGoodMs:   200,
				INPPoorMs:   500,

				MissingVital:    5,
				MissingVitalCap: 15,
			},
		},
		Aggregation: AggregationConfig{Method: "mean"},
		Report:      ReportConfig{Format: "markdown"},
		Logging:     LoggingConfig{Level: "info"},
	}
}

// LoadConfig loads configuration from a YAML file. The file is applied
// over the defaults, so a partial file only overrides the keys it names.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Scoring.Validate(); err != nil {
		return err
	}

	if c.Aggregation.Method != "mean" && c.Aggregation.Method != "median" {
		return ErrInvalidAggregation
	}

	switch c.Report.Format {
	case "markdown", "csv", "json":
	default:
		return ErrInvalidReportFormat
	}

	// Validate logging config
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	baselines := 0

	for i, ds := range c.Datasets {
		if ds.File == "" {
			return fmt.Errorf("%w: datasets[%d]", ErrDatasetMissingFile, i)
		}

		if ds.Baseline {
			baselines++
		}
	}

	if baselines > 1 {
		return ErrMultipleBaselines
	}

	return nil
}

// Validate checks the weights and every deduction table.
func (s *ScoringConfig) Validate() error {
	if math.Abs(s.Weights.Sum()-1.0) > WeightSumEpsilon {
		return &InvalidWeightsError{Sum: s.Weights.Sum()}
	}

	if s.Weights.Content < 0 || s.Weights.Technical < 0 || s.Weights.UX < 0 {
		return &InvalidWeightsError{Sum: s.Weights.Sum()}
	}

	amounts := []float64{
		s.Content.MissingTitle, s.Content.TitleLengthOutOfRange,
		s.Content.MissingDescription, s.Content.DescriptionLengthOutOfRange,
		s.Content.MissingH1, s.Content.MultipleH1,
		s.Content.LowWordCount, s.Content.MissingWordCount,
		s.Content.FewInternalLinks, s.Content.MissingInternalLinks,
		s.Technical.ErrorStatus, s.Technical.RedirectStatus, s.Technical.MissingStatus,
		s.Technical.NotIndexable, s.Technical.SlowResponse, s.Technical.MissingResponseTime,
		s.Technical.BadCanonical,
		s.UX.NotMobileFriendly, s.UX.UnknownMobileFriendly,
		s.UX.SlowLCP, s.UX.VerySlowLCP,
		s.UX.HighCLS, s.UX.VeryHighCLS,
		s.UX.SlowINP, s.UX.VerySlowINP,
		s.UX.MissingVital, s.UX.MissingVitalCap,
	}
	for _, amount := range amounts {
		if amount < 0 {
			return ErrNegativeDeduction
		}
	}

	if s.Content.TitleMinLength > s.Content.TitleMaxLength {
		return fmt.Errorf("%w: title length", ErrInvalidLengthRange)
	}

	if s.Content.DescriptionMinLength > s.Content.DescriptionMaxLength {
		return fmt.Errorf("%w: description length", ErrInvalidLengthRange)
	}

	if len(s.Technical.ResponseTimeTiersMs) == 0 {
		return ErrNoResponseTiers
	}

	for i := 1; i < len(s.Technical.ResponseTimeTiersMs); i++ {
		if s.Technical.ResponseTimeTiersMs[i] <= s.Technical.ResponseTimeTiersMs[i-1] {
			return fmt.Errorf("%w: response_time_tiers_ms", ErrUnorderedThresholds)
		}
	}

	if s.UX.LCPGoodSeconds >= s.UX.LCPPoorSeconds {
		return fmt.Errorf("%w: lcp", ErrUnorderedThresholds)
	}

	if s.UX.CLSGood >= s.UX.CLSPoor {
		return fmt.Errorf("%w: cls", ErrUnorderedThresholds)
	}

	if s.UX.INPGoodMs >= s.UX.INPPoorMs {
		return fmt.Errorf("%w: inp", ErrUnorderedThresholds)
	}

	return nil
}

// BaselineLabel returns the label of the dataset marked as baseline,
// falling back to the first dataset when none is marked. ok is false
// when no datasets are configured.
func (c *Config) BaselineLabel() (label string, ok bool) {
	for _, ds := range c.Datasets {
		if ds.Baseline {
			return ds.Label, true
		}
	}

	if len(c.Datasets) > 0 {
		return c.Datasets[0].Label, true
	}

	return "", false
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Datasets: %d, Weights: %.2f/%.2f/%.2f, Report: %s}",
		len(c.Datasets),
		c.Scoring.Weights.Content,
		c.Scoring.Weights.Technical,
		c.Scoring.Weights.UX,
		c.Report.Format,
	)
}
