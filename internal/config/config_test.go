package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// validConfigYAML overrides a handful of keys and leaves the rest to
// their defaults.
const validConfigYAML = `
scoring:
  weights:
    content: 0.5
    technical: 0.3
    ux: 0.2
  content:
    missing_title: 25
aggregation:
  method: "median"
report:
  format: "json"
  path: "./out/report.json"
logging:
  level: "debug"
datasets:
  - label: "mysite"
    file: "./exports/mysite.csv"
    baseline: true
  - label: "competitor-a"
    file: "./exports/competitor-a.csv"
`

func TestLoadConfig_Valid(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg == nil {
		t.Fatal("Expected config, got nil")
	}

	if len(cfg.Datasets) != 2 {
		t.Errorf("Expected 2 datasets, got %d", len(cfg.Datasets))
	}

	if cfg.Scoring.Weights.Content != 0.5 {
		t.Errorf("Expected content weight 0.5, got %v", cfg.Scoring.Weights.Content)
	}

	if cfg.Scoring.Content.MissingTitle != 25 {
		t.Errorf("Expected missing_title override 25, got %v", cfg.Scoring.Content.MissingTitle)
	}

	if cfg.Aggregation.Method != "median" {
		t.Errorf("Expected aggregation method 'median', got '%s'", cfg.Aggregation.Method)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	// Only logging is overridden; everything else must keep its default.
	configPath := createTempConfigFile(t, "logging:\n  level: \"warn\"\n")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("Expected level 'warn', got '%s'", cfg.Logging.Level)
	}

	def := Default()

	if cfg.Scoring.Weights != def.Scoring.Weights {
		t.Errorf("Expected default weights %+v, got %+v", def.Scoring.Weights, cfg.Scoring.Weights)
	}

	if cfg.Scoring.Content.TitleMinLength != def.Scoring.Content.TitleMinLength {
		t.Errorf("Expected default title_min_length %d, got %d",
			def.Scoring.Content.TitleMinLength, cfg.Scoring.Content.TitleMinLength)
	}

	if cfg.Report.Format != "markdown" {
		t.Errorf("Expected default report format 'markdown', got '%s'", cfg.Report.Format)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := createTempConfigFile(t, "invalid: yaml: content: [}")

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default config must validate, got: %v", err)
	}
}

func TestConfig_Validate_WeightsDoNotSum(t *testing.T) {
	cfg := Default()
	cfg.Scoring.Weights = Weights{Content: 0.5, Technical: 0.3, UX: 0.1}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error for weights summing to 0.9")
	}

	var weightsErr *InvalidWeightsError
	if !errors.As(err, &weightsErr) {
		t.Fatalf("Expected InvalidWeightsError, got %T: %v", err, err)
	}

	if math.Abs(weightsErr.Sum-0.9) > 1e-9 {
		t.Errorf("Expected reported sum 0.9, got %v", weightsErr.Sum)
	}
}

func TestConfig_Validate_WeightsWithinEpsilon(t *testing.T) {
	cfg := Default()
	cfg.Scoring.Weights = Weights{Content: 0.4, Technical: 0.35, UX: 0.25 + 1e-9}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected sum within epsilon to validate, got: %v", err)
	}
}

func TestConfig_Validate_NegativeWeight(t *testing.T) {
	cfg := Default()
	cfg.Scoring.Weights = Weights{Content: 1.2, Technical: -0.2, UX: 0.0}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error for negative weight")
	}
}

func TestConfig_Validate_NegativeDeduction(t *testing.T) {
	cfg := Default()
	cfg.Scoring.Content.MissingTitle = -5

	err := cfg.Validate()
	if !errors.Is(err, ErrNegativeDeduction) {
		t.Fatalf("Expected ErrNegativeDeduction, got: %v", err)
	}
}

func TestConfig_Validate_TitleLengthRange(t *testing.T) {
	cfg := Default()
	cfg.Scoring.Content.TitleMinLength = 70
	cfg.Scoring.Content.TitleMaxLength = 60

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidLengthRange) {
		t.Fatalf("Expected ErrInvalidLengthRange, got: %v", err)
	}
}

func TestConfig_Validate_NoResponseTiers(t *testing.T) {
	cfg := Default()
	cfg.Scoring.Technical.ResponseTimeTiersMs = nil

	err := cfg.Validate()
	if !errors.Is(err, ErrNoResponseTiers) {
		t.Fatalf("Expected ErrNoResponseTiers, got: %v", err)
	}
}

func TestConfig_Validate_UnorderedResponseTiers(t *testing.T) {
	cfg := Default()
	cfg.Scoring.Technical.ResponseTimeTiersMs = []float64{3000, 1000}

	err := cfg.Validate()
	if !errors.Is(err, ErrUnorderedThresholds) {
		t.Fatalf("Expected ErrUnorderedThresholds, got: %v", err)
	}
}

func TestConfig_Validate_UnorderedVitalsBands(t *testing.T) {
	cfg := Default()
	cfg.Scoring.UX.LCPGoodSeconds = 4.0
	cfg.Scoring.UX.LCPPoorSeconds = 2.5

	err := cfg.Validate()
	if !errors.Is(err, ErrUnorderedThresholds) {
		t.Fatalf("Expected ErrUnorderedThresholds, got: %v", err)
	}
}

func TestConfig_Validate_InvalidAggregation(t *testing.T) {
	cfg := Default()
	cfg.Aggregation.Method = "mode"

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidAggregation) {
		t.Fatalf("Expected ErrInvalidAggregation, got: %v", err)
	}
}

func TestConfig_Validate_InvalidReportFormat(t *testing.T) {
	cfg := Default()
	cfg.Report.Format = "xlsx"

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidReportFormat) {
		t.Fatalf("Expected ErrInvalidReportFormat, got: %v", err)
	}
}

func TestConfig_Validate_InvalidLoggingLevel(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidLogLevel) {
		t.Fatalf("Expected ErrInvalidLogLevel, got: %v", err)
	}
}

func TestConfig_Validate_DatasetMissingFile(t *testing.T) {
	cfg := Default()
	cfg.Datasets = []DatasetConfig{
		{Label: "mysite", File: "./exports/mysite.csv"},
		{Label: "broken"},
	}

	err := cfg.Validate()
	if !errors.Is(err, ErrDatasetMissingFile) {
		t.Fatalf("Expected ErrDatasetMissingFile, got: %v", err)
	}
}

func TestConfig_Validate_MultipleBaselines(t *testing.T) {
	cfg := Default()
	cfg.Datasets = []DatasetConfig{
		{Label: "a", File: "a.csv", Baseline: true},
		{Label: "b", File: "b.csv", Baseline: true},
	}

	err := cfg.Validate()
	if !errors.Is(err, ErrMultipleBaselines) {
		t.Fatalf("Expected ErrMultipleBaselines, got: %v", err)
	}
}

// --- Helper Method Tests ---

func TestWeights_Sum(t *testing.T) {
	w := Weights{Content: 0.4, Technical: 0.35, UX: 0.25}

	if got := w.Sum(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Sum() = %v, want 1.0", got)
	}
}

func TestConfig_BaselineLabel(t *testing.T) {
	tests := []struct {
		name     string
		datasets []DatasetConfig
		expected string
		ok       bool
	}{
		{
			"marked baseline wins",
			[]DatasetConfig{
				{Label: "a", File: "a.csv"},
				{Label: "b", File: "b.csv", Baseline: true},
			},
			"b", true,
		},
		{
			"first dataset fallback",
			[]DatasetConfig{
				{Label: "a", File: "a.csv"},
				{Label: "b", File: "b.csv"},
			},
			"a", true,
		},
		{"no datasets", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Datasets = tt.datasets

			label, ok := cfg.BaselineLabel()
			if label != tt.expected || ok != tt.ok {
				t.Errorf("BaselineLabel() = (%q, %v), want (%q, %v)", label, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestConfig_String(t *testing.T) {
	cfg := Default()
	cfg.Datasets = []DatasetConfig{{Label: "a", File: "a.csv"}}

	str := cfg.String()
	if str == "" {
		t.Error("Expected non-empty string representation")
	}
}

func TestConfig_SaveConfig(t *testing.T) {
	cfg := Default()
	cfg.Datasets = []DatasetConfig{
		{Label: "mysite", File: "./exports/mysite.csv", Baseline: true},
	}

	tmpDir := t.TempDir()
	savePath := filepath.Join(tmpDir, "saved_config.yaml")

	err := cfg.SaveConfig(savePath)
	if err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	// Verify file was created
	if _, statErr := os.Stat(savePath); os.IsNotExist(statErr) {
		t.Fatal("Expected saved config file to exist")
	}

	// Verify we can load it back
	loaded, err := LoadConfig(savePath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if loaded.Datasets[0].Label != "mysite" {
		t.Error("Loaded config does not match saved config")
	}

	if loaded.Scoring.Weights != cfg.Scoring.Weights {
		t.Error("Loaded weights do not match saved weights")
	}
}
