// Package config loads the money-tracker.yaml configuration. Secrets come
// from the environment, never from the file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level money-tracker.yaml configuration.
type Config struct {
	Model    ModelConfig    `yaml:"model"`
	Ledger   LedgerConfig   `yaml:"ledger"`
	Taxonomy TaxonomyConfig `yaml:"taxonomy"`
	Trainer  TrainerConfig  `yaml:"trainer"`
	Notion   NotionConfig   `yaml:"notion,omitempty"`

	// Secrets, loaded from the environment by Load.
	TelegramToken string `yaml:"-"`
	GeminiAPIKey  string `yaml:"-"`
	NotionToken   string `yaml:"-"`
}

// ModelConfig tunes the extraction calls.
type ModelConfig struct {
	Name           string  `yaml:"name"`
	Temperature    float32 `yaml:"temperature"`
	MaxTokens      int32   `yaml:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// LedgerConfig selects and parameterizes the ledger backend.
type LedgerConfig struct {
	// Backend is one of "sheets", "xlsx", "bigquery".
	Backend string `yaml:"backend"`

	// Sheets backend.
	CredentialsFile string `yaml:"credentials_file,omitempty"`
	SpreadsheetID   string `yaml:"spreadsheet_id,omitempty"`
	SheetName       string `yaml:"sheet_name,omitempty"`

	// XLSX backend.
	Path string `yaml:"path,omitempty"`

	// BigQuery backend.
	ProjectID string `yaml:"project_id,omitempty"`
	DatasetID string `yaml:"dataset_id,omitempty"`
	TableID   string `yaml:"table_id,omitempty"`
}

// TaxonomyConfig selects where the category document lives.
type TaxonomyConfig struct {
	// Backend is "file" or "gcs".
	Backend string `yaml:"backend"`
	Path    string `yaml:"path,omitempty"`
	Bucket  string `yaml:"bucket,omitempty"`
	Object  string `yaml:"object,omitempty"`
}

// TrainerConfig tunes example mining and the weekly refresh.
type TrainerConfig struct {
	LoadLimit        int      `yaml:"load_limit"`
	CorrectedMarkers []string `yaml:"corrected_markers,omitempty"`
	// RetrainDay is a weekday name, e.g. "Monday".
	RetrainDay string `yaml:"retrain_day"`
	// RetrainCheckHours is how often the scheduler re-evaluates the
	// predicate.
	RetrainCheckHours int `yaml:"retrain_check_hours"`
}

// NotionConfig parameterizes the optional Notion export.
type NotionConfig struct {
	DatabaseID string `yaml:"database_id,omitempty"`
}

// Default returns a Config with working defaults for a local setup.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Name:           "gemini-2.5-flash",
			Temperature:    0.3,
			MaxTokens:      500,
			TimeoutSeconds: 30,
		},
		Ledger: LedgerConfig{
			Backend:   "xlsx",
			Path:      "money-tracker.xlsx",
			SheetName: "Transactions",
		},
		Taxonomy: TaxonomyConfig{
			Backend: "file",
			Path:    "categories.json",
		},
		Trainer: TrainerConfig{
			LoadLimit:         50,
			RetrainDay:        "Monday",
			RetrainCheckHours: 6,
		},
	}
}

// Load reads the YAML file at path over the defaults, then pulls secrets
// from the environment. An empty path returns defaults plus secrets.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.NotionToken = os.Getenv("NOTION_TOKEN")

	return cfg, nil
}

// Validate reports every missing or inconsistent setting the bot needs at
// startup. The Notion settings are only checked when an export is requested,
// so they are not covered here.
func (c *Config) Validate() []string {
	var missing []string

	if c.TelegramToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN environment variable")
	}
	if c.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY environment variable")
	}

	switch c.Ledger.Backend {
	case "sheets":
		if c.Ledger.SpreadsheetID == "" {
			missing = append(missing, "ledger.spreadsheet_id")
		}
	case "xlsx":
		if c.Ledger.Path == "" {
			missing = append(missing, "ledger.path")
		}
	case "bigquery":
		if c.Ledger.ProjectID == "" {
			missing = append(missing, "ledger.project_id")
		}
		if c.Ledger.DatasetID == "" {
			missing = append(missing, "ledger.dataset_id")
		}
	default:
		missing = append(missing, fmt.Sprintf("ledger.backend %q (want sheets, xlsx or bigquery)", c.Ledger.Backend))
	}

	switch c.Taxonomy.Backend {
	case "file":
		if c.Taxonomy.Path == "" {
			missing = append(missing, "taxonomy.path")
		}
	case "gcs":
		if c.Taxonomy.Bucket == "" {
			missing = append(missing, "taxonomy.bucket")
		}
		if c.Taxonomy.Object == "" {
			missing = append(missing, "taxonomy.object")
		}
	default:
		missing = append(missing, fmt.Sprintf("taxonomy.backend %q (want file or gcs)", c.Taxonomy.Backend))
	}

	if _, err := c.RetrainDay(); err != nil {
		missing = append(missing, fmt.Sprintf("trainer.retrain_day %q", c.Trainer.RetrainDay))
	}

	return missing
}

// RetrainDay parses the configured weekday name.
func (c *Config) RetrainDay() (time.Weekday, error) {
	want := strings.ToLower(strings.TrimSpace(c.Trainer.RetrainDay))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == want {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", c.Trainer.RetrainDay)
}

// Timeout returns the model call timeout as a duration.
func (c *ModelConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RetrainCheckInterval returns how often the retrain predicate is polled.
func (c *TrainerConfig) RetrainCheckInterval() time.Duration {
	return time.Duration(c.RetrainCheckHours) * time.Hour
}
