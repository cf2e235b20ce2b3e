package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dvloznov/money-tracker/internal/categorize"
	"github.com/dvloznov/money-tracker/internal/config"
	"github.com/dvloznov/money-tracker/internal/currency"
	"github.com/dvloznov/money-tracker/internal/ledger"
	"github.com/dvloznov/money-tracker/internal/llm"
	"github.com/dvloznov/money-tracker/internal/logger"
	"github.com/dvloznov/money-tracker/internal/taxonomy"
	"github.com/dvloznov/money-tracker/internal/trainer"
)

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if missing := cfg.Validate(); len(missing) > 0 {
		return nil, fmt.Errorf("incomplete configuration:\n  %s", strings.Join(missing, "\n  "))
	}
	return cfg, nil
}

// BuildLedger constructs the configured ledger backend.
func BuildLedger(ctx context.Context, cfg *config.Config) (ledger.Ledger, error) {
	switch cfg.Ledger.Backend {
	case "sheets":
		return ledger.NewSheetsLedger(ctx, cfg.Ledger.CredentialsFile, cfg.Ledger.SpreadsheetID, cfg.Ledger.SheetName)
	case "xlsx":
		return ledger.NewXLSXLedger(cfg.Ledger.Path, cfg.Ledger.SheetName)
	case "bigquery":
		return ledger.NewBigQueryLedger(cfg.Ledger.ProjectID, cfg.Ledger.DatasetID, cfg.Ledger.TableID), nil
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", cfg.Ledger.Backend)
	}
}

// BuildTaxonomy loads the taxonomy from the configured store.
func BuildTaxonomy(ctx context.Context, cfg *config.Config) (*taxonomy.Taxonomy, error) {
	var store taxonomy.Store
	switch cfg.Taxonomy.Backend {
	case "file":
		store = &taxonomy.FileStore{Path: cfg.Taxonomy.Path}
	case "gcs":
		store = &taxonomy.GCSStore{Bucket: cfg.Taxonomy.Bucket, Object: cfg.Taxonomy.Object}
	default:
		return nil, fmt.Errorf("unknown taxonomy backend %q", cfg.Taxonomy.Backend)
	}
	return taxonomy.Load(ctx, store)
}

// BuildTrainer constructs the example miner over the given ledger.
func BuildTrainer(cfg *config.Config, l ledger.Ledger, log zerolog.Logger) (*trainer.Trainer, error) {
	day, err := cfg.RetrainDay()
	if err != nil {
		return nil, err
	}
	return trainer.New(l, log, trainer.Config{
		LoadLimit:        cfg.Trainer.LoadLimit,
		CorrectedMarkers: cfg.Trainer.CorrectedMarkers,
		RetrainDay:       day,
	}), nil
}

// BuildCategorizer wires the model client, taxonomy, converter and trainer
// into an extractor.
func BuildCategorizer(cfg *config.Config, tax *taxonomy.Taxonomy, tr *trainer.Trainer, log zerolog.Logger) *categorize.Categorizer {
	// The GenAI SDK reads GEMINI_API_KEY from the environment itself;
	// Validate has already checked it is set.
	client := llm.NewGemini(cfg.Model.Name)
	return categorize.New(client, tax, currency.DefaultConverter(), tr, log, categorize.Config{
		Temperature: cfg.Model.Temperature,
		MaxTokens:   cfg.Model.MaxTokens,
		Timeout:     cfg.Model.Timeout(),
	})
}

func newLogger() zerolog.Logger {
	return logger.New()
}
