package commands

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dvloznov/money-tracker/internal/config"
	"github.com/dvloznov/money-tracker/internal/model"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Ledger.Path = filepath.Join(dir, "ledger.xlsx")
	cfg.Taxonomy.Path = filepath.Join(dir, "categories.json")
	return cfg
}

func TestBuildLedgerXLSX(t *testing.T) {
	cfg := testConfig(t)

	l, err := BuildLedger(context.Background(), cfg)
	if err != nil {
		t.Fatalf("BuildLedger failed: %v", err)
	}

	rows, err := l.ReadAllRecords(context.Background())
	if err != nil {
		t.Fatalf("ReadAllRecords failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("fresh ledger has %d rows", len(rows))
	}
}

func TestBuildLedgerUnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Ledger.Backend = "stone-tablet"

	if _, err := BuildLedger(context.Background(), cfg); err == nil {
		t.Error("unknown ledger backend should fail")
	}
}

func TestBuildTaxonomyFileBackend(t *testing.T) {
	cfg := testConfig(t)

	tax, err := BuildTaxonomy(context.Background(), cfg)
	if err != nil {
		t.Fatalf("BuildTaxonomy failed: %v", err)
	}
	if !tax.Contains(model.Expense, "Groceries") {
		t.Error("taxonomy missing seed categories")
	}
}

func TestBuildTrainerBadWeekday(t *testing.T) {
	cfg := testConfig(t)
	cfg.Trainer.RetrainDay = "Someday"

	l, err := BuildLedger(context.Background(), cfg)
	if err != nil {
		t.Fatalf("BuildLedger failed: %v", err)
	}
	if _, err := BuildTrainer(cfg, l, zerolog.Nop()); err == nil {
		t.Error("invalid retrain day should fail")
	}
}
