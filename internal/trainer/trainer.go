// Package trainer mines the ledger for few-shot examples and decides when a
// weekly refresh is due. It reads rows written by the bot (and corrected by
// humans in the sheet) and renders a bounded example block for the
// extraction prompt.
package trainer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/money-tracker/internal/ledger"
)

const (
	defaultLoadLimit = 50
	maxCorrected     = 10
	maxExamples      = 15
)

// defaultCorrectedMarkers are the cell values that count as a human-reviewed
// row. The sheet is edited by hand, so both latin and checkmark markers show
// up in practice.
var defaultCorrectedMarkers = []string{"yes", "true", "1", "✓", "v"}

// Example is one mined ledger row eligible for the few-shot block.
type Example struct {
	Input       string
	Type        string
	Category    string
	Description string
	Amount      string
	Currency    string
	Corrected   bool
}

// Stats is a snapshot for the /stats command and for logs.
type Stats struct {
	ExampleCount  int
	LastTrainedAt time.Time
	RetrainDue    bool
}

// Config tunes the mining heuristics. Zero values take the documented
// defaults.
type Config struct {
	// LoadLimit caps how many eligible rows are read from the ledger.
	LoadLimit int
	// CorrectedMarkers are the lowercase cell values treated as corrected.
	CorrectedMarkers []string
	// RetrainDay is the weekly refresh day. The zero value is Sunday, so
	// callers wanting the usual Monday schedule must set it explicitly.
	RetrainDay time.Weekday
}

// Trainer caches the rendered example block between refreshes. The cache is
// advisory: extraction reads whatever is current and a stale block is fine.
type Trainer struct {
	ledger ledger.Ledger
	log    zerolog.Logger
	cfg    Config

	now func() time.Time

	mu          sync.Mutex
	examples    []Example
	block       string
	lastTrained time.Time
}

func New(l ledger.Ledger, log zerolog.Logger, cfg Config) *Trainer {
	if cfg.LoadLimit <= 0 {
		cfg.LoadLimit = defaultLoadLimit
	}
	if len(cfg.CorrectedMarkers) == 0 {
		cfg.CorrectedMarkers = defaultCorrectedMarkers
	}
	return &Trainer{
		ledger: l,
		log:    log.With().Str("component", "trainer").Logger(),
		cfg:    cfg,
		now:    time.Now,
	}
}

// LoadExamples reads ledger rows oldest first and keeps those with both an
// input and a category, up to the configured limit.
func (t *Trainer) LoadExamples(ctx context.Context) ([]Example, error) {
	rows, err := t.ledger.ReadAllRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("LoadExamples: reading ledger: %w", err)
	}

	examples := make([]Example, 0, t.cfg.LoadLimit)
	for _, row := range rows {
		if row.Input == "" || row.Category == "" {
			continue
		}
		examples = append(examples, Example{
			Input:       row.Input,
			Type:        row.Type,
			Category:    row.Category,
			Description: row.Description,
			Amount:      row.Amount,
			Currency:    row.Currency,
			Corrected:   t.isCorrected(row.Corrected),
		})
		if len(examples) >= t.cfg.LoadLimit {
			break
		}
	}
	return examples, nil
}

func (t *Trainer) isCorrected(marker string) bool {
	m := strings.ToLower(strings.TrimSpace(marker))
	for _, want := range t.cfg.CorrectedMarkers {
		if m == want {
			return true
		}
	}
	return false
}

// Refresh reloads examples from the ledger and rebuilds the cached block.
func (t *Trainer) Refresh(ctx context.Context) error {
	examples, err := t.LoadExamples(ctx)
	if err != nil {
		return err
	}

	block := RenderExamples(examples)

	t.mu.Lock()
	t.examples = examples
	t.block = block
	t.lastTrained = t.now()
	t.mu.Unlock()

	t.log.Info().Int("examples", len(examples)).Msg("refreshed few-shot examples")
	return nil
}

// ExamplesBlock returns the cached block, empty until the first Refresh.
func (t *Trainer) ExamplesBlock() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.block
}

// RenderExamples selects and formats the few-shot block: the 10 most recent
// corrected examples first, topped up to 15 with the most recent uncorrected
// ones.
func RenderExamples(examples []Example) string {
	var corrected, regular []Example
	for _, ex := range examples {
		if ex.Corrected {
			corrected = append(corrected, ex)
		} else {
			regular = append(regular, ex)
		}
	}

	var selected []Example
	if len(corrected) > maxCorrected {
		corrected = corrected[len(corrected)-maxCorrected:]
	}
	selected = append(selected, corrected...)

	if remaining := maxExamples - len(selected); remaining > 0 && len(regular) > 0 {
		if len(regular) > remaining {
			regular = regular[len(regular)-remaining:]
		}
		selected = append(selected, regular...)
	}
	if len(selected) > maxExamples {
		selected = selected[len(selected)-maxExamples:]
	}

	lines := make([]string, 0, len(selected))
	for _, ex := range selected {
		lines = append(lines, renderLine(ex))
	}
	return strings.Join(lines, "\n")
}

// renderLine formats one example as an input→JSON illustration. The type is
// guessed from the input text for display only; the stored Type column is
// not always filled for old rows.
func renderLine(ex Example) string {
	description := ex.Description
	if description == "" {
		if fields := strings.Fields(ex.Input); len(fields) > 0 {
			description = fields[0]
		}
	}

	txType := "Expense"
	lower := strings.ToLower(ex.Input)
	if strings.Contains(ex.Input, "+") || strings.Contains(lower, "salary") || strings.Contains(lower, "доход") {
		txType = "Income"
	}

	return fmt.Sprintf("- %q -> {\"type\": %q, \"category\": %q, \"description\": %q}",
		ex.Input, txType, ex.Category, description)
}

// ShouldRetrain reports whether the weekly refresh is due: immediately if
// never trained, otherwise on the configured weekday once at least 7 days
// have passed.
func (t *Trainer) ShouldRetrain() bool {
	t.mu.Lock()
	last := t.lastTrained
	t.mu.Unlock()

	if last.IsZero() {
		return true
	}

	now := t.now()
	daysSince := int(now.Sub(last).Hours() / 24)
	return now.Weekday() == t.cfg.RetrainDay && daysSince >= 7
}

// Stats returns a snapshot of the trainer's state.
func (t *Trainer) Stats() Stats {
	t.mu.Lock()
	count := len(t.examples)
	last := t.lastTrained
	t.mu.Unlock()

	return Stats{
		ExampleCount:  count,
		LastTrainedAt: last,
		RetrainDue:    t.ShouldRetrain(),
	}
}
