package trainer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/money-tracker/internal/ledger"
	"github.com/dvloznov/money-tracker/internal/model"
)

// mockLedger serves canned rows to the trainer.
type mockLedger struct {
	rows []ledger.Row
	err  error
}

func (m *mockLedger) Append(ctx context.Context, r model.TransactionRecord) error { return nil }
func (m *mockLedger) AppendBatch(ctx context.Context, r []model.TransactionRecord) error {
	return nil
}
func (m *mockLedger) ReadAllRecords(ctx context.Context) ([]ledger.Row, error) {
	return m.rows, m.err
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func row(input, category, corrected string) ledger.Row {
	return ledger.Row{
		Input:       input,
		Type:        "Expense",
		Category:    category,
		Description: "Stuff",
		Amount:      "10.00",
		Currency:    "ILS",
		Corrected:   corrected,
	}
}

func TestLoadExamplesFiltersAndLimits(t *testing.T) {
	rows := []ledger.Row{
		row("Taxi 70", "Transport", ""),
		row("", "Transport", ""),       // no input
		row("Coffee 20", "", ""),       // no category
		row("кофе 23", "Restaurants & Cafes", "yes"),
	}
	tr := New(&mockLedger{rows: rows}, testLogger(), Config{})

	got, err := tr.LoadExamples(context.Background())
	if err != nil {
		t.Fatalf("LoadExamples failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d examples, want 2", len(got))
	}
	if got[0].Input != "Taxi 70" || got[0].Corrected {
		t.Errorf("unexpected first example: %+v", got[0])
	}
	if got[1].Input != "кофе 23" || !got[1].Corrected {
		t.Errorf("unexpected second example: %+v", got[1])
	}
}

func TestLoadExamplesRespectsLimit(t *testing.T) {
	var rows []ledger.Row
	for i := 0; i < 60; i++ {
		rows = append(rows, row(fmt.Sprintf("Taxi %d", i), "Transport", ""))
	}
	tr := New(&mockLedger{rows: rows}, testLogger(), Config{})

	got, err := tr.LoadExamples(context.Background())
	if err != nil {
		t.Fatalf("LoadExamples failed: %v", err)
	}
	if len(got) != 50 {
		t.Errorf("got %d examples, want default limit 50", len(got))
	}
}

func TestCorrectedMarkers(t *testing.T) {
	tr := New(&mockLedger{}, testLogger(), Config{})

	for _, marker := range []string{"yes", "YES", "true", "1", "✓", "v", " yes "} {
		if !tr.isCorrected(marker) {
			t.Errorf("isCorrected(%q) = false, want true", marker)
		}
	}
	for _, marker := range []string{"", "no", "0", "maybe"} {
		if tr.isCorrected(marker) {
			t.Errorf("isCorrected(%q) = true, want false", marker)
		}
	}
}

func TestRenderExamplesSelection(t *testing.T) {
	// 12 corrected and 20 uncorrected: the block must hold exactly 15 lines,
	// the 10 most recent corrected plus the 5 most recent uncorrected.
	var examples []Example
	for i := 0; i < 12; i++ {
		examples = append(examples, Example{
			Input:     fmt.Sprintf("corrected %d", i),
			Category:  "Transport",
			Corrected: true,
		})
	}
	for i := 0; i < 20; i++ {
		examples = append(examples, Example{
			Input:    fmt.Sprintf("regular %d", i),
			Category: "Groceries",
		})
	}

	block := RenderExamples(examples)
	lines := strings.Split(block, "\n")
	if len(lines) != 15 {
		t.Fatalf("got %d lines, want 15:\n%s", len(lines), block)
	}

	for i := 0; i < 10; i++ {
		want := fmt.Sprintf(`"corrected %d"`, i+2)
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want input %s", i, lines[i], want)
		}
	}
	for i := 0; i < 5; i++ {
		want := fmt.Sprintf(`"regular %d"`, i+15)
		if !strings.Contains(lines[10+i], want) {
			t.Errorf("line %d = %q, want input %s", 10+i, lines[10+i], want)
		}
	}
}

func TestRenderExamplesEmpty(t *testing.T) {
	if got := RenderExamples(nil); got != "" {
		t.Errorf("RenderExamples(nil) = %q, want empty", got)
	}
}

func TestRenderLineTypeHeuristic(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Taxi 70", "Expense"},
		{"+5000 freelance", "Income"},
		{"salary 12000", "Income"},
		{"доход 3000", "Income"},
		{"кофе 23", "Expense"},
	}
	for _, tt := range tests {
		line := renderLine(Example{Input: tt.input, Category: "Other", Description: "Stuff"})
		if !strings.Contains(line, fmt.Sprintf("\"type\": %q", tt.want)) {
			t.Errorf("renderLine(%q) = %q, want type %s", tt.input, line, tt.want)
		}
	}
}

func TestRenderLineFormat(t *testing.T) {
	line := renderLine(Example{Input: "кофе 30", Category: "Restaurants & Cafes", Description: "Coffee"})
	want := `- "кофе 30" -> {"type": "Expense", "category": "Restaurants & Cafes", "description": "Coffee"}`
	if line != want {
		t.Errorf("renderLine = %q, want %q", line, want)
	}
}

func TestShouldRetrain(t *testing.T) {
	monday := time.Date(2025, 10, 27, 12, 0, 0, 0, time.UTC) // a Monday
	tr := New(&mockLedger{}, testLogger(), Config{RetrainDay: time.Monday})
	tr.now = func() time.Time { return monday }

	if !tr.ShouldRetrain() {
		t.Error("never-trained trainer should retrain")
	}

	// Trained today: not due even on the retrain day.
	tr.lastTrained = monday.Add(-2 * time.Hour)
	if tr.ShouldRetrain() {
		t.Error("trained two hours ago, retrain not due")
	}

	// Trained over a week ago and today is the retrain day: due.
	tr.lastTrained = monday.AddDate(0, 0, -8)
	if !tr.ShouldRetrain() {
		t.Error("trained 8 days ago on retrain day, want due")
	}

	// Same staleness but on a Tuesday: not due.
	tr.now = func() time.Time { return monday.AddDate(0, 0, 1) }
	tr.lastTrained = monday.AddDate(0, 0, -8)
	if tr.ShouldRetrain() {
		t.Error("stale but wrong weekday, retrain not due")
	}
}

func TestRefreshAndStats(t *testing.T) {
	rows := []ledger.Row{
		row("Taxi 70", "Transport", ""),
		row("кофе 23", "Restaurants & Cafes", "yes"),
	}
	fixed := time.Date(2025, 10, 27, 12, 0, 0, 0, time.UTC)
	tr := New(&mockLedger{rows: rows}, testLogger(), Config{RetrainDay: time.Monday})
	tr.now = func() time.Time { return fixed }

	if tr.ExamplesBlock() != "" {
		t.Error("block should be empty before first refresh")
	}

	if err := tr.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	block := tr.ExamplesBlock()
	if !strings.Contains(block, `"Taxi 70"`) || !strings.Contains(block, `"кофе 23"`) {
		t.Errorf("block missing examples:\n%s", block)
	}

	stats := tr.Stats()
	if stats.ExampleCount != 2 {
		t.Errorf("ExampleCount = %d, want 2", stats.ExampleCount)
	}
	if !stats.LastTrainedAt.Equal(fixed) {
		t.Errorf("LastTrainedAt = %v, want %v", stats.LastTrainedAt, fixed)
	}
	if stats.RetrainDue {
		t.Error("just refreshed, retrain should not be due")
	}
}

func TestRefreshLedgerFailure(t *testing.T) {
	tr := New(&mockLedger{err: errors.New("sheet unavailable")}, testLogger(), Config{})

	if err := tr.Refresh(context.Background()); err == nil {
		t.Error("Refresh should surface ledger errors")
	}
	if tr.ExamplesBlock() != "" {
		t.Error("failed refresh must not replace the cached block")
	}
	if !tr.Stats().LastTrainedAt.IsZero() {
		t.Error("failed refresh must not stamp a training time")
	}
}
