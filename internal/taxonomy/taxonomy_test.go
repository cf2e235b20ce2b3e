package taxonomy

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dvloznov/money-tracker/internal/model"
)

// mockStore counts saves and can simulate prior persisted state or failures.
type mockStore struct {
	persisted map[model.TransactionType][]string
	saved     map[model.TransactionType][]string
	saveCount int
	saveErr   error
}

func (m *mockStore) Load(ctx context.Context) (map[model.TransactionType][]string, error) {
	return m.persisted, nil
}

func (m *mockStore) Save(ctx context.Context, categories map[model.TransactionType][]string) error {
	m.saveCount++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = categories
	return nil
}

func TestLoadSeedsDefaults(t *testing.T) {
	tax, err := Load(context.Background(), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	for _, name := range []string{"Groceries", "Transport", "Other"} {
		if !tax.Contains(model.Expense, name) {
			t.Errorf("seed taxonomy missing Expense category %q", name)
		}
	}
	for _, name := range []string{"Salary", "Freelance", "Other"} {
		if !tax.Contains(model.Income, name) {
			t.Errorf("seed taxonomy missing Income category %q", name)
		}
	}
}

func TestLoadMergesPersistedState(t *testing.T) {
	store := &mockStore{
		persisted: map[model.TransactionType][]string{
			model.Expense: {"Groceries", "Pets"},
		},
	}

	tax, err := Load(context.Background(), store)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !tax.Contains(model.Expense, "Pets") {
		t.Error("persisted category Pets not merged")
	}
	// Seed entry present in persisted state must not be duplicated.
	count := 0
	for _, name := range tax.Categories(model.Expense) {
		if name == "Groceries" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Groceries appears %d times, want 1", count)
	}
}

func TestAddAppendsAndPersistsOnce(t *testing.T) {
	store := &mockStore{}
	tax, err := Load(context.Background(), store)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	before := len(tax.Categories(model.Expense))
	if err := tax.Add(context.Background(), model.Expense, "Coffeeshop"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if got := len(tax.Categories(model.Expense)); got != before+1 {
		t.Errorf("category count = %d, want %d", got, before+1)
	}
	if !tax.Contains(model.Expense, "Coffeeshop") {
		t.Error("new category not visible via Contains")
	}
	if store.saveCount != 1 {
		t.Errorf("saveCount = %d, want 1", store.saveCount)
	}

	// Re-adding the same name is a no-op and does not persist again.
	if err := tax.Add(context.Background(), model.Expense, "Coffeeshop"); err != nil {
		t.Fatalf("second Add failed: %v", err)
	}
	if store.saveCount != 1 {
		t.Errorf("saveCount after duplicate Add = %d, want 1", store.saveCount)
	}
}

func TestAddRollsBackOnPersistFailure(t *testing.T) {
	store := &mockStore{saveErr: errors.New("disk full")}
	tax, err := Load(context.Background(), store)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := tax.Add(context.Background(), model.Expense, "Coffeeshop"); err == nil {
		t.Fatal("Add succeeded despite persistence failure")
	}
	if tax.Contains(model.Expense, "Coffeeshop") {
		t.Error("failed Add left category in memory")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.json")
	store := &FileStore{Path: path}
	ctx := context.Background()

	// Missing file reads as no prior state.
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load of missing file failed: %v", err)
	}
	if got != nil {
		t.Errorf("Load of missing file = %v, want nil", got)
	}

	want := map[model.TransactionType][]string{
		model.Expense: {"Groceries", "Coffeeshop"},
		model.Income:  {"Salary"},
	}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	for typ, names := range want {
		if len(got[typ]) != len(names) {
			t.Fatalf("loaded %s = %v, want %v", typ, got[typ], names)
		}
		for i, name := range names {
			if got[typ][i] != name {
				t.Errorf("loaded %s[%d] = %q, want %q", typ, i, got[typ][i], name)
			}
		}
	}
}
