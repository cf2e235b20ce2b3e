// Package taxonomy holds the evolving set of valid category names per
// transaction type. The set is seeded with a built-in list, optionally
// extended by persisted state at startup, and grows monotonically at runtime:
// names are appended, never removed or renamed automatically.
package taxonomy

import (
	"context"
	"fmt"
	"sync"

	"github.com/dvloznov/money-tracker/internal/model"
)

// seedCategories is the built-in taxonomy every process starts from.
var seedCategories = map[model.TransactionType][]string{
	model.Expense: {
		"Groceries",
		"Transport",
		"Housing",
		"Utilities",
		"Communication",
		"Health & Medical",
		"Clothing",
		"Entertainment",
		"Restaurants & Cafes",
		"Education",
		"Gifts",
		"Sports & Fitness",
		"Beauty",
		"Other",
	},
	model.Income: {
		"Salary",
		"Freelance",
		"Side Job",
		"Investment",
		"Debt Return",
		"Gift",
		"Other",
	},
}

// Store persists the full taxonomy document. Load returns nil without error
// when no prior state exists.
type Store interface {
	Load(ctx context.Context) (map[model.TransactionType][]string, error)
	Save(ctx context.Context, categories map[model.TransactionType][]string) error
}

// Taxonomy is the process-wide category registry. All reads and the
// append-then-persist sequence are serialized behind a mutex, since the
// persisted document is a single shared resource.
type Taxonomy struct {
	mu         sync.Mutex
	categories map[model.TransactionType][]string
	store      Store
}

// Load builds a Taxonomy from the seed lists merged with any persisted state
// from the store. Persisted names unknown to the seed are appended, so
// categories created in earlier runs survive restarts.
func Load(ctx context.Context, store Store) (*Taxonomy, error) {
	t := &Taxonomy{
		categories: make(map[model.TransactionType][]string, len(seedCategories)),
		store:      store,
	}
	for typ, names := range seedCategories {
		t.categories[typ] = append([]string(nil), names...)
	}

	if store == nil {
		return t, nil
	}

	persisted, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("taxonomy.Load: %w", err)
	}
	for typ, names := range persisted {
		for _, name := range names {
			if !contains(t.categories[typ], name) {
				t.categories[typ] = append(t.categories[typ], name)
			}
		}
	}
	return t, nil
}

// Categories returns a copy of the category list for the given type.
func (t *Taxonomy) Categories(typ model.TransactionType) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.categories[typ]...)
}

// Contains reports whether name is an exact (case-sensitive) member of the
// list for the given type.
func (t *Taxonomy) Contains(typ model.TransactionType, name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return contains(t.categories[typ], name)
}

// Add appends a new category name for the given type and rewrites the
// persisted document. Adding an existing name is a no-op. A persistence
// failure is returned so the caller can log it; the in-memory append is
// rolled back so a later retry persists a consistent document.
func (t *Taxonomy) Add(ctx context.Context, typ model.TransactionType, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if contains(t.categories[typ], name) {
		return nil
	}
	t.categories[typ] = append(t.categories[typ], name)

	if t.store == nil {
		return nil
	}
	if err := t.store.Save(ctx, t.snapshotLocked()); err != nil {
		t.categories[typ] = t.categories[typ][:len(t.categories[typ])-1]
		return fmt.Errorf("taxonomy.Add: persisting %q: %w", name, err)
	}
	return nil
}

// snapshotLocked copies the category map for persistence. Caller holds mu.
func (t *Taxonomy) snapshotLocked() map[model.TransactionType][]string {
	out := make(map[model.TransactionType][]string, len(t.categories))
	for typ, names := range t.categories {
		out[typ] = append([]string(nil), names...)
	}
	return out
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
