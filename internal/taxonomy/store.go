package taxonomy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"

	"github.com/dvloznov/money-tracker/internal/model"
)

// The persisted document is JSON keyed by transaction type:
//
//	{"Expense": ["Groceries", ...], "Income": ["Salary", ...]}
//
// It is read once at startup and rewritten in full on every mutation.

// FileStore persists the taxonomy document to a local file.
type FileStore struct {
	Path string
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context) (map[model.TransactionType][]string, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FileStore.Load: reading %q: %w", s.Path, err)
	}
	return decodeDocument(data)
}

// Save implements Store.
func (s *FileStore) Save(ctx context.Context, categories map[model.TransactionType][]string) error {
	data, err := encodeDocument(categories)
	if err != nil {
		return fmt.Errorf("FileStore.Save: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("FileStore.Save: writing %q: %w", s.Path, err)
	}
	return nil
}

// GCSStore persists the taxonomy document as a single GCS object, for
// deployments without a persistent local disk. It assumes Application
// Default Credentials are configured.
type GCSStore struct {
	Bucket string
	Object string
}

// Load implements Store.
func (s *GCSStore) Load(ctx context.Context) (map[model.TransactionType][]string, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("GCSStore.Load: creating storage client: %w", err)
	}
	defer client.Close()

	rc, err := client.Bucket(s.Bucket).Object(s.Object).NewReader(ctx)
	if err == storage.ErrObjectNotExist {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GCSStore.Load: reading object %s/%s: %w", s.Bucket, s.Object, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("GCSStore.Load: reading bytes: %w", err)
	}
	return decodeDocument(data)
}

// Save implements Store.
func (s *GCSStore) Save(ctx context.Context, categories map[model.TransactionType][]string) error {
	data, err := encodeDocument(categories)
	if err != nil {
		return fmt.Errorf("GCSStore.Save: %w", err)
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("GCSStore.Save: creating storage client: %w", err)
	}
	defer client.Close()

	w := client.Bucket(s.Bucket).Object(s.Object).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("GCSStore.Save: writing object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("GCSStore.Save: finalizing object: %w", err)
	}
	return nil
}

func encodeDocument(categories map[model.TransactionType][]string) ([]byte, error) {
	doc := make(map[string][]string, len(categories))
	for typ, names := range categories {
		doc[string(typ)] = names
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling taxonomy document: %w", err)
	}
	return data, nil
}

func decodeDocument(data []byte) (map[model.TransactionType][]string, error) {
	var doc map[string][]string
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling taxonomy document: %w", err)
	}
	out := make(map[model.TransactionType][]string, len(doc))
	for typ, names := range doc {
		out[model.TransactionType(typ)] = names
	}
	return out, nil
}
