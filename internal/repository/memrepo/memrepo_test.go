package memrepo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kitodo/dlfcheck/internal/model"
)

func newRecord(id string) *model.CheckRecord {
	return &model.CheckRecord{
		ID:        id,
		Kind:      "PPN",
		Input:     "048772607",
		Valid:     true,
		CheckTime: time.Date(2025, 10, 17, 12, 0, 0, 0, time.UTC),
	}
}

func TestMemoryRepository_StoreGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	record := newRecord("r1")
	if err := repo.Store(ctx, record); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if record.Rev != 1 {
		t.Errorf("Expected Rev 1 after Store, got %d", record.Rev)
	}

	got, err := repo.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Input != record.Input || got.Kind != record.Kind || !got.Valid {
		t.Errorf("Got unexpected record: %+v", got)
	}

	// The returned record is a copy
	got.Input = "changed"
	again, _ := repo.Get(ctx, "r1")
	if again.Input != "048772607" {
		t.Errorf("Repository data was modified through a returned record")
	}
}

func TestMemoryRepository_StoreErrors(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	if err := repo.Store(ctx, nil); err == nil {
		t.Error("Expected error storing nil record")
	}
	if err := repo.Store(ctx, newRecord("")); err == nil {
		t.Error("Expected error storing record without ID")
	}
	if err := repo.Store(ctx, newRecord("dup")); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := repo.Store(ctx, newRecord("dup")); !errors.Is(err, model.ErrAlreadyExists) {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}
}

func TestMemoryRepository_GetDeleteNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected ErrNotFound from Get, got %v", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected ErrNotFound from Delete, got %v", err)
	}
}

func TestMemoryRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	for _, id := range []string{"a", "b", "c"} {
		if err := repo.Store(ctx, newRecord(id)); err != nil {
			t.Fatalf("Store failed: %v", err)
		}
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("Expected 3 records, got %d", len(records))
	}
}

func TestMemoryRepository_JSONPersistence(t *testing.T) {
	tmpPath := filepath.Join(t.TempDir(), "nested", "records.json")
	ctx := context.Background()

	repo1, err := NewMemoryRepositoryWithPersistence(tmpPath)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	if err := repo1.Store(ctx, newRecord("r1")); err != nil {
		t.Fatalf("Failed to store data: %v", err)
	}
	if err := repo1.Store(ctx, newRecord("r2")); err != nil {
		t.Fatalf("Failed to store data: %v", err)
	}
	if err := repo1.Delete(ctx, "r2"); err != nil {
		t.Fatalf("Failed to delete data: %v", err)
	}

	repo2, err := NewMemoryRepositoryWithPersistence(tmpPath)
	if err != nil {
		t.Fatalf("Failed to create second repository: %v", err)
	}

	retrieved, err := repo2.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Failed to get data: %v", err)
	}
	if retrieved.Input != "048772607" || retrieved.Rev != 1 {
		t.Errorf("Unexpected record loaded from file: %+v", retrieved)
	}
	if _, err := repo2.Get(ctx, "r2"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected deleted record to stay deleted, got %v", err)
	}
}

func TestMemoryRepository_EmptyFile(t *testing.T) {
	tmpPath := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(tmpPath, nil, 0644); err != nil {
		t.Fatalf("Failed to create empty file: %v", err)
	}

	repo, err := NewMemoryRepositoryWithPersistence(tmpPath)
	if err != nil {
		t.Fatalf("Expected empty file to load, got %v", err)
	}
	records, _ := repo.List(context.Background())
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}

func TestNewMemoryRepositoryFromJsonString(t *testing.T) {
	jsonString := `[
		{"ID": "a", "Kind": "ZDB", "Input": "04877260-7", "Valid": true, "Rev": 1},
		{"ID": "a", "Kind": "ZDB", "Input": "04877260-6", "Valid": false, "Rev": 1}
	]`

	repo, err := NewMemoryRepositoryFromJsonString(jsonString)
	if err != nil {
		t.Fatalf("Failed to load JSON: %v", err)
	}
	got, err := repo.Get(context.Background(), "a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Input != "04877260-6" {
		t.Errorf("Expected last duplicate to win, got %q", got.Input)
	}

	if _, err := NewMemoryRepositoryFromJsonString("not json"); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}
