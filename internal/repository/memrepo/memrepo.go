package memrepo

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kitodo/dlfcheck/internal/model"
)

// MemoryRepository is an in-memory implementation of RecordRepository optionally backed by a JSON file
type MemoryRepository struct {
	mu       sync.RWMutex
	data     map[string]*model.CheckRecord
	filePath string
}

// NewMemoryRepository creates a new in-memory repository without persistence.
// Data is stored only in memory and will be lost when the process terminates.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data: make(map[string]*model.CheckRecord),
	}
}

// NewMemoryRepositoryWithPersistence creates a new in-memory repository backed by a JSON file.
// Existing data is loaded from the file, and every Store and Delete rewrites it.
func NewMemoryRepositoryWithPersistence(filePath string) (*MemoryRepository, error) {
	repo := &MemoryRepository{
		data:     make(map[string]*model.CheckRecord),
		filePath: filePath,
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, err
	}

	if err := repo.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return repo, nil
}

// NewMemoryRepositoryFromJsonString creates a repository initialized from a JSON
// array of CheckRecord objects. It is not backed by a file.
func NewMemoryRepositoryFromJsonString(jsonString string) (*MemoryRepository, error) {
	repo := NewMemoryRepository()
	if err := repo.loadFromReader(strings.NewReader(jsonString)); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MemoryRepository) loadFromReader(reader io.Reader) error {
	var records []*model.CheckRecord
	if err := json.NewDecoder(reader).Decode(&records); err != nil {
		return err
	}

	r.data = make(map[string]*model.CheckRecord)
	for _, record := range records {
		// DynamoDB would overwrite on a duplicate key, so keep the last one as well
		if _, exists := r.data[record.ID]; exists {
			slog.Warn("Duplicate check record in JSON data, keeping last occurrence",
				slog.String("id", record.ID))
		}
		r.data[record.ID] = record
	}

	return nil
}

// load reads the JSON file and populates the in-memory data
func (r *MemoryRepository) load() error {
	file, err := os.Open(r.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return err
	}
	if stat.Size() == 0 {
		return nil
	}

	return r.loadFromReader(file)
}

// save writes the in-memory data to the JSON file; a no-op without a file path
func (r *MemoryRepository) save() error {
	if r.filePath == "" {
		return nil
	}

	records := make([]*model.CheckRecord, 0, len(r.data))
	for _, record := range r.data {
		records = append(records, record)
	}
	model.SortRecords(records, string(model.SortByDefault))

	file, err := os.Create(r.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

// Store saves a check record and sets its revision to 1
func (r *MemoryRepository) Store(ctx context.Context, record *model.CheckRecord) error {
	if record == nil {
		return errors.New("check record cannot be nil")
	}
	if record.ID == "" {
		return errors.New("check record ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[record.ID]; exists {
		return model.ErrAlreadyExists
	}

	stored := *record
	stored.Rev = 1
	r.data[record.ID] = &stored
	record.Rev = stored.Rev
	return r.save()
}

// Get retrieves a check record by ID
func (r *MemoryRepository) Get(ctx context.Context, id string) (*model.CheckRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.data[id]
	if !exists {
		return nil, model.ErrNotFound
	}

	copied := *record
	return &copied, nil
}

// List retrieves all check records
func (r *MemoryRepository) List(ctx context.Context) ([]*model.CheckRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.CheckRecord, 0, len(r.data))
	for _, record := range r.data {
		copied := *record
		result = append(result, &copied)
	}

	return result, nil
}

// Delete removes a check record by ID
func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[id]; !exists {
		return model.ErrNotFound
	}

	delete(r.data, id)
	return r.save()
}
