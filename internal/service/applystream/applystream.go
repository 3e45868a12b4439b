package applystream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/kitodo/dlfcheck/internal/adapter/dynamostream"
	"github.com/kitodo/dlfcheck/internal/model"
	"github.com/kitodo/dlfcheck/internal/repository/memrepo"
)

// View is the exported record document that stream batches are applied to
type View interface {
	Load(ctx context.Context) (*memrepo.MemoryRepository, error)
	Save(ctx context.Context, repo model.RecordRepository) (int, error)
}

// Service applies DynamoDB stream changes of the check record table to the exported view
type Service struct {
	view View
}

// New creates a new applystream service
func New(view View) *Service {
	return &Service{
		view: view,
	}
}

// ProcessStreamBatch loads the view, applies every stream record to it and
// saves it back. Records that fail to apply are logged and skipped.
//
// The read-modify-write is only safe with a single concurrent invocation
// (reservedConcurrentExecutions=1).
func (s *Service) ProcessStreamBatch(ctx context.Context, records []events.DynamoDBEventRecord) error {
	slog.Info("Processing batch from DynamoDB stream", slog.Int("record_count", len(records)))

	memRepo, err := s.loadRepository(ctx)
	if err != nil {
		return fmt.Errorf("failed to load repository: %w", err)
	}

	processedCount := 0
	for _, record := range records {
		if err := s.processRecord(ctx, memRepo, record); err != nil {
			slog.Error("Error processing record",
				slog.String("event_id", record.EventID),
				slog.String("error", err.Error()))
			continue
		}
		processedCount++
	}

	total, err := s.view.Save(ctx, memRepo)
	if err != nil {
		return fmt.Errorf("failed to save repository to S3: %w", err)
	}

	slog.Info("Successfully processed stream batch",
		slog.Int("processed", processedCount),
		slog.Int("total", len(records)),
		slog.Int("s3_record_count", total))

	return nil
}

// loadRepository falls back to an empty repository when the view cannot be read
func (s *Service) loadRepository(ctx context.Context) (*memrepo.MemoryRepository, error) {
	memRepo, err := s.view.Load(ctx)
	if err != nil {
		slog.Warn("Error loading repository from S3, starting empty", slog.String("error", err.Error()))
		return memrepo.NewMemoryRepository(), nil
	}
	return memRepo, nil
}

func (s *Service) processRecord(ctx context.Context, repo model.RecordRepository, record events.DynamoDBEventRecord) error {
	slog.Debug("Processing record",
		slog.String("event_id", record.EventID),
		slog.String("event_name", record.EventName))

	switch record.EventName {
	case "INSERT", "MODIFY":
		return s.handleInsertOrModify(ctx, repo, record)
	case "REMOVE":
		return s.handleRemove(ctx, repo, record)
	default:
		return fmt.Errorf("unknown event type: %s", record.EventName)
	}
}

// handleInsertOrModify replaces any earlier copy of the record
func (s *Service) handleInsertOrModify(ctx context.Context, repo model.RecordRepository, record events.DynamoDBEventRecord) error {
	checkRecord, err := dynamostream.ConvertToCheckRecord(record.Change.NewImage)
	if err != nil {
		return fmt.Errorf("failed to convert stream record: %w", err)
	}

	if err := repo.Delete(ctx, checkRecord.ID); err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to replace record: %w", err)
	}
	if err := repo.Store(ctx, checkRecord); err != nil {
		return fmt.Errorf("failed to store record: %w", err)
	}

	slog.Debug("Stored/Updated record",
		slog.String("id", checkRecord.ID),
		slog.String("kind", checkRecord.Kind))
	return nil
}

func (s *Service) handleRemove(ctx context.Context, repo model.RecordRepository, record events.DynamoDBEventRecord) error {
	id := dynamostream.ExtractStringAttribute(record.Change.Keys, "PK")
	if id == "" {
		return fmt.Errorf("missing required key: PK")
	}

	if err := repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("failed to delete record: %w", err)
		}
		slog.Debug("Record not found for deletion", slog.String("id", id))
		return nil
	}

	slog.Debug("Removed record", slog.String("id", id))
	return nil
}
