package exportbatch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/kitodo/dlfcheck/internal/adapter/s3export"
	"github.com/kitodo/dlfcheck/internal/logger"
	"github.com/kitodo/dlfcheck/internal/model"
	"github.com/kitodo/dlfcheck/internal/repository/dynamorepo"
)

// Exporter writes the contents of a repository somewhere durable
type Exporter interface {
	Save(ctx context.Context, repo model.RecordRepository) (int, error)
}

// Stats summarizes one scheduled run
type Stats struct {
	Exported int
	Pruned   int
	Errors   int
}

// Handler holds the dependencies for the scheduled export Lambda handler
type Handler struct {
	log       *slog.Logger
	repo      model.RecordRepository
	exporter  Exporter
	retention time.Duration
	now       func() time.Time
}

// NewHandler reads DYNAMODB_TABLE, DLFCHECK_S3_BUCKET, DLFCHECK_S3_KEY and
// DLFCHECK_RETENTION and connects to AWS
func NewHandler(ctx context.Context) (*Handler, error) {
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "exportbatch")
	logger.SetDefault(log)

	dynamoTable := os.Getenv("DYNAMODB_TABLE")
	if dynamoTable == "" {
		return nil, fmt.Errorf("DYNAMODB_TABLE environment variable is required")
	}
	bucket := os.Getenv("DLFCHECK_S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("DLFCHECK_S3_BUCKET environment variable is required")
	}
	key := os.Getenv("DLFCHECK_S3_KEY")
	if key == "" {
		key = "records.json"
	}

	var retention time.Duration
	if value := os.Getenv("DLFCHECK_RETENTION"); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("invalid DLFCHECK_RETENTION %q: %w", value, err)
		}
		retention = parsed
	}

	log.Info("Export configured",
		slog.String("table", dynamoTable),
		slog.String("bucket", bucket),
		slog.String("key", key),
		slog.Duration("retention", retention))

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	repo := dynamorepo.NewDynamoRepository(dynamodb.NewFromConfig(awsCfg), dynamoTable)
	exporter := s3export.New(s3.NewFromConfig(awsCfg), bucket, key)
	return NewHandlerWith(repo, exporter, retention, log), nil
}

// NewHandlerWith creates a handler from existing dependencies. A zero
// retention keeps every record.
func NewHandlerWith(repo model.RecordRepository, exporter Exporter, retention time.Duration, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		log:       log,
		repo:      repo,
		exporter:  exporter,
		retention: retention,
		now:       time.Now,
	}
}

// Handle processes a scheduled event: expired records are deleted, then the
// remaining records are exported
func (h *Handler) Handle(ctx context.Context, event map[string]interface{}) error {
	requestLogger := logger.WithLambda(h.log,
		os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		os.Getenv("AWS_LAMBDA_FUNCTION_VERSION"),
		"")

	requestLogger.Info("Scheduled Lambda triggered", slog.Any("event", event))

	stats, err := h.Run(ctx)
	if err != nil {
		requestLogger.Error("Export failed",
			slog.Bool("notify", true),
			slog.String("error", err.Error()))
		return err
	}

	requestLogger.Info("Export completed",
		slog.Int("records_exported", stats.Exported),
		slog.Int("records_pruned", stats.Pruned),
		slog.Int("errors", stats.Errors))
	return nil
}

// Run prunes and exports once
func (h *Handler) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	if h.retention > 0 {
		records, err := h.repo.List(ctx)
		if err != nil {
			return stats, fmt.Errorf("failed to list records: %w", err)
		}
		cutoff := h.now().Add(-h.retention)
		for _, record := range records {
			if !record.CheckTime.Before(cutoff) {
				continue
			}
			if err := h.repo.Delete(ctx, record.ID); err != nil {
				stats.Errors++
				h.log.Warn("Failed to delete expired record",
					slog.String("id", record.ID),
					slog.String("error", err.Error()))
				continue
			}
			stats.Pruned++
		}
	}

	exported, err := h.exporter.Save(ctx, h.repo)
	if err != nil {
		return stats, fmt.Errorf("failed to export records: %w", err)
	}
	stats.Exported = exported
	return stats, nil
}
