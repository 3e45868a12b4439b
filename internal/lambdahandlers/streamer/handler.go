package streamer

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/kitodo/dlfcheck/internal/adapter/s3export"
	"github.com/kitodo/dlfcheck/internal/logger"
	"github.com/kitodo/dlfcheck/internal/service/applystream"
)

// Handler mirrors the check record table's stream into the S3 export
type Handler struct {
	streamerService *applystream.Service
	log             *slog.Logger
}

// NewHandler creates a new streamer handler with initialized dependencies
func NewHandler(ctx context.Context) (*Handler, error) {
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "streamer")
	logger.SetDefault(log)

	bucket := os.Getenv("DLFCHECK_S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("DLFCHECK_S3_BUCKET environment variable is required")
	}
	key := os.Getenv("DLFCHECK_S3_KEY")
	if key == "" {
		key = "records.json"
	}
	log.Info("Using S3 export", slog.String("bucket", bucket), slog.String("key", key))

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	view := s3export.New(s3.NewFromConfig(cfg), bucket, key)
	return NewHandlerWith(applystream.New(view), log), nil
}

// NewHandlerWith creates a handler around an existing service
func NewHandlerWith(service *applystream.Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{streamerService: service, log: log}
}

// Handle processes DynamoDB stream events
func (h *Handler) Handle(ctx context.Context, event events.DynamoDBEvent) error {
	err := h.streamerService.ProcessStreamBatch(ctx, event.Records)
	if err != nil {
		h.log.Error("Stream processing failed",
			slog.String("error", err.Error()),
			slog.Bool("notify", true))
	}
	return err
}
