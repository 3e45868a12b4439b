package s3export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/kitodo/dlfcheck/internal/model"
	"github.com/kitodo/dlfcheck/internal/repository/memrepo"
)

// ObjectAPI is the subset of the S3 client used by Exporter
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Exporter publishes check records as a JSON document in S3 and reads them back
type Exporter struct {
	client       ObjectAPI
	bucketName   string
	key          string
	contentType  string
	cacheControl string
}

// New creates a new Exporter
func New(client ObjectAPI, bucketName, key string) *Exporter {
	return &Exporter{
		client:       client,
		bucketName:   bucketName,
		key:          key,
		contentType:  "application/json",
		cacheControl: "max-age=60",
	}
}

// Load reads the exported document into a new MemoryRepository
func (e *Exporter) Load(ctx context.Context) (*memrepo.MemoryRepository, error) {
	result, err := e.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(e.bucketName),
		Key:    aws.String(e.key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}

	repo, err := memrepo.NewMemoryRepositoryFromJsonString(string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create repository from JSON: %w", err)
	}

	return repo, nil
}

// Save writes every record of repo to the configured object
func (e *Exporter) Save(ctx context.Context, repo model.RecordRepository) (int, error) {
	records, err := repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list records from repository: %w", err)
	}
	model.SortRecords(records, string(model.SortByDefault))

	jsonData, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal records: %w", err)
	}

	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(e.bucketName),
		Key:          aws.String(e.key),
		Body:         bytes.NewReader(jsonData),
		ContentType:  aws.String(e.contentType),
		CacheControl: aws.String(e.cacheControl),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upload to S3: %w", err)
	}

	slog.Info("Exported check records to S3",
		slog.String("bucket", e.bucketName),
		slog.String("key", e.key),
		slog.Int("record_count", len(records)))
	return len(records), nil
}
