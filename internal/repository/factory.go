package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/kitodo/dlfcheck/internal/model"
	"github.com/kitodo/dlfcheck/internal/repository/dynamorepo"
	"github.com/kitodo/dlfcheck/internal/repository/memrepo"
)

// RepositoryConfig holds configuration for creating a repository
type RepositoryConfig struct {
	// FilePath for JSON file persistence
	FilePath string

	// DynamoTable is the DynamoDB table name for persistence; it takes precedence over FilePath
	DynamoTable string

	// DynamoEndpoint is an optional custom DynamoDB endpoint URL
	DynamoEndpoint string
}

// NewRepository creates a RecordRepository based on the provided configuration.
// DynamoDB is used when a table is configured, a JSON file when a path is
// configured, and a plain in-memory repository otherwise.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (model.RecordRepository, error) {
	if cfg.DynamoTable != "" {
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		var client *dynamodb.Client
		if cfg.DynamoEndpoint != "" {
			client = dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
				o.BaseEndpoint = &cfg.DynamoEndpoint
			})
			slog.Info("Using DynamoDB endpoint", slog.String("endpoint", cfg.DynamoEndpoint))
		} else {
			client = dynamodb.NewFromConfig(awsCfg)
		}

		slog.Info("Using DynamoDB table", slog.String("table", cfg.DynamoTable))
		return dynamorepo.NewDynamoRepository(client, cfg.DynamoTable), nil
	}

	if cfg.FilePath != "" {
		memRepo, err := memrepo.NewMemoryRepositoryWithPersistence(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create repository: %w", err)
		}
		slog.Info("Using JSON persistence", slog.String("file", cfg.FilePath))
		return memRepo, nil
	}

	slog.Debug("Using in-memory repository")
	return memrepo.NewMemoryRepository(), nil
}
