package commands

import (
	"context"

	"github.com/kitodo/dlfcheck/internal/model"
	"github.com/kitodo/dlfcheck/internal/repository"
	"github.com/kitodo/dlfcheck/internal/service/checker"
	"github.com/spf13/cobra"
)

// PersistenceFlags holds flags related to persistence and data storage options
type PersistenceFlags struct {
	FilePath       string
	DynamoTable    string
	DynamoEndpoint string
}

// addPersistenceFlags adds common persistence-related flags to a command
func addPersistenceFlags(cmd *cobra.Command, flags *PersistenceFlags) {
	cmd.Flags().StringVarP(&flags.FilePath, "file", "f", "", "Path to JSON file for persistence")
	cmd.Flags().StringVarP(&flags.DynamoTable, "dynamodb-table", "t", "", "DynamoDB table name for persistence")
	cmd.Flags().StringVarP(&flags.DynamoEndpoint, "dynamodb-endpoint", "e", "", "DynamoDB endpoint URL (optional, uses AWS SDK default if not specified)")
}

// repositoryConfig combines the flags with the loaded configuration; flags win
func (f PersistenceFlags) repositoryConfig() repository.RepositoryConfig {
	rc := repository.RepositoryConfig{
		FilePath:       cfg.Storage.File,
		DynamoTable:    cfg.Storage.DynamoTable,
		DynamoEndpoint: cfg.Storage.DynamoEndpoint,
	}
	if f.FilePath != "" {
		rc.FilePath = f.FilePath
	}
	if f.DynamoTable != "" {
		rc.DynamoTable = f.DynamoTable
	}
	if f.DynamoEndpoint != "" {
		rc.DynamoEndpoint = f.DynamoEndpoint
	}
	return rc
}

func (f PersistenceFlags) openRepository(ctx context.Context) (model.RecordRepository, error) {
	return repository.NewRepository(ctx, f.repositoryConfig())
}

// newChecker builds a checker service backed by the repository selected by flags
func newChecker(ctx context.Context, flags PersistenceFlags) (*checker.Service, error) {
	repo, err := flags.openRepository(ctx)
	if err != nil {
		return nil, err
	}
	return checker.NewService(repo, checker.Options{
		CacheTTL:     cfg.Cache.TTL.Duration,
		CacheCleanup: cfg.Cache.Cleanup.Duration,
		Namespace:    cfg.URN.Namespace,
	}), nil
}
