package commands

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/kitodo/dlfcheck/internal/adapter/s3export"
	"github.com/spf13/cobra"
)

var exportFlags struct {
	PersistenceFlags
	Bucket string
	Key    string
	DryRun bool
}

var exportCmd = &cobra.Command{
	Use:           "export",
	Short:         "Publish stored check records to S3",
	GroupID:       "records",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Write every stored check record as one JSON document to an S3 object.

The bucket and key default to DLFCHECK_S3_BUCKET and DLFCHECK_S3_KEY or the
[storage] section of the configuration file.

Example:
  dlfcheck export --dynamodb-table dlfcheck-records --bucket my-bucket`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		bucket := cfg.Storage.S3Bucket
		if exportFlags.Bucket != "" {
			bucket = exportFlags.Bucket
		}
		key := cfg.Storage.S3Key
		if exportFlags.Key != "" {
			key = exportFlags.Key
		}
		if bucket == "" {
			cmd.SilenceUsage = false
			return UsageError{fmt.Errorf("no S3 bucket configured; use --bucket or DLFCHECK_S3_BUCKET")}
		}

		repo, err := exportFlags.openRepository(ctx)
		if err != nil {
			return err
		}

		if exportFlags.DryRun {
			records, err := repo.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list records: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Would export %d records to s3://%s/%s\n", len(records), bucket, key)
			return nil
		}

		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return fmt.Errorf("failed to load AWS config: %w", err)
		}
		exporter := s3export.New(s3.NewFromConfig(awsCfg), bucket, key)

		count, err := exporter.Save(ctx, repo)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to s3://%s/%s\n", count, bucket, key)
		return nil
	},
}

func init() {
	addPersistenceFlags(exportCmd, &exportFlags.PersistenceFlags)
	exportCmd.Flags().StringVarP(&exportFlags.Bucket, "bucket", "b", "", "S3 bucket name")
	exportCmd.Flags().StringVarP(&exportFlags.Key, "key", "k", "", "S3 object key")
	exportCmd.Flags().BoolVarP(&exportFlags.DryRun, "dry-run", "n", false, "Report what would be exported without uploading")
}
