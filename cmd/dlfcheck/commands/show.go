package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kitodo/dlfcheck/internal/model"
	"github.com/kitodo/dlfcheck/internal/presenter"
	"github.com/spf13/cobra"
)

var showFlags struct {
	PersistenceFlags
	Kind        string
	Input       string
	ValidOnly   bool
	InvalidOnly bool
	Format      string
	SortBy      string
}

var showCmd = &cobra.Command{
	Use:           "show",
	Short:         "Show stored check records",
	GroupID:       "records",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Display check records from the data store filtered by kind, input or outcome.

If no filters are specified, all records are displayed.

Examples:
  # Show all records
  dlfcheck show --file ./records.json

  # Show PPN checks only
  dlfcheck show --file ./records.json --kind ppn

  # Show failed checks, oldest first
  dlfcheck show --file ./records.json --invalid --sort check-time

  # Show records in compact format
  dlfcheck show --file ./records.json --format compact`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if showFlags.ValidOnly && showFlags.InvalidOnly {
			cmd.SilenceUsage = false
			return UsageError{fmt.Errorf("--valid and --invalid are mutually exclusive")}
		}

		svc, err := newChecker(ctx, showFlags.PersistenceFlags)
		if err != nil {
			return err
		}

		filter := model.RecordFilter{}
		if showFlags.Kind != "" {
			filter.Kinds = []string{showFlags.Kind}
		}
		if showFlags.Input != "" {
			filter.Inputs = []string{showFlags.Input}
		}
		if showFlags.ValidOnly || showFlags.InvalidOnly {
			valid := showFlags.ValidOnly
			filter.Valid = &valid
		}

		records, err := svc.Records(ctx, filter, showFlags.SortBy)
		if err != nil {
			return fmt.Errorf("failed to list records: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "\nNo records found matching the specified criteria.")
			return nil
		}

		now := time.Now()
		switch showFlags.Format {
		case "compact":
			displayRecordsCompact(out, records, now)
		default:
			displayRecordsDetailed(out, records, now)
		}

		fmt.Fprintf(out, "\nTotal records: %d\n", len(records))
		if !filter.IsEmpty() {
			fmt.Fprintf(out, "Filters applied:\n")
			if showFlags.Kind != "" {
				fmt.Fprintf(out, "  Kind: %s\n", showFlags.Kind)
			}
			if showFlags.Input != "" {
				fmt.Fprintf(out, "  Input: %s\n", showFlags.Input)
			}
			if filter.Valid != nil {
				fmt.Fprintf(out, "  Valid: %t\n", *filter.Valid)
			}
		}

		return nil
	},
}

// displayRecordsDetailed groups records by kind
func displayRecordsDetailed(out io.Writer, records []*model.CheckRecord, now time.Time) {
	fmt.Fprintln(out, "\n=== Check Records ===")

	grouped := model.GroupByKind(records)
	for _, kind := range sortedKinds(records) {
		group := grouped[kind]
		fmt.Fprintf(out, "\nKind: %s (%d)\n", kind, len(group))
		for _, record := range group {
			fmt.Fprintf(out, "  - %s (checked: %s, id: %s)\n",
				presenter.Verdict(record),
				presenter.FormatAge(record.CheckTime, now),
				record.ID)
		}
	}
}

func displayRecordsCompact(out io.Writer, records []*model.CheckRecord, now time.Time) {
	fmt.Fprintln(out, "\n=== Check Records (Compact) ===")
	fmt.Fprintf(out, "%-6s %-42s %-7s %-24s %s\n", "Kind", "Input", "Valid", "Reason", "Checked")
	fmt.Fprintln(out, strings.Repeat("-", 96))

	for _, record := range records {
		fmt.Fprintf(out, "%-6s %-42s %-7t %-24s %s\n",
			record.Kind,
			presenter.Truncate(record.Input, 40),
			record.Valid,
			presenter.Truncate(record.Reason, 22),
			presenter.FormatAgeCompact(record.CheckTime, now))
	}
}

// sortedKinds lists kinds in the order they first appear in records
func sortedKinds(records []*model.CheckRecord) []string {
	seen := make(map[string]bool)
	var kinds []string
	for _, record := range records {
		if !seen[record.Kind] {
			seen[record.Kind] = true
			kinds = append(kinds, record.Kind)
		}
	}
	return kinds
}

func init() {
	addPersistenceFlags(showCmd, &showFlags.PersistenceFlags)

	showCmd.Flags().StringVarP(&showFlags.Kind, "kind", "k", "", "Filter by kind (PPN, IDN, PND, ZDB, SWD, GKD or URN)")
	showCmd.Flags().StringVarP(&showFlags.Input, "input", "i", "", "Filter by checked input")
	showCmd.Flags().BoolVar(&showFlags.ValidOnly, "valid", false, "Show only successful checks")
	showCmd.Flags().BoolVar(&showFlags.InvalidOnly, "invalid", false, "Show only failed checks")

	showCmd.Flags().StringVar(&showFlags.Format, "format", "detailed", "Output format: detailed or compact")
	showCmd.Flags().StringVar(&showFlags.SortBy, "sort", "", "Sort by: kind, input or check-time (default newest first)")
}
