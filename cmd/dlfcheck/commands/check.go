package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/kitodo/dlfcheck/internal/identifier"
	"github.com/kitodo/dlfcheck/internal/presenter"
	"github.com/spf13/cobra"
)

var checkFlags PersistenceFlags

var checkCmd = &cobra.Command{
	Use:           "check <type> <id> [id...]",
	Short:         "Validate one or more identifiers",
	GroupID:       "check",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Validate identifiers of the German National Library by their check character.

Arguments:
  type  Identifier type (one of: PPN, IDN, PND, ZDB, SWD, GKD)
  id    One or more identifiers to validate

The command exits with status 1 if any identifier is invalid.

Example:
  dlfcheck check ppn 048772607
  dlfcheck check zdb 04877260-7 10000007-X`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChecks(cmd, args[0], args[1:])
	},
}

var ppnCmd = &cobra.Command{
	Use:           "ppn <id> [id...]",
	Short:         "Validate Pica Production Numbers",
	GroupID:       "check",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChecks(cmd, string(identifier.PPN), args)
	},
}

func runChecks(cmd *cobra.Command, typeName string, ids []string) error {
	ctx := context.Background()

	svc, err := newChecker(ctx, checkFlags)
	if err != nil {
		return err
	}

	invalid := 0
	for _, id := range ids {
		record, err := svc.CheckIdentifier(ctx, id, typeName)
		if errors.Is(err, identifier.ErrUnknownType) {
			cmd.SilenceUsage = false
			return UsageError{fmt.Errorf("invalid identifier type %q\n%s", typeName, identifier.ValidTypesText())}
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), presenter.Verdict(record))
		if !record.Valid {
			invalid++
		}
	}

	if invalid > 0 {
		return ExitWithCode(1, fmt.Errorf("%d of %d identifiers invalid", invalid, len(ids)))
	}
	return nil
}

func init() {
	addPersistenceFlags(checkCmd, &checkFlags)
	addPersistenceFlags(ppnCmd, &checkFlags)
}
