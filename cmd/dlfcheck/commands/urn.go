package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/kitodo/dlfcheck/internal/presenter"
	"github.com/spf13/cobra"
)

var urnFlags PersistenceFlags

var urnCmd = &cobra.Command{
	Use:           "urn <base> [id]",
	Short:         "Append the check digit to a URN",
	GroupID:       "check",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Compute the check digit of the URN formed by base and id and print the
complete URN. When only one argument is given and it does not start with
"urn:", it is treated as the id and the configured namespace is used as base.

Use "dlfcheck urn verify" to check complete URNs.

Examples:
  dlfcheck urn urn:nbn:de:gbv:089- 332175294
  dlfcheck urn urn:nbn:de:gbv:089-332175294
  dlfcheck urn bsz:14-qucosa-12345`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		base, id := args[0], ""
		if len(args) == 2 {
			id = args[1]
		} else if !strings.HasPrefix(strings.ToLower(base), "urn:") {
			base, id = "", args[0]
		}

		svc, err := newChecker(ctx, urnFlags)
		if err != nil {
			return err
		}
		record, err := svc.URN(ctx, base, id)
		if err != nil {
			return err
		}
		if !record.Valid {
			return ExitWithCode(1, fmt.Errorf("cannot compute check digit for %q: %s", record.Input, record.Reason))
		}

		fmt.Fprintln(cmd.OutOrStdout(), record.Output)
		return nil
	},
}

var urnVerifyCmd = &cobra.Command{
	Use:           "verify <urn> [urn...]",
	Short:         "Verify the check digit of complete URNs",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		svc, err := newChecker(ctx, urnFlags)
		if err != nil {
			return err
		}

		invalid := 0
		for _, full := range args {
			record, err := svc.VerifyURN(ctx, full)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), presenter.Verdict(record))
			if !record.Valid {
				invalid++
			}
		}
		if invalid > 0 {
			return ExitWithCode(1, fmt.Errorf("%d of %d URNs invalid", invalid, len(args)))
		}
		return nil
	},
}

func init() {
	addPersistenceFlags(urnCmd, &urnFlags)
	urnCmd.AddCommand(urnVerifyCmd)
	urnVerifyCmd.Flags().AddFlagSet(urnCmd.Flags())
}
