package commands

import (
	"fmt"
	"strings"

	"github.com/kitodo/dlfcheck/internal/textutil"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:     "clean <text...>",
	Short:   "Reduce text to a lowercase dash-separated slug",
	GroupID: "util",
	Long: `Lowercase the text, drop everything except letters, digits, underscores,
whitespace and dashes, and join the remaining words with single dashes.
Multiple arguments are joined with spaces first.

Example:
  dlfcheck clean "Digital Library: Viewer_2"   # digital-library-viewer-2`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), textutil.CleanString(strings.Join(args, " ")))
	},
}
