package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexanchor/lexanchor/internal/anchor"
	"github.com/lexanchor/lexanchor/internal/client"
	"github.com/lexanchor/lexanchor/internal/enact"
)

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		dateA string
		dateB string
		textA string
		textB string
	)

	cmd := &cobra.Command{
		Use:   "compare <citation-path-a> <citation-path-b>",
		Short: "Compare the selected text of two provisions",
		Long: `Compare two provisions (or selected passages of them) and
report whether their texts have the same meaning and whether either
one's passage implies the other's.

--text-a and --text-b narrow each side to a quoted phrase, in the
split-marker form "prefix|exact|suffix".`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(rootOpts, args[0], args[1], dateA, dateB, textA, textB, cmd)
		},
	}
	cmd.Flags().StringVar(&dateA, "date-a", "", "version date for the first provision (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dateB, "date-b", "", "version date for the second provision (YYYY-MM-DD)")
	cmd.Flags().StringVar(&textA, "text-a", "", "selection for the first provision (prefix|exact|suffix)")
	cmd.Flags().StringVar(&textB, "text-b", "", "selection for the second provision (prefix|exact|suffix)")
	return cmd
}

func runCompare(opts *RootOptions, pathA, pathB, dateA, dateB, textA, textB string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	fetcher, cleanup, err := newFetcher(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	load := func(path, date, text string) (*enact.Passage, error) {
		passage, err := client.ReadPassage(cmd.Context(), fetcher, path, date)
		if err != nil {
			return nil, err
		}
		if text != "" {
			if err := passage.Select(anchor.FromString(text)); err != nil {
				return nil, err
			}
		}
		return passage, nil
	}

	a, err := load(pathA, dateA, textA)
	if err != nil {
		formatter.Error("COMPARE_FAILED", err.Error())
		return WrapExitError(ExitFailure, "loading first provision", err)
	}
	b, err := load(pathB, dateB, textB)
	if err != nil {
		formatter.Error("COMPARE_FAILED", err.Error())
		return WrapExitError(ExitFailure, "loading second provision", err)
	}

	means, err := a.Means(b)
	if err != nil {
		return WrapExitError(ExitFailure, "comparing passages", err)
	}
	aImpliesB, err := a.Implies(b)
	if err != nil {
		return WrapExitError(ExitFailure, "comparing passages", err)
	}
	bImpliesA, err := b.Implies(a)
	if err != nil {
		return WrapExitError(ExitFailure, "comparing passages", err)
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]any{
			"a":           a.Node(),
			"b":           b.Node(),
			"means":       means,
			"a_implies_b": aImpliesB,
			"b_implies_a": bImpliesA,
		})
	}
	out := fmt.Sprintf("means: %t\na implies b: %t\nb implies a: %t", means, aImpliesB, bImpliesA)
	return formatter.Success(out)
}
