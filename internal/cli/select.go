package cli

import (
	"github.com/spf13/cobra"

	"github.com/lexanchor/lexanchor/internal/anchor"
	"github.com/lexanchor/lexanchor/internal/client"
)

// NewSelectCommand creates the select command.
func NewSelectCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		date   string
		text   string
		exact  string
		prefix string
		suffix string
		start  int
		end    int
	)

	cmd := &cobra.Command{
		Use:   "select <citation-path>",
		Short: "Select a passage of a provision's text",
		Long: `Select part of a provision's text and print the selected
passage, with unselected stretches rendered as ellipses.

The selection can be a quoted phrase (--text uses the split-marker form
"prefix|exact|suffix"), separate --exact/--prefix/--suffix parts, or a
character range (--start/--end). Without any selection flags the whole
provision is selected.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sel anchor.Selection
			switch {
			case text != "":
				sel = anchor.FromString(text)
			case exact != "" || prefix != "" || suffix != "":
				sel = anchor.Quotes(anchor.Quote{Prefix: prefix, Exact: exact, Suffix: suffix})
			case cmd.Flags().Changed("start") || cmd.Flags().Changed("end"):
				if end == 0 {
					end = int(^uint(0) >> 1)
				}
				sel = anchor.Spans(anchor.Span{Start: start, End: end})
			default:
				sel = anchor.SelectAll()
			}
			return runSelect(rootOpts, args[0], date, sel, cmd)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "version date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&text, "text", "", "selection in split-marker form (prefix|exact|suffix)")
	cmd.Flags().StringVar(&exact, "exact", "", "exact phrase to select")
	cmd.Flags().StringVar(&prefix, "prefix", "", "text immediately before the selection")
	cmd.Flags().StringVar(&suffix, "suffix", "", "text immediately after the selection")
	cmd.Flags().IntVar(&start, "start", 0, "start offset of the selection")
	cmd.Flags().IntVar(&end, "end", 0, "end offset of the selection (0 means end of text)")
	return cmd
}

func runSelect(opts *RootOptions, path, date string, sel anchor.Selection, cmd *cobra.Command) error {
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

	passage, err := client.ReadPassage(cmd.Context(), fetcher, path, date)
	if err != nil {
		formatter.Error("FETCH_FAILED", err.Error())
		return WrapExitError(ExitFailure, "fetch failed", err)
	}
	if err := passage.Select(sel); err != nil {
		formatter.Error("SELECTION_FAILED", err.Error())
		return WrapExitError(ExitFailure, "selection failed", err)
	}

	seq, err := passage.TextSequence(true)
	if err != nil {
		return WrapExitError(ExitFailure, "rendering passage", err)
	}
	if opts.Format == "json" {
		return formatter.Success(map[string]any{
			"node":     passage.Node(),
			"selected": seq.String(),
			"spans":    passage.Selection().String(),
		})
	}
	return formatter.Success(seq.String())
}
