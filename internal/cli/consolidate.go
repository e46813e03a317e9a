package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexanchor/lexanchor/internal/client"
	"github.com/lexanchor/lexanchor/internal/enact"
)

// NewConsolidateCommand creates the consolidate command.
func NewConsolidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consolidate <records.json>",
		Short: "Load passages from a JSON file and merge overlapping ones",
		Long: `Load a JSON file of provision records, resolve any records
that only name a citation path against the API or fixture, and merge
passages that cite the same provision or one of its ancestors. Prints
the merged passages, one per paragraph.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsolidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runConsolidate(opts *RootOptions, file string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading records file", err)
	}

	fetcher, cleanup, err := newFetcher(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	passages, err := client.ReadFromJSON(cmd.Context(), fetcher, data)
	if err != nil {
		formatter.Error("LOAD_FAILED", err.Error())
		return WrapExitError(ExitFailure, "loading records", err)
	}
	formatter.VerboseLog("loaded %d passages", len(passages))

	merged := enact.Consolidate(passages)

	if opts.Format == "json" {
		items := make([]map[string]any, 0, len(merged))
		for _, p := range merged {
			seq, err := p.TextSequence(true)
			if err != nil {
				return WrapExitError(ExitFailure, "rendering passage", err)
			}
			items = append(items, map[string]any{
				"node":     p.Node(),
				"selected": seq.String(),
			})
		}
		return formatter.Success(map[string]any{
			"loaded": len(passages),
			"merged": items,
		})
	}

	var out []string
	for _, p := range merged {
		seq, err := p.TextSequence(true)
		if err != nil {
			return WrapExitError(ExitFailure, "rendering passage", err)
		}
		out = append(out, fmt.Sprintf("%s\n%s", p.Node(), seq.String()))
	}
	return formatter.Success(strings.Join(out, "\n\n"))
}
