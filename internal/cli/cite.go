package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/lexanchor/lexanchor/internal/client"
)

// NewCiteCommand creates the cite command.
func NewCiteCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		date string
		csl  bool
	)

	cmd := &cobra.Command{
		Use:   "cite <citation-path>",
		Short: "Print the citation for a provision",
		Long: `Print a human-readable citation for a provision, or with
--csl the citation as a CSL JSON item.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCite(rootOpts, args[0], date, csl, cmd)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "version date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&csl, "csl", false, "emit the citation as CSL JSON")
	return cmd
}

func runCite(opts *RootOptions, path, date string, csl bool, cmd *cobra.Command) error {
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

	enactment, err := client.Read(cmd.Context(), fetcher, path, date)
	if err != nil {
		formatter.Error("FETCH_FAILED", err.Error())
		return WrapExitError(ExitFailure, "fetch failed", err)
	}

	if csl {
		raw, err := enactment.CSLJSON()
		if err != nil {
			formatter.Error("CITATION_FAILED", err.Error())
			return WrapExitError(ExitFailure, "building citation", err)
		}
		if opts.Format == "json" {
			var item any
			if err := json.Unmarshal(raw, &item); err != nil {
				return WrapExitError(ExitFailure, "decoding citation", err)
			}
			return formatter.Success(item)
		}
		return formatter.Success(string(raw))
	}

	citation, err := enactment.AsCitation()
	if err != nil {
		formatter.Error("CITATION_FAILED", err.Error())
		return WrapExitError(ExitFailure, "building citation", err)
	}
	if opts.Format == "json" {
		return formatter.Success(map[string]any{
			"node":     enactment.Node,
			"citation": citation.String(),
		})
	}
	return formatter.Success(citation.String())
}
