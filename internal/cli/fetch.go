package cli

import (
	"bytes"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/lexanchor/lexanchor/internal/client"
)

// newFetcher builds the Fetcher the flags ask for: a local fixture
// repository, or the live API client with optional cache. The returned
// cleanup function closes the cache when one was opened.
func newFetcher(opts *RootOptions) (client.Fetcher, func(), error) {
	if opts.Fixture != "" {
		repo, err := client.LoadRepository(opts.Fixture)
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "loading fixture", err)
		}
		return repo, func() {}, nil
	}

	var copts []client.Option
	cleanup := func() {}
	if opts.Endpoint != "" {
		copts = append(copts, client.WithEndpoint(opts.Endpoint))
	}
	if opts.CacheDB != "" {
		cache, err := client.OpenCache(opts.CacheDB)
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "opening cache", err)
		}
		copts = append(copts, client.WithCache(cache))
		cleanup = func() { cache.Close() }
	}
	return client.NewFromEnv(copts...), cleanup, nil
}

// NewFetchCommand creates the fetch command.
func NewFetchCommand(rootOpts *RootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "fetch <citation-path>",
		Short: "Fetch the raw provision record at a citation path",
		Long: `Fetch the raw JSON record for a provision, for example
"/us/const/amendment/IV" or "/us/usc/t17/s102/b". With --date, fetch
the version in effect on that day.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(rootOpts, args[0], date, cmd)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "version date (YYYY-MM-DD)")
	return cmd
}

func runFetch(opts *RootOptions, path, date string, cmd *cobra.Command) error {
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

	raw, err := fetcher.Fetch(cmd.Context(), path, date)
	if err != nil {
		formatter.Error("FETCH_FAILED", err.Error())
		return WrapExitError(ExitFailure, "fetch failed", err)
	}

	if opts.Format == "json" {
		var data any
		if err := json.Unmarshal(raw, &data); err != nil {
			return WrapExitError(ExitFailure, "decoding record", err)
		}
		return formatter.Success(data)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return WrapExitError(ExitFailure, "formatting record", err)
	}
	return formatter.Success(pretty.String())
}
