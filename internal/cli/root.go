// Package cli implements the lexanchor command line interface: fetch
// provision records, select passages of their text, compare two
// passages, consolidate overlapping passages, and render citations.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Endpoint string // API base URL
	Fixture  string // path to a local fixture file used instead of the API
	CacheDB  string // path to a SQLite response cache
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the lexanchor CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "lexanchor",
		Short: "lexanchor - legislative text selection",
		Long:  "Select, compare, and consolidate passages of legislative text by citation path.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Endpoint, "endpoint", "", "legislation API base URL")
	cmd.PersistentFlags().StringVar(&opts.Fixture, "fixture", "", "serve records from a local fixture file instead of the API")
	cmd.PersistentFlags().StringVar(&opts.CacheDB, "cache", "", "path to a SQLite response cache")

	// Add subcommands
	cmd.AddCommand(NewFetchCommand(opts))
	cmd.AddCommand(NewSelectCommand(opts))
	cmd.AddCommand(NewCompareCommand(opts))
	cmd.AddCommand(NewConsolidateCommand(opts))
	cmd.AddCommand(NewCiteCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
