package main

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"

	htmlscan "github.com/crawlkit/htmlscan/internal"
	"github.com/crawlkit/htmlscan/internal/handler"
	"github.com/crawlkit/htmlscan/internal/printer"
	"github.com/crawlkit/htmlscan/internal/source"
	"github.com/spf13/cobra"
)

func newRootCmd(logger *slog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "htmlscan",
		Short:        "Tokenize HTML documents",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("encoding", "windows-1252", "encoding of non-ASCII bytes (WHATWG label, or utf-8)")
	rootCmd.PersistentFlags().Bool("no-entities", false, "leave character references undecoded")
	rootCmd.PersistentFlags().Bool("no-heuristics", false, "scan every tag and attribute name byte by byte")
	rootCmd.PersistentFlags().Bool("raw", false, "keep the raw markup of tags, comments and scripts")
	rootCmd.PersistentFlags().Int("jobs", runtime.GOMAXPROCS(0), "number of files scanned concurrently")

	tokensCmd := &cobra.Command{
		Use:   "tokens FILE...",
		Short: "Print the token stream as JSON lines",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFromFlags(cmd)
			if err != nil {
				return err
			}
			lines, _ := cmd.Flags().GetBool("lines")
			return scanFiles(cmd.Context(), logger, cmd.OutOrStdout(), args, cfg,
				func(w io.Writer, _ *source.Source, z *htmlscan.Scanner, h *handler.Handler) error {
					opts := printer.JSONOptions{}
					if lines {
						opts.Lines = h
					}
					return printer.PrintToJSON(w, z, opts)
				})
		},
	}
	tokensCmd.Flags().Bool("lines", false, "add line and column numbers to positions")

	linksCmd := &cobra.Command{
		Use:   "links FILE...",
		Short: "Print the URLs referenced by tags as JSON lines",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFromFlags(cmd)
			if err != nil {
				return err
			}
			pattern, _ := cmd.Flags().GetString("tag-pattern")
			re, err := printer.CompileTagPattern(pattern)
			if err != nil {
				return err
			}
			return scanFiles(cmd.Context(), logger, cmd.OutOrStdout(), args, cfg,
				func(w io.Writer, _ *source.Source, z *htmlscan.Scanner, _ *handler.Handler) error {
					return printer.PrintLinks(w, z, re)
				})
		},
	}
	linksCmd.Flags().String("tag-pattern", ".*", "only report tags whose name matches this case-insensitive pattern")

	textCmd := &cobra.Command{
		Use:   "text FILE...",
		Short: "Print the text content of documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFromFlags(cmd)
			if err != nil {
				return err
			}
			hash, _ := cmd.Flags().GetBool("hash")
			return scanFiles(cmd.Context(), logger, cmd.OutOrStdout(), args, cfg,
				func(w io.Writer, src *source.Source, z *htmlscan.Scanner, _ *handler.Handler) error {
					if !hash {
						return printer.PrintToText(w, z)
					}
					_, err := fmt.Fprintf(w, "%s  %s\n", z.Fingerprint(), src.Name)
					return err
				})
		},
	}
	textCmd.Flags().Bool("hash", false, "print a fingerprint of the text instead of the text")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	rootCmd.AddCommand(tokensCmd, linksCmd, textCmd, versionCmd)
	return rootCmd
}

type config struct {
	opts htmlscan.Options
	jobs int
}

// configFromFlags maps the persistent flags onto scanner options.
func configFromFlags(cmd *cobra.Command) (config, error) {
	opts := htmlscan.DefaultOptions()

	label, _ := cmd.Flags().GetString("encoding")
	enc, err := htmlscan.LookupEncoding(label)
	if err != nil {
		return config{}, err
	}
	opts.Encoding = enc

	noEntities, _ := cmd.Flags().GetBool("no-entities")
	opts.DecodeEntities = !noEntities
	noHeuristics, _ := cmd.Flags().GetBool("no-heuristics")
	opts.EnableHeuristics = !noHeuristics
	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		opts.KeepRawTags = true
		opts.ExtractBetweenTagsOnly = false
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	if jobs < 1 {
		return config{}, fmt.Errorf("--jobs must be at least 1, got %d", jobs)
	}
	return config{opts: opts, jobs: jobs}, nil
}
