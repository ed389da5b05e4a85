// Package main provides the s3sh binary entry point: a thin shell that
// turns process arguments into verb invocations and renders the result
// stream. All the interesting work happens in the grammar and action
// packages.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kestrel-labs/s3sh/grammar"
	"github.com/kestrel-labs/s3sh/s3api"
)

const appName = "s3sh"

var version = "0.1.0"

type rootFlags struct {
	region    string
	endpoint  string
	pathStyle bool
	strict    bool
	verbose   bool
}

func main() {
	grammar.LoadDefaults()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "A verb+noun shell for S3-compatible storage",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if flags.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	cmd.PersistentFlags().StringVar(&flags.region, "region", "", "AWS region")
	cmd.PersistentFlags().StringVar(&flags.endpoint, "endpoint", "", "custom S3 endpoint URL")
	cmd.PersistentFlags().BoolVar(&flags.pathStyle, "path-style", false, "use path-style addressing")
	cmd.PersistentFlags().BoolVar(&flags.strict, "strict", false, "require soft-required parameters up front")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	for _, symbol := range grammar.Symbols() {
		def, _ := grammar.Lookup(symbol)
		cmd.AddCommand(verbCmd(def, flags))
	}

	return cmd
}

// verbCmd builds one subcommand per registered verb. Trailing arguments
// of the form name=value are keywords, everything else is positional.
func verbCmd(def *grammar.Definition, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   def.Symbol() + " [NOUN...]",
		Short: def.Desc(),
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerb(cmd, def, args, flags)
		},
	}
}

func runVerb(cmd *cobra.Command, def *grammar.Definition, args []string, flags *rootFlags) error {
	positional, keywords := parseInvocation(args)

	var bindOpts []grammar.BindOption
	if flags.strict {
		bindOpts = append(bindOpts, grammar.Strict())
	}

	verb, err := def.Bind(invocationCtx{verb: def.Symbol()}, positional, keywords, bindOpts...)
	if err != nil {
		return err
	}

	opts := []s3api.Option{}
	if flags.region != "" {
		opts = append(opts, s3api.WithRegion(flags.region))
	}
	if flags.endpoint != "" {
		opts = append(opts, s3api.WithEndpoint(flags.endpoint))
	}
	if flags.pathStyle {
		opts = append(opts, s3api.WithForcePathStyle(true))
	}

	client, err := s3api.New(opts...)
	if err != nil {
		return err
	}

	stream, err := verb.Invoke(cmd.Context(), client.API())
	if err != nil {
		return err
	}
	return renderStream(cmd.OutOrStdout(), cmd.Context(), stream)
}
