package cli

import (
	"context"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mwaltz/sitesnap/pkg/buildinfo"
	"github.com/mwaltz/sitesnap/pkg/errors"
)

// Execute runs the sitesnap CLI and returns an error if the run fails.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the command context and reaches every source
// job through it.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newRootCmd builds the root command with all flags bound.
func newRootCmd() *cobra.Command {
	var (
		verbose bool
		opts    runOptions
	)

	root := &cobra.Command{
		Use:           "sitesnap",
		Short:         "sitesnap publishes snapshots of external service data",
		Long:          `sitesnap queries a set of external services (package repositories, community platforms, code hosting, coverage, localization, funding, and documentation) and writes their responses as a static JSON/SVG/PNG tree, ready to publish from a branch.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true, // main prints the error once
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			cmd.SetContext(charmlog.WithContext(cmd.Context(), logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSnapshot(cmd.Context(), opts)
			if errors.Is(err, errors.ErrCodeMissingCredential) {
				// An incomplete credential set is a usage problem, not a
				// runtime one; show the operator the flags.
				_ = cmd.Usage()
			}
			return err
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	flags := root.Flags()
	flags.StringVar(&opts.configPath, "config", "sitesnap.toml", "path to the TOML config file")
	flags.StringVar(&opts.output, "output", "", "output directory (overrides config)")
	flags.BoolVar(&opts.indent, "indent", false, "pretty-print JSON output with 4-space indentation")
	flags.BoolVar(&opts.sequential, "sequential", false, "run sources one at a time instead of in parallel")
	flags.StringVar(&opts.envFile, "env-file", ".env", "path to a dotenv file with credentials")

	opts.credentials = make(map[string]*string, len(credentialNames))
	for _, name := range credentialNames {
		opts.credentials[name] = flags.String(credFlagName(name), "", "value for "+name+" (overrides the environment)")
	}

	return root
}

// credFlagName derives the flag spelling from a credential's environment
// name, e.g. GH_AUTH_TOKEN -> gh-auth-token.
func credFlagName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}
