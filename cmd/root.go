package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	logJSON  bool

	// logger carries diagnostics to stderr; results go to stdout.
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "sssolve",
	Short: "Recover Shamir secrets from threshold shares",
	Long: `sssolve: reconstructs the secret behind a set of Shamir shares.
Each test case names a threshold k and lists shares whose y values may be
written in any base from 2 to 62. The first k shares are combined with
Lagrange interpolation over a prime field (2^127 - 1 by default).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}

		if logJSON {
			logger = zerolog.New(cmd.ErrOrStderr())
		} else {
			logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true})
		}
		logger = logger.Level(level).With().Timestamp().Logger()
		return nil
	},
}

// Execute runs the root command. An interrupt cancels the command context so
// a batch stops scheduling further cases.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		os.Exit(1)
	}
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON lines instead of console text")
}
