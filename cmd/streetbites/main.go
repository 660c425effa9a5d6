package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/streetbites/guide/client"
	"github.com/streetbites/guide/internal/config"
)

var (
	backendURL string
	debug      bool
	cfg        *config.Config
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "streetbites",
		Short:         "Chat with the Street Bites guide and review restaurants",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        cmd.ErrOrStderr(),
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})

			var err error
			if cfg, err = config.New(); err != nil {
				return err
			}
			if cmd.Flags().Changed("backend-url") {
				cfg.BackendURL = backendURL
			}
			if debug {
				cfg.Debug = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if cfg.Debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				log.Debug().Str("backend_url", cfg.BackendURL).Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&backendURL, "backend-url", "http://localhost:8000", "Base URL of the Street Bites backend (overrides GUIDE_BACKEND_URL)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newReviewsCmd())
	rootCmd.AddCommand(newReviewCmd())
	rootCmd.AddCommand(newSeedCmd())

	return rootCmd
}

func newClient() (*client.Client, error) {
	return client.New(cfg.BackendURL,
		client.WithHTTPTimeout(cfg.HTTPTimeout),
		client.WithDebugLogging(cfg.Debug),
	)
}
