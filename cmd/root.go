package cmd

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/simonvc/trackit/internal/client"
	"github.com/simonvc/trackit/internal/config"
	"github.com/simonvc/trackit/internal/logging"
	"github.com/simonvc/trackit/internal/session"
	"github.com/simonvc/trackit/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	flagServer   string
	flagSession  string
	flagLogLevel string

	cfg    *config.Config
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "trackit",
	Short: "Personal budget tracker",
	Long:  "Record income and expenses against a remote budget API and see totals, a category breakdown and the running balance.",

	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if cmd.Flags().Changed("server") {
			cfg.APIURL = flagServer
		}
		if cmd.Flags().Changed("session") {
			cfg.SessionFile = flagSession
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = flagLogLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		l, err := logging.Console(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", config.DefaultAPIURL, "API base URL (env TRACKIT_API_URL)")
	rootCmd.PersistentFlags().StringVar(&flagSession, "session", "", "Session token file (env TRACKIT_SESSION_FILE)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (env TRACKIT_LOG_LEVEL)")
}

func Execute() error {
	return rootCmd.Execute()
}

func newClient() *client.Client {
	return client.New(cfg.APIURL, client.WithLogger(logger))
}

func newTracker(c *client.Client) (*tracker.Store, error) {
	sess, err := session.Load(cfg.SessionFile)
	if err != nil {
		return nil, err
	}
	return tracker.New(c, sess, logger), nil
}

// loginHint points the user at the login command when the session gate refuses.
func loginHint(err error) error {
	if errors.Is(err, session.ErrLoginRequired) {
		return fmt.Errorf("not logged in, run \"trackit login\" first")
	}
	return err
}
