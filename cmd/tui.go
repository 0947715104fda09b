package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/trackit/internal/client"
	"github.com/simonvc/trackit/internal/logging"
	"github.com/simonvc/trackit/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var tuiLocal bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		// The screen owns stdout and stderr, so logs go to TRACKIT_LOG_FILE or nowhere.
		l, closer, err := logging.File(cfg.LogLevel, cfg.LogFile)
		if err != nil {
			return err
		}
		defer closer.Close()
		logger = l

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		g, ctx := errgroup.WithContext(ctx)

		apiURL := cfg.APIURL
		if tuiLocal {
			// Start embedded server in background
			apiURL, err = startLocalAPI(ctx, g)
			if err != nil {
				cancel()
				g.Wait()
				return err
			}
		}

		c := client.New(apiURL, client.WithLogger(logger))
		st, err := newTracker(c)
		if err != nil {
			return err
		}

		app := tui.NewApp(st, c, cfg.Currency)
		p := tea.NewProgram(app, tea.WithAltScreen())
		_, runErr := p.Run()

		cancel()
		if err := g.Wait(); err != nil && runErr == nil {
			runErr = err
		}
		return runErr
	},
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiLocal, "local", false, "Run against an embedded local API (TRACKIT_DB) instead of --server")
	rootCmd.AddCommand(tuiCmd)
}
