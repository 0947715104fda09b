package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/simonvc/trackit/internal/web"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	webPort     int
	webHost     string
	webLocal    bool
	webSessions string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the dashboard to browsers over a websocket terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		if webSessions == "" {
			webSessions = filepath.Join(filepath.Dir(cfg.SessionFile), "web")
		}
		if err := os.MkdirAll(webSessions, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		g, ctx := errgroup.WithContext(ctx)

		apiURL := cfg.APIURL
		if webLocal {
			var err error
			apiURL, err = startLocalAPI(ctx, g)
			if err != nil {
				stop()
				g.Wait()
				return err
			}
		}

		listenAddr := net.JoinHostPort(webHost, fmt.Sprintf("%d", webPort))
		fmt.Printf("trackit web UI: http://%s\n", listenAddr)

		webSrv := web.NewServer(listenAddr, apiURL, webSessions, logger)
		g.Go(webSrv.ListenAndServe)
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return webSrv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

func init() {
	webCmd.Flags().IntVar(&webPort, "port", 8833, "HTTP port for web terminal")
	webCmd.Flags().StringVar(&webHost, "host", "localhost", "HTTP host for web terminal")
	webCmd.Flags().BoolVar(&webLocal, "local", false, "Serve an embedded local API to the terminals")
	webCmd.Flags().StringVar(&webSessions, "sessions", "", "Directory for per-browser session files")
	rootCmd.AddCommand(webCmd)
}
