package cmd

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/simonvc/trackit/internal/client"
	"github.com/simonvc/trackit/internal/server"
	"github.com/simonvc/trackit/internal/store"
	"golang.org/x/sync/errgroup"
)

// startLocalAPI runs the reference API on a loopback port under g until ctx is
// done, and returns its base URL once it answers /health.
func startLocalAPI(ctx context.Context, g *errgroup.Group) (string, error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return "", fmt.Errorf("open database: %w", err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		st.Close()
		return "", fmt.Errorf("listen: %w", err)
	}

	srv := server.New(st, ln.Addr().String(), logger)
	g.Go(func() error {
		return srv.Serve(ln)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		st.Close()
		return err
	})

	apiURL := "http://" + ln.Addr().String()

	// Wait for server to be ready
	c := client.New(apiURL)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	for {
		if err := c.Ping(pingCtx); err == nil {
			break
		}
		if pingCtx.Err() != nil {
			return "", fmt.Errorf("timeout waiting for embedded server")
		}
		time.Sleep(50 * time.Millisecond)
	}
	return apiURL, nil
}
