package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Fbari2002/side-quest/internal/state"
	"github.com/Fbari2002/side-quest/internal/web"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quest generation API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("host") {
			serveHost = cfg.Server.Host
		}
		if !cmd.Flags().Changed("port") {
			servePort = cfg.Server.Port
		}

		a, err := buildApp(cfg, logger)
		if err != nil {
			return err
		}

		srv := &web.Server{
			Quests: a.service,
			State:  a.state,
			Logger: logger,
			Addr:   fmt.Sprintf("%s:%d", serveHost, servePort),
			Online: a.online,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return srv.ListenAndServe(ctx)
		})
		g.Go(func() error {
			watchCircuit(ctx, a.state, time.Minute)
			return nil
		})
		return g.Wait()
	},
}

// watchCircuit logs breaker transitions until ctx ends.
func watchCircuit(ctx context.Context, st state.Store, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var wasOpen bool
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c := st.Circuit()
			open := c.Open(now)
			switch {
			case open && !wasOpen:
				logger.Warn("circuit open, serving offline quests",
					zap.Time("down_until", c.DownUntil),
					zap.Duration("remaining", c.Remaining(now)))
			case !open && wasOpen:
				logger.Info("circuit closed, upstream enabled again")
			}
			wasOpen = open
		}
	}
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
