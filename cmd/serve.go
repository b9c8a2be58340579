package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/match-test/internal/catalog"
	"github.com/sells-group/match-test/internal/jobs"
	"github.com/sells-group/match-test/internal/progress"
	"github.com/sells-group/match-test/internal/resilience"
	"github.com/sells-group/match-test/internal/server"
	"github.com/sells-group/match-test/internal/session"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the match test HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		cat, err := catalog.Load()
		if err != nil {
			return err
		}
		st, err := openStore(ctx, cat)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		js := jobs.NewService(st, cat.KPIs, cat.Connections, jobs.Options{
			FetchDelay:   cfg.Jobs.FetchDelay(),
			FetchTimeout: cfg.Jobs.FetchTimeout(),
			Breaker: resilience.NewBreaker(resilience.BreakerConfig{
				Name:      "jobs",
				Threshold: cfg.Jobs.BreakerThreshold,
				Cooldown:  cfg.Jobs.BreakerCooldown(),
			}),
		})
		sessions := session.NewManager(cat, st)
		go pruneSessions(ctx, sessions, cfg.Session.MaxIdle())

		handler := server.New(cat, js, sessions, server.Options{
			BasePath:       cfg.Server.BasePath,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			RateLimit:      cfg.Server.RateLimit,
			RateBurst:      cfg.Server.RateBurst,
			JobsWait:       cfg.Server.JobsWait(),
			Progress: progress.Options{
				Total: time.Duration(cfg.Progress.TotalMs) * time.Millisecond,
				Step:  time.Duration(cfg.Progress.StepMs) * time.Millisecond,
				Tick:  time.Duration(cfg.Progress.TickMs) * time.Millisecond,
			},
		})

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx) //nolint:errcheck
		}()

		zap.L().Info("starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("base_path", cfg.Server.BasePath),
			zap.String("store", cfg.Store.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// pruneSessions drops idle sessions until ctx ends. A non-positive maxIdle
// keeps sessions forever.
func pruneSessions(ctx context.Context, m *session.Manager, maxIdle time.Duration) {
	if maxIdle <= 0 {
		return
	}
	t := time.NewTicker(maxIdle / 4)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Prune(maxIdle)
		}
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
