package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel-trend-blogger/internal/config"
	"travel-trend-blogger/internal/metrics"
	"travel-trend-blogger/internal/storage"
	"travel-trend-blogger/worker"

	"github.com/spf13/cobra"
)

const scheduleName = "weekly-blog"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the weekly blog schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		job, err := newBlogJob(cfg, false)
		if err != nil {
			return err
		}
		settings, err := runSettings(cfg)
		if err != nil {
			return err
		}
		grace, err := config.Duration(cfg.Schedule.Grace, time.Minute)
		if err != nil {
			return fmt.Errorf("invalid schedule.grace: %w", err)
		}
		loc, err := cfg.Schedule.Location()
		if err != nil {
			return fmt.Errorf("invalid schedule.timezone: %w", err)
		}

		var store storage.StatusStore = storage.NewMemoryStore()
		if cfg.Schedule.Monitor {
			rdb := storage.DialRedis(cfg.Redis)
			defer rdb.Close()
			store = storage.NewRedisStore(rdb)
		}

		sched := &worker.Scheduler{
			ScheduleName: scheduleName,
			Spec:         cfg.Schedule.Cron,
			Location:     loc,
			Store:        store,
			Grace:        grace,
			Job: func(ctx context.Context, info worker.TimerInfo) {
				job.Run(ctx, info, settings)
			},
		}
		ws := []worker.Worker{sched}
		if cfg.Metrics.Addr != "" {
			ws = append(ws, &metrics.Server{Addr: cfg.Metrics.Addr})
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			slog.Info("serve: received signal, shutting down", "signal", s.String())
			cancel()
		}()

		slog.Info("serve: starting", "cron", cfg.Schedule.Cron, "timezone", loc.String(), "monitor", cfg.Schedule.Monitor)
		return worker.NewManager(ws...).Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
