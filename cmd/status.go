package cmd

import (
	"context"
	"fmt"
	"time"

	"travel-trend-blogger/internal/storage"

	"github.com/spf13/cobra"
)

// statusCmd prints the persisted schedule status from Redis.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the last and next scheduled runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		rdb := storage.DialRedis(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			return fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
		}
		st, err := store.Load(ctx, scheduleName)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "schedule: %s (%s)\n", scheduleName, cfg.Schedule.Cron)
		fmt.Fprintf(w, "last:     %s\n", formatTime(st.Last))
		fmt.Fprintf(w, "next:     %s\n", formatTime(st.Next))
		if !st.Next.IsZero() && st.Next.Before(time.Now()) {
			fmt.Fprintln(w, "overdue:  yes, the next serve start runs it as past due")
		}
		return nil
	},
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.RFC3339)
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
