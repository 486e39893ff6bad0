package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"travel-trend-blogger/worker"

	"github.com/spf13/cobra"
)

var (
	genMonth  string
	genDryRun bool
)

// generateCmd runs the blog job once, right now.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the blog job once and email the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		job, err := newBlogJob(cfg, genDryRun)
		if err != nil {
			return err
		}
		if genMonth != "" {
			m, err := parseMonth(genMonth)
			if err != nil {
				return err
			}
			job.Now = monthClock(m)
		}
		settings, err := runSettings(cfg)
		if err != nil {
			return err
		}

		out := job.Run(context.Background(), worker.TimerInfo{ScheduledAt: time.Now()}, settings)

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "run:     %s\n", out.RunID)
		fmt.Fprintf(w, "keyword: %s (%s)\n", out.Selection.Keyword, out.Selection.Source)
		fmt.Fprintf(w, "subject: %s\n", out.Subject)
		if out.NotifyErr != nil {
			fmt.Fprintf(w, "email:   failed: %v\n", out.NotifyErr)
		} else {
			fmt.Fprintf(w, "email:   sent via %s (status %d)\n", out.Receipt.Provider, out.Receipt.StatusCode)
		}
		if genDryRun {
			fmt.Fprintln(w)
			fmt.Fprintln(w, out.Draft.Text())
		}
		return nil
	},
}

// parseMonth accepts a month name ("march", "Mar") or number (1-12).
func parseMonth(s string) (time.Month, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("invalid month %q", s)
		}
		return time.Month(n), nil
	}
	if len(s) >= 3 {
		for m := time.January; m <= time.December; m++ {
			if strings.HasPrefix(strings.ToLower(m.String()), s) {
				return m, nil
			}
		}
	}
	return 0, fmt.Errorf("invalid month %q", s)
}

// monthClock pins the job clock to mid-month of m this year, clear of
// time zone shifts at month boundaries.
func monthClock(m time.Month) func() time.Time {
	return func() time.Time {
		now := time.Now()
		return time.Date(now.Year(), m, 15, now.Hour(), now.Minute(), 0, 0, now.Location())
	}
}

func init() {
	generateCmd.Flags().StringVar(&genMonth, "month", "", "pretend the run happens in this month (name or 1-12)")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "log the email instead of sending it")
	rootCmd.AddCommand(generateCmd)
}
