package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var kwMonth string

// keywordCmd prints the keyword a run would pick, without generating or sending.
var keywordCmd = &cobra.Command{
	Use:   "keyword",
	Short: "Select this month's trending travel keyword",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		month := time.Now().Month()
		if kwMonth != "" {
			m, err := parseMonth(kwMonth)
			if err != nil {
				return err
			}
			month = m
		} else if loc, err := cfg.Schedule.Location(); err == nil {
			month = time.Now().In(loc).Month()
		}

		sel, err := newSelector(cfg)
		if err != nil {
			return err
		}
		s := sel.Select(context.Background(), month.String())

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "month:   %s\n", month)
		fmt.Fprintf(w, "keyword: %s\n", s.Keyword)
		fmt.Fprintf(w, "source:  %s\n", s.Source)
		if s.Seed != "" {
			fmt.Fprintf(w, "seed:    %s\n", s.Seed)
		}
		return nil
	},
}

func init() {
	keywordCmd.Flags().StringVar(&kwMonth, "month", "", "month to select for (name or 1-12)")
	rootCmd.AddCommand(keywordCmd)
}
