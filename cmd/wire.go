package cmd

import (
	"fmt"
	"time"

	"travel-trend-blogger/internal/ai"
	"travel-trend-blogger/internal/config"
	"travel-trend-blogger/internal/keyword"
	"travel-trend-blogger/internal/notify"
	"travel-trend-blogger/internal/seeds"
	"travel-trend-blogger/internal/trends"
	"travel-trend-blogger/worker"
)

// newSelector wires the Google Trends client to the seed tables.
func newSelector(cfg config.Config) (*keyword.Selector, error) {
	timeout, err := config.Duration(cfg.Trends.Timeout, 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid trends.timeout: %w", err)
	}
	tables, err := seeds.Load(cfg.Trends.SeedFile)
	if err != nil {
		return nil, err
	}
	src := trends.NewClient(trends.Options{
		BaseURL:   cfg.Trends.BaseURL,
		Language:  cfg.Trends.Language,
		TZOffset:  cfg.Trends.TZOffset,
		Geo:       cfg.Trends.Geo,
		Timeframe: cfg.Trends.Timeframe,
		Timeout:   timeout,
	})
	return keyword.NewSelector(src, tables), nil
}

// newNotifier builds the email notifier; dryRun logs instead of sending.
func newNotifier(cfg config.Config, dryRun bool) (*notify.Notifier, error) {
	provider := cfg.Email.Provider
	if dryRun {
		provider = "log"
	}
	sender, err := notify.NewSender(provider, cfg.Email.SendGridKey, cfg.Email.ResendAPIKey)
	if err != nil {
		return nil, err
	}
	timeout, err := config.Duration(cfg.Email.Timeout, 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid email.timeout: %w", err)
	}
	n := notify.New(sender, cfg.Email.From, cfg.Email.To)
	n.Timeout = timeout
	return n, nil
}

// runSettings maps the model credentials handed to each run.
func runSettings(cfg config.Config) (worker.Settings, error) {
	timeout, err := config.Duration(cfg.OpenAI.Timeout, 300*time.Second)
	if err != nil {
		return worker.Settings{}, fmt.Errorf("invalid openai.timeout: %w", err)
	}
	return worker.Settings{OpenAI: ai.Config{
		Provider:   cfg.OpenAI.Provider,
		Deployment: cfg.OpenAI.Deployment,
		APIKey:     cfg.OpenAI.APIKey,
		Endpoint:   cfg.OpenAI.Endpoint,
		APIVersion: cfg.OpenAI.APIVersion,
		Timeout:    timeout,
	}}, nil
}

// newBlogJob assembles the job from configuration.
func newBlogJob(cfg config.Config, dryRun bool) (*worker.BlogJob, error) {
	sel, err := newSelector(cfg)
	if err != nil {
		return nil, err
	}
	n, err := newNotifier(cfg, dryRun)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Schedule.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid schedule.timezone: %w", err)
	}
	return &worker.BlogJob{
		Selector:     sel,
		NewGenerator: func(c ai.Config) ai.Generator { return ai.NewOpenAI(c) },
		Notifier:     n,
		Location:     loc,
	}, nil
}
