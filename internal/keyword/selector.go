package keyword

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"travel-trend-blogger/internal/metrics"
	"travel-trend-blogger/internal/model"
	"travel-trend-blogger/internal/seeds"
)

// Where a selected keyword came from.
const (
	SourceEvent    = "event seed"
	SourceMonthly  = "monthly seed"
	SourceFallback = "fallback"
)

// Source returns rising related queries for a seed phrase.
type Source interface {
	RisingQueries(ctx context.Context, seed string) ([]model.RisingQuery, error)
}

// Selection is the outcome of a keyword selection.
type Selection struct {
	Keyword string
	Source  string // SourceEvent, SourceMonthly or SourceFallback
	Seed    string // seed that produced the keyword; empty for fallback
}

// Selector picks the keyword for a run: the first rising query found for the
// month's event seeds, then its monthly seeds, else a random fallback.
type Selector struct {
	Source Source
	Tables seeds.Tables
	// Intn returns a number in [0, n). Defaults to math/rand.
	Intn func(n int) int
}

func NewSelector(src Source, tables seeds.Tables) *Selector {
	return &Selector{Source: src, Tables: tables, Intn: rand.IntN}
}

type seedGroup struct {
	source string
	seeds  []string
}

// Select never fails: trend errors are logged and the next seed is tried.
func (s *Selector) Select(ctx context.Context, month string) Selection {
	groups := []seedGroup{
		{source: SourceEvent, seeds: s.Tables.EventSeeds(month)},
		{source: SourceMonthly, seeds: s.Tables.MonthlySeeds(month)},
	}
	if s.Source != nil {
		for _, g := range groups {
			for _, seed := range g.seeds {
				rows, err := s.Source.RisingQueries(ctx, seed)
				if err != nil {
					metrics.TrendQueries.WithLabelValues("error").Inc()
					slog.Error("keyword: trend query failed", "seed", seed, "source", g.source, "err", err)
					continue
				}
				kw, ok := model.FirstQuery(rows)
				if !ok {
					metrics.TrendQueries.WithLabelValues("empty").Inc()
					continue
				}
				metrics.TrendQueries.WithLabelValues("hit").Inc()
				metrics.KeywordSelections.WithLabelValues(g.source).Inc()
				slog.Info("keyword: found trending keyword", "source", g.source, "seed", seed, "keyword", kw)
				return Selection{Keyword: kw, Source: g.source, Seed: seed}
			}
		}
	}

	list := s.Tables.Fallback(month)
	if len(list) == 0 {
		list = seeds.Default().Generic()
	}
	intn := s.Intn
	if intn == nil {
		intn = rand.IntN
	}
	choice := list[intn(len(list))]
	metrics.KeywordSelections.WithLabelValues(SourceFallback).Inc()
	slog.Warn("keyword: no trending data found, using seasonal fallback", "month", month, "keyword", choice)
	return Selection{Keyword: choice, Source: SourceFallback}
}
