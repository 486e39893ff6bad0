package worker

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"travel-trend-blogger/internal/ai"
	"travel-trend-blogger/internal/keyword"
	"travel-trend-blogger/internal/metrics"
	"travel-trend-blogger/internal/notify"
)

// SubjectPrefix labels every outgoing post.
const SubjectPrefix = "Weekly Travel Blog: "

// KeywordSelector picks the keyword for a month.
type KeywordSelector interface {
	Select(ctx context.Context, month string) keyword.Selection
}

// Notifier delivers a finished post.
type Notifier interface {
	Notify(ctx context.Context, subject, content string) (notify.Receipt, error)
}

// GeneratorFactory builds a generator from the credentials of one run.
type GeneratorFactory func(cfg ai.Config) ai.Generator

// Settings is the configuration handed to each run.
type Settings struct {
	OpenAI ai.Config
}

// Outcome describes what a run did.
type Outcome struct {
	RunID     string
	Month     string
	Selection keyword.Selection
	Subject   string
	Draft     ai.Draft
	Receipt   notify.Receipt
	NotifyErr error
	Duration  time.Duration
}

// BlogJob selects a keyword, drafts a post and emails it, strictly in that
// order. A run never fails: every step degrades and the run still ends with
// an email attempt and a logged result.
type BlogJob struct {
	Selector     KeywordSelector
	NewGenerator GeneratorFactory
	Notifier     Notifier
	Location     *time.Location // month is taken in this zone; nil means local
	Now          func() time.Time
}

func (j *BlogJob) Run(ctx context.Context, info TimerInfo, settings Settings) Outcome {
	start := time.Now()
	out := Outcome{RunID: uuid.NewString()}
	log := slog.With("run_id", out.RunID)
	metrics.RunsTotal.WithLabelValues(strconv.FormatBool(info.PastDue)).Inc()

	if info.PastDue {
		log.Info("blog-job: the timer is past due", "scheduled_at", info.ScheduledAt)
	}

	out.Month = j.now().Month().String()
	out.Selection = j.Selector.Select(ctx, out.Month)
	log.Info("blog-job: keyword selected", "month", out.Month, "keyword", out.Selection.Keyword, "source", out.Selection.Source)

	var gen ai.Generator
	if j.NewGenerator != nil {
		gen = j.NewGenerator(settings.OpenAI)
	}
	out.Draft = ai.NewDraft(ctx, gen, out.Selection.Keyword)
	metrics.Generations.WithLabelValues(metrics.Outcome(out.Draft.Err)).Inc()
	if !out.Draft.OK() {
		log.Error("blog-job: blog generation failed, sending error text", "keyword", out.Selection.Keyword, "err", out.Draft.Err)
	}

	out.Subject = Subject(out.Selection.Keyword)
	content := out.Draft.Text()
	out.Receipt, out.NotifyErr = j.Notifier.Notify(ctx, out.Subject, content)

	out.Duration = time.Since(start)
	metrics.RunDuration.Observe(out.Duration.Seconds())
	log.Info("blog-job: final blog post content", "subject", out.Subject, "content", content, "took", out.Duration)
	return out
}

func (j *BlogJob) now() time.Time {
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	loc := j.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

var titleCaser = cases.Title(language.English)

// Subject builds the email subject for a keyword.
func Subject(kw string) string {
	return SubjectPrefix + titleCaser.String(kw)
}
