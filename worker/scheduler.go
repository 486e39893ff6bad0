package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"travel-trend-blogger/internal/storage"
)

// TimerInfo describes the trigger that started a run.
type TimerInfo struct {
	ScheduledAt time.Time
	PastDue     bool // the trigger fired late or was missed while the process was down
}

// JobFunc is invoked once per trigger.
type JobFunc func(ctx context.Context, info TimerInfo)

// Scheduler fires Job on a cron schedule. Runs execute inline, so a slow run
// delays the next trigger instead of overlapping with it. The next expected
// trigger is persisted in Store; a trigger missed while the process was down
// is run once at startup and flagged as past due.
type Scheduler struct {
	ScheduleName string
	Spec         string
	Location     *time.Location
	Store        storage.StatusStore
	Grace        time.Duration // lateness after which a trigger counts as past due
	Job          JobFunc

	now func() time.Time
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseSchedule parses a five-field cron expression or a descriptor such as @weekly.
func ParseSchedule(spec string) (cron.Schedule, error) {
	s, err := cronParser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Name() string {
	return "scheduler:" + s.ScheduleName
}

func (s *Scheduler) Start(ctx context.Context) error {
	sched, err := ParseSchedule(s.Spec)
	if err != nil {
		return err
	}
	if s.Job == nil {
		return fmt.Errorf("scheduler %s: no job", s.ScheduleName)
	}
	if s.Store == nil {
		s.Store = storage.NewMemoryStore()
	}
	if s.Grace <= 0 {
		s.Grace = time.Minute
	}

	status, err := s.Store.Load(ctx, s.ScheduleName)
	if err != nil {
		slog.Warn("scheduler: failed to load status, assuming none", "schedule", s.ScheduleName, "err", err)
	}
	last := status.Last
	if due, ok := missedRun(status, s.clock()); ok {
		slog.Info("scheduler: trigger missed while down, running now", "schedule", s.ScheduleName, "due", due)
		s.fire(ctx, TimerInfo{ScheduledAt: due, PastDue: true})
		last = due
	}

	for {
		next := sched.Next(s.clock())
		s.save(ctx, storage.ScheduleStatus{Last: last, Next: next})
		slog.Info("scheduler: next run", "schedule", s.ScheduleName, "at", next)

		t := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
			s.fire(ctx, timerInfo(next, s.clock(), s.Grace))
			last = next
		}
	}
}

func (s *Scheduler) fire(ctx context.Context, info TimerInfo) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("scheduler: job panicked", "schedule", s.ScheduleName, "panic", r)
		}
	}()
	s.Job(ctx, info)
}

func (s *Scheduler) save(ctx context.Context, st storage.ScheduleStatus) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Store.Save(ctx, s.ScheduleName, st); err != nil {
		slog.Warn("scheduler: failed to save status", "schedule", s.ScheduleName, "err", err)
	}
}

func (s *Scheduler) clock() time.Time {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	if s.Location != nil {
		return now().In(s.Location)
	}
	return now()
}

// missedRun reports the stored trigger when it is already in the past.
func missedRun(st storage.ScheduleStatus, now time.Time) (time.Time, bool) {
	if st.Next.IsZero() || !st.Next.Before(now) {
		return time.Time{}, false
	}
	if !st.Last.IsZero() && !st.Last.Before(st.Next) {
		return time.Time{}, false
	}
	return st.Next, true
}

func timerInfo(due, now time.Time, grace time.Duration) TimerInfo {
	return TimerInfo{ScheduledAt: due, PastDue: now.Sub(due) > grace}
}
