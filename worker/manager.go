package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Worker is a long-running task. Start blocks until ctx is cancelled or the
// worker cannot continue.
type Worker interface {
	Start(ctx context.Context) error
}

// Named lets a worker report a readable name in logs.
type Named interface {
	Name() string
}

// Manager starts and supervises a set of workers. When one worker fails the
// others are cancelled so the process can exit and be restarted.
type Manager struct {
	workers []Worker
}

func NewManager(ws ...Worker) *Manager {
	return &Manager{workers: ws}
}

func (m *Manager) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, w := range m.workers {
		wg.Add(1)
		go func(w Worker) {
			defer wg.Done()
			name := workerName(w)
			slog.Info("manager: worker started", "worker", name)
			if err := w.Start(ctx); err != nil {
				slog.Error("manager: worker stopped with error", "worker", name, "err", err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
				cancel()
				return
			}
			slog.Info("manager: worker stopped", "worker", name)
		}(w)
	}
	wg.Wait()
	return errors.Join(errs...)
}

func workerName(w Worker) string {
	if n, ok := w.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", w)
}
