package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type blockingWorker struct{ stopped chan struct{} }

func (w *blockingWorker) Start(ctx context.Context) error {
	<-ctx.Done()
	close(w.stopped)
	return nil
}

type failingWorker struct{}

func (failingWorker) Start(context.Context) error { return errors.New("listen tcp: address in use") }
func (failingWorker) Name() string                { return "metrics" }

func TestManagerStopsOnCancel(t *testing.T) {
	w := &blockingWorker{stopped: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewManager(w).Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("manager did not stop")
	}
	<-w.stopped
}

func TestManagerCancelsSiblingsOnFailure(t *testing.T) {
	w := &blockingWorker{stopped: make(chan struct{})}

	err := NewManager(w, failingWorker{}).Start(context.Background())

	assert.EqualError(t, err, "metrics: listen tcp: address in use")
	<-w.stopped
}
