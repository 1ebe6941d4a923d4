package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MatiasdeBuren/consorcio-console/internal/logging"
	"github.com/MatiasdeBuren/consorcio-console/internal/notify"
)

// FetchPending returns the current number of reservations awaiting approval.
type FetchPending func(ctx context.Context) (int, error)

// Poller keeps the pending-reservations badge fresh on a cron schedule while
// an admin session is active.
type Poller struct {
	schedule string
	fetch    FetchPending
	notifier notify.Notifier

	cron *cron.Cron

	mu    sync.Mutex
	count int
	seen  bool
}

func New(schedule string, fetch FetchPending, notifier notify.Notifier) *Poller {
	return &Poller{
		schedule: schedule,
		fetch:    fetch,
		notifier: notifier,
	}
}

// Start begins polling. The context bounds each individual fetch and, once
// cancelled, stops the scheduler.
func (p *Poller) Start(ctx context.Context) error {
	p.cron = cron.New()
	_, err := p.cron.AddFunc(p.schedule, func() {
		p.refresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid poll schedule %q: %w", p.schedule, err)
	}
	p.cron.Start()

	go func() {
		<-ctx.Done()
		p.Stop()
	}()
	return nil
}

// Stop halts the scheduler and waits for a running refresh to finish.
func (p *Poller) Stop() {
	if p.cron == nil {
		return
	}
	stopCtx := p.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
		logging.Logger.Warn("Timed out waiting for pending-reservations poll to stop")
	}
}

func (p *Poller) refresh(ctx context.Context) {
	count, err := p.fetch(ctx)
	if err != nil {
		logging.Logger.WithError(err).Warn("Pending-reservations poll failed")
		return
	}

	p.mu.Lock()
	prev, seen := p.count, p.seen
	p.count = count
	p.seen = true
	p.mu.Unlock()

	if p.notifier != nil && count > 0 && (!seen || count > prev) {
		p.notifier.Notify(notify.LevelInfo,
			fmt.Sprintf("Hay %d reservas pendientes de aprobación.", count))
	}
}

// Count returns the last fetched badge value.
func (p *Poller) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}
