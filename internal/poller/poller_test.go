package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatiasdeBuren/consorcio-console/internal/notify"
)

type captureNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (c *captureNotifier) Notify(_ notify.Level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, message)
}

func (c *captureNotifier) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}

func fixedFetch(count int) FetchPending {
	return func(context.Context) (int, error) { return count, nil }
}

func TestRefreshNotifiesOnFirstNonZeroCount(t *testing.T) {
	n := &captureNotifier{}
	p := New("@every 1m", fixedFetch(3), n)

	p.refresh(context.Background())

	assert.Equal(t, 3, p.Count())
	require.Len(t, n.all(), 1)
	assert.Equal(t, "Hay 3 reservas pendientes de aprobación.", n.all()[0])
}

func TestRefreshOnlyNotifiesOnGrowth(t *testing.T) {
	n := &captureNotifier{}
	p := New("@every 1m", fixedFetch(0), n)

	p.refresh(context.Background()) // 0: nothing to announce
	assert.Empty(t, n.all())

	p.fetch = fixedFetch(2)
	p.refresh(context.Background())
	p.refresh(context.Background()) // same count, stays quiet
	require.Len(t, n.all(), 1)

	p.fetch = fixedFetch(1) // shrinking stays quiet too
	p.refresh(context.Background())
	require.Len(t, n.all(), 1)

	p.fetch = fixedFetch(4)
	p.refresh(context.Background())
	require.Len(t, n.all(), 2)
	assert.Equal(t, "Hay 4 reservas pendientes de aprobación.", n.all()[1])
}

func TestRefreshKeepsLastCountOnError(t *testing.T) {
	n := &captureNotifier{}
	p := New("@every 1m", fixedFetch(2), n)
	p.refresh(context.Background())
	require.Equal(t, 2, p.Count())

	p.fetch = func(context.Context) (int, error) { return 0, errors.New("backend caído") }
	p.refresh(context.Background())

	assert.Equal(t, 2, p.Count(), "a failed poll must not zero the badge")
	assert.Len(t, n.all(), 1)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	p := New("not a schedule", fixedFetch(0), nil)
	err := p.Start(context.Background())
	assert.Error(t, err)
}

func TestStartPollsOnSchedule(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	fetch := func(context.Context) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return calls, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := New("@every 1s", fetch, nil)
	require.NoError(t, p.Start(ctx))

	assert.Eventually(t, func() bool {
		return p.Count() > 0
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
}
