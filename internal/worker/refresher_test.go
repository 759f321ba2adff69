package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/skyairrace/records-api/internal/logic"
)

type MockReloader struct {
	calls atomic.Int32
	err   error
}

func (m *MockReloader) Reload(ctx context.Context) (*logic.Dataset, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return logic.NewDataset(nil, nil, nil), nil
}

func TestRefresherReloadsOnInterval(t *testing.T) {
	reloader := &MockReloader{}
	r := NewRefresher(RefresherConfig{
		Reloader: reloader,
		Interval: 10 * time.Millisecond,
		Logger:   zap.NewNop(),
	})

	r.Start(context.Background())
	time.Sleep(55 * time.Millisecond)
	r.Stop()

	calls := reloader.calls.Load()
	if calls < 2 {
		t.Errorf("expected at least 2 refreshes, got %d", calls)
	}

	time.Sleep(30 * time.Millisecond)
	if after := reloader.calls.Load(); after != calls {
		t.Errorf("refresher kept running after Stop: %d -> %d", calls, after)
	}
}

func TestRefresherSurvivesFailures(t *testing.T) {
	reloader := &MockReloader{err: errors.New("upstream down")}
	r := NewRefresher(RefresherConfig{
		Reloader: reloader,
		Interval: 5 * time.Millisecond,
		Logger:   zap.NewNop(),
	})

	r.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	r.Stop()

	if reloader.calls.Load() < 2 {
		t.Errorf("refresher should keep trying after a failure, got %d calls", reloader.calls.Load())
	}
}

func TestStopWithoutStart(t *testing.T) {
	r := NewRefresher(RefresherConfig{Reloader: &MockReloader{}})
	r.Stop()
}
