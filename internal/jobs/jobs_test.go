package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) RefreshGauges(context.Context) error {
	r.calls.Add(1)
	return r.err
}

func TestAddBalanceRefreshRunsImmediately(t *testing.T) {
	s := NewScheduler()
	r := &countingRefresher{}

	if err := s.AddBalanceRefresh(context.Background(), "@every 1h", r); err != nil {
		t.Fatalf("AddBalanceRefresh failed: %v", err)
	}
	if got := r.calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestAddBalanceRefreshInvalidSchedule(t *testing.T) {
	s := NewScheduler()
	r := &countingRefresher{}

	if err := s.AddBalanceRefresh(context.Background(), "whenever", r); err == nil {
		t.Fatal("expected schedule parse error")
	}
	if got := r.calls.Load(); got != 0 {
		t.Errorf("calls = %d, want 0", got)
	}
}

func TestRefreshErrorIsLogged(t *testing.T) {
	r := &countingRefresher{err: errors.New("db locked")}
	runRefresh(context.Background(), r)
	if got := r.calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestRefreshSkippedAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &countingRefresher{}
	runRefresh(ctx, r)
	if got := r.calls.Load(); got != 0 {
		t.Errorf("calls = %d, want 0", got)
	}
}

func TestScheduledRuns(t *testing.T) {
	s := NewScheduler()
	r := &countingRefresher{}

	if err := s.AddBalanceRefresh(context.Background(), "@every 1s", r); err != nil {
		t.Fatalf("AddBalanceRefresh failed: %v", err)
	}
	s.Start()
	defer s.Stop(context.Background())

	deadline := time.Now().Add(5 * time.Second)
	for r.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	if got := r.calls.Load(); got < 2 {
		t.Errorf("calls = %d, want at least 2", got)
	}
}
