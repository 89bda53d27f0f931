package geo

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/julianstephens/flamday/internal/models"
)

type scriptedSource struct {
	reads    atomic.Int32
	position models.Position
	err      error
}

func (s *scriptedSource) Name() string { return "scripted" }

func (s *scriptedSource) Read(context.Context) (models.Position, error) {
	s.reads.Add(1)
	return s.position, s.err
}

func receive(t *testing.T, sub *Subscription) (models.Position, bool) {
	t.Helper()
	select {
	case pos, ok := <-sub.Updates():
		return pos, ok
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a position")
		return models.Position{}, false
	}
}

func TestWatchDeliversPositions(t *testing.T) {
	src := FixedSource{Coord: dock}
	sub := Watch(context.Background(), src, DefaultOptions())
	defer sub.Release()

	if sub.ID == "" {
		t.Error("subscription should have an id")
	}

	pos, ok := receive(t, sub)
	if !ok {
		t.Fatal("updates channel closed unexpectedly")
	}
	if pos.Coordinate != dock {
		t.Errorf("got %v, want %v", pos.Coordinate, dock)
	}
}

func TestWatchDropsStaleReadings(t *testing.T) {
	now := time.Date(2026, 5, 14, 12, 0, 0, 0, time.UTC)
	src := &scriptedSource{position: models.Position{Coordinate: dock, Timestamp: now.Add(-11 * time.Second)}}

	sub := watch(context.Background(), src, DefaultOptions(), func() time.Time { return now })

	deadline := time.Now().Add(2 * time.Second)
	for src.reads.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	sub.Release()

	if src.reads.Load() == 0 {
		t.Fatal("source was never read")
	}
	if _, ok := <-sub.Updates(); ok {
		t.Error("stale reading should not be delivered")
	}
}

func TestWatchAcceptsCachedReadingWithinMaxAge(t *testing.T) {
	now := time.Date(2026, 5, 14, 12, 0, 0, 0, time.UTC)
	src := &scriptedSource{position: models.Position{Coordinate: visitorCenter, Timestamp: now.Add(-9 * time.Second)}}

	sub := watch(context.Background(), src, DefaultOptions(), func() time.Time { return now })
	defer sub.Release()

	pos, ok := receive(t, sub)
	if !ok || pos.Coordinate != visitorCenter {
		t.Errorf("expected the cached reading, got %v (%v)", pos, ok)
	}
}

func TestWatchStopsWhenUnavailable(t *testing.T) {
	src := &scriptedSource{err: ErrUnavailable}
	sub := Watch(context.Background(), src, Options{HighAccuracy: true})

	// The goroutine exits on its own after the first read
	done := make(chan struct{})
	go func() {
		sub.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watch kept polling an unavailable source")
	}
	if n := src.reads.Load(); n != 1 {
		t.Errorf("expected a single read, got %d", n)
	}

	sub.Release()
	if _, ok := <-sub.Updates(); ok {
		t.Error("no positions expected from an unavailable source")
	}
}

func TestWatchKeepsPollingAfterTransientError(t *testing.T) {
	src := &scriptedSource{err: errors.New("device busy")}
	sub := Watch(context.Background(), src, Options{HighAccuracy: true})
	defer sub.Release()

	deadline := time.Now().Add(3 * time.Second)
	for src.reads.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if src.reads.Load() < 2 {
		t.Error("watch should keep polling after a transient error")
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	sub := Watch(context.Background(), FixedSource{Coord: dock}, DefaultOptions())
	sub.Release()
	sub.Release()

	// Drain whatever was buffered; the channel must end closed
	for range sub.Updates() {
	}
}

func TestWatchStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sub := Watch(ctx, FixedSource{Coord: dock}, DefaultOptions())
	cancel()

	done := make(chan struct{})
	go func() {
		sub.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
	sub.Release()
}

func TestPollInterval(t *testing.T) {
	if got := (Options{HighAccuracy: true}).PollInterval(); got != time.Second {
		t.Errorf("high accuracy interval = %v, want 1s", got)
	}
	if got := (Options{}).PollInterval(); got != 5*time.Second {
		t.Errorf("low accuracy interval = %v, want 5s", got)
	}
}
