package geo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/flamday/internal/logger"
	"github.com/julianstephens/flamday/internal/models"
)

// Options mirror the device geolocation watch options
type Options struct {
	HighAccuracy bool
	// MaximumAge is the oldest cached reading that is still accepted
	MaximumAge time.Duration
}

func DefaultOptions() Options {
	return Options{HighAccuracy: true, MaximumAge: 10 * time.Second}
}

// PollInterval is how often the source is read
func (o Options) PollInterval() time.Duration {
	if o.HighAccuracy {
		return time.Second
	}
	return 5 * time.Second
}

// Subscription is the handle for one continuous watch. Release must be
// called when the owner shuts down.
type Subscription struct {
	ID      string
	updates chan models.Position
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	once    sync.Once
	now     func() time.Time
}

// Updates delivers new positions, latest first. The channel is closed on Release.
func (s *Subscription) Updates() <-chan models.Position {
	return s.updates
}

// Release stops the watch and waits for it to exit. Safe to call more than once.
func (s *Subscription) Release() {
	s.once.Do(func() {
		s.cancel()
		s.wg.Wait()
		close(s.updates)
		logger.Debug("Geolocation watch released", "id", s.ID)
	})
}

// Watch subscribes to continuous readings from src until the subscription
// is released or ctx is canceled. Errors are logged, never delivered.
func Watch(ctx context.Context, src Source, opts Options) *Subscription {
	return watch(ctx, src, opts, time.Now)
}

func watch(ctx context.Context, src Source, opts Options, now func() time.Time) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		ID:      uuid.New().String(),
		updates: make(chan models.Position, 1),
		cancel:  cancel,
		now:     now,
	}

	logger.Debug("Geolocation watch started", "id", sub.ID, "source", src.Name(), "high_accuracy", opts.HighAccuracy)

	sub.wg.Add(1)
	go func() {
		defer sub.wg.Done()
		sub.run(ctx, src, opts)
	}()
	return sub
}

func (s *Subscription) run(ctx context.Context, src Source, opts Options) {
	ticker := time.NewTicker(opts.PollInterval())
	defer ticker.Stop()

	var lastErr string
	for {
		pos, err := src.Read(ctx)
		if err == nil && opts.MaximumAge > 0 && s.now().Sub(pos.Timestamp) > opts.MaximumAge {
			err = fmt.Errorf("%w: reading from %s", ErrStale, pos.Timestamp.Format(time.RFC3339))
		}

		switch {
		case err == nil:
			lastErr = ""
			s.publish(pos)
		case ctx.Err() != nil:
			return
		default:
			if err.Error() != lastErr {
				logger.Warn("Geolocation error", "source", src.Name(), "error", err)
				lastErr = err.Error()
			}
			if errors.Is(err, ErrUnavailable) {
				return
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// publish replaces any undelivered reading with pos
func (s *Subscription) publish(pos models.Position) {
	for {
		select {
		case s.updates <- pos:
			return
		default:
		}
		select {
		case <-s.updates:
		default:
		}
	}
}
