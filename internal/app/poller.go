package app

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/prlogs/internal/github"
	"github.com/five82/prlogs/internal/state"
)

const (
	// defaultRetryInterval is the first retry delay after a failed fetch when
	// automatic refresh is off.
	defaultRetryInterval = 5 * time.Second
	maxBackoff           = 30 * time.Second
)

// Loader fetches build logs in the background and publishes them to the
// store. It refreshes every interval (zero disables timed refresh), on
// Reload, and retries failed fetches with exponential backoff.
type Loader struct {
	store    *state.Store
	fetcher  github.Fetcher
	number   int
	interval time.Duration
	reload   chan struct{}
}

// NewLoader returns a loader for PR number served by fetcher.
func NewLoader(store *state.Store, fetcher github.Fetcher, number int, interval time.Duration) *Loader {
	return &Loader{
		store:    store,
		fetcher:  fetcher,
		number:   number,
		interval: interval,
		reload:   make(chan struct{}, 1),
	}
}

// Reload requests a fetch. Requests made while one is pending are merged.
func (l *Loader) Reload() {
	select {
	case l.reload <- struct{}{}:
	default:
	}
}

// Start runs the loader in a new goroutine and returns immediately.
func (l *Loader) Start(ctx context.Context) {
	go l.Run(ctx)
}

// Run fetches until ctx is cancelled.
func (l *Loader) Run(ctx context.Context) {
	failures := 0
	for {
		if err := l.refresh(ctx); err != nil {
			failures++
		} else {
			failures = 0
		}

		wait := l.interval
		if failures > 0 {
			base := l.interval
			if base <= 0 {
				base = defaultRetryInterval
			}
			wait = calculateBackoff(failures-1, base)
		}

		var (
			timer *time.Timer
			tick  <-chan time.Time
		)
		if wait > 0 {
			timer = time.NewTimer(wait)
			tick = timer.C
		}
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-tick:
		case <-l.reload:
			if timer != nil {
				timer.Stop()
			}
		}
	}
}

func (l *Loader) refresh(ctx context.Context) error {
	l.store.SetLoading(true)
	res, err := l.fetcher.FetchBuildLogs(ctx, l.number)
	if ctx.Err() != nil {
		l.store.SetLoading(false)
		return nil
	}
	if err != nil {
		l.store.Update(nil, err)
		log.Warn("build log fetch failed", "pr", l.number, "err", err)
		return err
	}
	l.store.Update(&res, nil)
	log.Debug("build logs updated", "pr", res.PR.Number, "jobs", len(res.Jobs))
	return nil
}

// calculateBackoff doubles base for every failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
