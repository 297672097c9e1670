// Package poller drives the fetch-validate-notify cycle and owns the
// notification dedup state.
package poller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"review_bot/internal/review"
)

// Fetcher is the interface for requesting review statuses from the API.
type Fetcher interface {
	Fetch(ctx context.Context, fromDate int64) (any, error)
}

// Sender is the interface for sending Telegram notifications.
type Sender interface {
	SendMessage(text string) error
}

// Poller periodically checks the review status and sends a notification for
// every observed change. Its dedup state is owned exclusively by the
// instance; cycles never run concurrently, so no locking is needed.
type Poller struct {
	fetcher  Fetcher
	sender   Sender
	log      *slog.Logger
	fromDate int64
	interval time.Duration

	lastUpdated *string // date_updated of the last notified homework
	lastErr     string  // last failure message pushed as a notification
}

// New creates a Poller. fromDate is the fixed start of the query window,
// computed once at startup.
func New(fetcher Fetcher, sender Sender, fromDate int64, interval time.Duration, log *slog.Logger) *Poller {
	return &Poller{
		fetcher:  fetcher,
		sender:   sender,
		log:      log,
		fromDate: fromDate,
		interval: interval,
	}
}

// Run executes cycles until ctx is cancelled, sleeping the full retry
// interval after every cycle regardless of its outcome.
func (p *Poller) Run(ctx context.Context) {
	for {
		p.runCycle(ctx)

		timer := time.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// runCycle performs one poll. Every error is caught here, at the cycle
// boundary: it is logged, pushed as a notification if its message differs
// from the previous one, and the poller moves on to the next cycle.
func (p *Poller) runCycle(ctx context.Context) {
	err := p.cycle(ctx)
	if err == nil {
		return
	}
	if ctx.Err() != nil {
		// Shutdown in flight, not a failure worth notifying.
		return
	}

	msg := fmt.Sprintf("Program failure: %v", err)
	p.log.Error("cycle failed", "error", err)
	if msg == p.lastErr {
		return
	}
	p.lastErr = msg
	if sendErr := p.sender.SendMessage(msg); sendErr != nil {
		p.log.Error("send failure notification", "error", sendErr)
	}
}

func (p *Poller) cycle(ctx context.Context) error {
	raw, err := p.fetcher.Fetch(ctx, p.fromDate)
	if err != nil {
		return err
	}

	resp, err := review.CheckResponse(raw)
	if err != nil {
		return err
	}

	if len(resp.Homeworks) == 0 {
		// Nothing tracked: clear the dedup state so a later reappearance
		// of a known timestamp notifies again.
		p.lastUpdated = nil
		p.lastErr = ""
		p.log.Debug("no homeworks in response")
		return nil
	}

	hw := resp.First()
	msg, err := review.ParseStatus(hw)
	if err != nil {
		return err
	}

	updated := hw.DateUpdated()
	if p.lastUpdated != nil && *p.lastUpdated == updated {
		p.log.Debug("status unchanged", "date_updated", updated)
		return nil
	}

	if err := p.sender.SendMessage(msg); err != nil {
		return err
	}
	p.lastUpdated = &updated
	p.log.Info("sent status notification", "date_updated", updated)
	return nil
}
