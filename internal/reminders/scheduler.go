package reminders

import (
	"context"
	"errors"
	"time"
)

// MinPeriod is the shortest repeat period a trigger can have.
const MinPeriod = 60 * time.Second

var (
	ErrScheduleFailed = errors.New("reminder could not be scheduled")
	ErrCancelFailed   = errors.New("reminder could not be cancelled")
	ErrRestoreFailed  = errors.New("reminder could not be restored")
)

// Scheduler registers and cancels recurring reminder triggers.
//
// Cancel must be idempotent: cancelling an id that was never scheduled or is
// already cancelled returns nil.
//
// Restore registers a trigger again under an id that was cancelled, starting a
// fresh period from now. It undoes a cancel whose todo write never committed.
type Scheduler interface {
	ScheduleRecurring(ctx context.Context, title, body string, intervalMinutes int) (string, error)
	Cancel(ctx context.Context, reminderID string) error
	Restore(ctx context.Context, reminderID, title, body string, intervalMinutes int) error
}

// TriggerTable is a Scheduler that also exposes its table of active triggers
// so they can be fired.
type TriggerTable interface {
	Scheduler

	// Due returns up to limit triggers whose fire time is not after now and
	// moves each of them one period forward.
	Due(ctx context.Context, now time.Time, limit int) ([]Trigger, error)

	Active(ctx context.Context) ([]Trigger, error)
}

type Trigger struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Body       string        `json:"body"`
	Period     time.Duration `json:"period"`
	NextFireAt time.Time     `json:"next_fire_at"`
}

// Period converts a reminder interval in minutes to the trigger repeat period.
// Anything shorter than a minute is raised to MinPeriod.
func Period(intervalMinutes int) time.Duration {
	p := time.Duration(intervalMinutes) * time.Minute
	if p < MinPeriod {
		return MinPeriod
	}
	return p
}

// nextFire returns the fire time after a trigger fired at firedAt. Missed
// periods are skipped rather than replayed.
func nextFire(firedAt, now time.Time, period time.Duration) time.Time {
	next := firedAt.Add(period)
	if !next.After(now) {
		next = now.Add(period)
	}
	return next
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }
