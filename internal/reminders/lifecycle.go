package reminders

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Snapshot is the part of a todo the reminder lifecycle looks at, as it was
// when the user action started.
type Snapshot struct {
	Text             string
	IsCompleted      bool
	ReminderInterval int
	ReminderID       *string
}

// Outcome is what a transition leaves behind. ReminderID is the value to
// store on the todo (nil means unset). Scheduled is a trigger the transition
// created and Cancelled one it removed, so both can be undone if the todo
// write fails. Warning carries a scheduler failure that did not stop the
// transition.
type Outcome struct {
	ReminderID *string
	Scheduled  *string
	Cancelled  *string
	Warning    error
}

// Manager keeps a todo's reminder id in step with the scheduler's triggers.
// A reminder id is stored only while the todo is open, has a positive
// interval and the last schedule call succeeded.
type Manager struct {
	scheduler Scheduler
	title     string
}

func NewManager(scheduler Scheduler, title string) *Manager {
	return &Manager{
		scheduler: scheduler,
		title:     title,
	}
}

func (m *Manager) Create(ctx context.Context, text string, intervalMinutes int) Outcome {
	return m.schedule(ctx, text, intervalMinutes)
}

// Edit cancels the reminder that was active when editing began and then
// schedules a fresh one if the todo is open and the interval asks for it. The
// interval of a completed todo is kept for a later Reopen. A todo must never
// own two live triggers, so cancel always comes first.
func (m *Manager) Edit(ctx context.Context, prior Snapshot, text string, intervalMinutes int) Outcome {
	cancelled, cancelErr := m.cancel(ctx, prior.ReminderID)
	if prior.IsCompleted {
		return Outcome{Cancelled: cancelled, Warning: cancelErr}
	}

	out := m.schedule(ctx, text, intervalMinutes)
	out.Cancelled = cancelled
	if out.Warning == nil {
		out.Warning = cancelErr
	}
	return out
}

// Complete drops the active reminder. The interval is left on the todo so a
// later Reopen can bring the reminder back.
func (m *Manager) Complete(ctx context.Context, snap Snapshot) Outcome {
	cancelled, err := m.cancel(ctx, snap.ReminderID)
	return Outcome{Cancelled: cancelled, Warning: err}
}

func (m *Manager) Reopen(ctx context.Context, snap Snapshot) Outcome {
	cancelled, cancelErr := m.cancel(ctx, snap.ReminderID)

	out := m.schedule(ctx, snap.Text, snap.ReminderInterval)
	out.Cancelled = cancelled
	if out.Warning == nil {
		out.Warning = cancelErr
	}
	return out
}

// Delete cancels the active reminder. Callers remove the todo afterwards.
func (m *Manager) Delete(ctx context.Context, snap Snapshot) Outcome {
	cancelled, err := m.cancel(ctx, snap.ReminderID)
	return Outcome{Cancelled: cancelled, Warning: err}
}

// Rollback undoes a transition whose todo write did not commit, so the
// scheduler matches the stored todo again. prior is the todo as stored. A
// trigger the transition created is cancelled, and one it cancelled is
// restored under its old id. Callers clear out.Cancelled when the stored todo
// no longer references that id.
func (m *Manager) Rollback(ctx context.Context, prior Snapshot, out Outcome) error {
	var errs []error

	if _, err := m.cancel(ctx, out.Scheduled); err != nil {
		errs = append(errs, err)
	}

	if out.Cancelled != nil && !prior.IsCompleted && prior.ReminderInterval > 0 {
		id := *out.Cancelled
		if err := m.scheduler.Restore(ctx, id, m.title, prior.Text, prior.ReminderInterval); err != nil {
			log.Printf("reminder: restore %s failed: %v", id, err)
			errs = append(errs, fmt.Errorf("%w: %v", ErrRestoreFailed, err))
		}
	}

	return errors.Join(errs...)
}

func (m *Manager) schedule(ctx context.Context, text string, intervalMinutes int) Outcome {
	if intervalMinutes <= 0 {
		return Outcome{}
	}

	id, err := m.scheduler.ScheduleRecurring(ctx, m.title, text, intervalMinutes)
	if err != nil {
		log.Printf("reminder: schedule every %d min failed: %v", intervalMinutes, err)
		return Outcome{Warning: fmt.Errorf("%w: %v", ErrScheduleFailed, err)}
	}

	return Outcome{ReminderID: &id, Scheduled: &id}
}

// cancel returns the id it removed, or nil when there was nothing to remove
// or the scheduler refused.
func (m *Manager) cancel(ctx context.Context, reminderID *string) (*string, error) {
	if reminderID == nil || *reminderID == "" {
		return nil, nil
	}

	id := *reminderID
	if err := m.scheduler.Cancel(ctx, id); err != nil {
		log.Printf("reminder: cancel %s failed: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrCancelFailed, err)
	}
	return &id, nil
}
