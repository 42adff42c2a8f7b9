package reminders

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryScheduler keeps the trigger table in process memory. Triggers do not
// survive a restart.
type MemoryScheduler struct {
	mu       sync.Mutex
	clock    Clock
	triggers map[string]Trigger
}

func NewMemoryScheduler(clock Clock) *MemoryScheduler {
	if clock == nil {
		clock = realClock{}
	}
	return &MemoryScheduler{
		clock:    clock,
		triggers: make(map[string]Trigger),
	}
}

func (s *MemoryScheduler) ScheduleRecurring(ctx context.Context, title, body string, intervalMinutes int) (string, error) {
	id := uuid.NewString()
	if err := s.put(ctx, id, title, body, intervalMinutes); err != nil {
		return "", err
	}
	return id, nil
}

func (s *MemoryScheduler) Restore(ctx context.Context, reminderID, title, body string, intervalMinutes int) error {
	return s.put(ctx, reminderID, title, body, intervalMinutes)
}

func (s *MemoryScheduler) put(ctx context.Context, id, title, body string, intervalMinutes int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	period := Period(intervalMinutes)
	t := Trigger{
		ID:         id,
		Title:      title,
		Body:       body,
		Period:     period,
		NextFireAt: s.clock.Now().Add(period),
	}

	s.mu.Lock()
	s.triggers[id] = t
	s.mu.Unlock()

	return nil
}

func (s *MemoryScheduler) Cancel(ctx context.Context, reminderID string) error {
	s.mu.Lock()
	delete(s.triggers, reminderID)
	s.mu.Unlock()
	return nil
}

func (s *MemoryScheduler) Due(ctx context.Context, now time.Time, limit int) ([]Trigger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []Trigger
	for _, t := range s.triggers {
		if !t.NextFireAt.After(now) {
			due = append(due, t)
		}
	}
	sortByFireTime(due)
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	for _, t := range due {
		t.NextFireAt = nextFire(t.NextFireAt, now, t.Period)
		s.triggers[t.ID] = t
	}

	return due, nil
}

func (s *MemoryScheduler) Active(ctx context.Context) ([]Trigger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Trigger, 0, len(s.triggers))
	for _, t := range s.triggers {
		out = append(out, t)
	}
	sortByFireTime(out)
	return out, nil
}

func sortByFireTime(triggers []Trigger) {
	sort.Slice(triggers, func(i, j int) bool {
		if triggers[i].NextFireAt.Equal(triggers[j].NextFireAt) {
			return triggers[i].ID < triggers[j].ID
		}
		return triggers[i].NextFireAt.Before(triggers[j].NextFireAt)
	})
}
