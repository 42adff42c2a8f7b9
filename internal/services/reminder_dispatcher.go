package services

import (
	"context"
	"log"
	"sync"
	"time"

	"todo-folders.com/todo-folders/internal/reminders"
)

// Notifier delivers a fired reminder to its user.
type Notifier interface {
	Notify(ctx context.Context, trigger reminders.Trigger) error
}

type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, trigger reminders.Trigger) error {
	log.Printf("notify %s: %s: %s", trigger.ID, trigger.Title, trigger.Body)
	return nil
}

// ReminderDispatcher polls the trigger table for due reminders and hands them
// to a fixed set of workers for delivery.
type ReminderDispatcher struct {
	queue        chan reminders.Trigger
	wg           sync.WaitGroup
	pollWG       sync.WaitGroup
	table        reminders.TriggerTable
	notifier     Notifier
	pollInterval time.Duration
	batchSize    int
	pollStop     chan struct{}
}

func NewReminderDispatcher(
	table reminders.TriggerTable,
	notifier Notifier,
	workers int,
	queueSize int,
	pollInterval time.Duration,
	batchSize int,
) *ReminderDispatcher {
	d := &ReminderDispatcher{
		queue:        make(chan reminders.Trigger, queueSize),
		table:        table,
		notifier:     notifier,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		pollStop:     make(chan struct{}),
	}

	d.pollWG.Add(1)
	go d.pollLoop()

	for i := 1; i <= workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	return d
}

func (d *ReminderDispatcher) worker(workerID int) {
	defer d.wg.Done()

	log.Printf("reminder worker %d started", workerID)

	for trigger := range d.queue {
		d.deliver(workerID, trigger)
	}

	log.Printf("reminder worker %d stopped", workerID)
}

func (d *ReminderDispatcher) deliver(workerID int, trigger reminders.Trigger) {
	if err := d.notifier.Notify(context.Background(), trigger); err != nil {
		log.Printf("reminder worker %d: failed to deliver %s: %v", workerID, trigger.ID, err)
	}
}

func (d *ReminderDispatcher) pollLoop() {
	defer d.pollWG.Done()

	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.pollOnce(context.Background(), time.Now().UTC())
		case <-d.pollStop:
			return
		}
	}
}

// pollOnce takes no more due triggers than the queue has room for, so a
// fired trigger is never dropped after the table has moved it forward.
func (d *ReminderDispatcher) pollOnce(ctx context.Context, now time.Time) int {
	free := cap(d.queue) - len(d.queue)
	if free <= 0 {
		log.Printf("reminder poll: queue full, skipping tick")
		return 0
	}

	limit := d.batchSize
	if free < limit {
		limit = free
	}

	due, err := d.table.Due(ctx, now, limit)
	if err != nil {
		log.Printf("reminder poll: failed to list due reminders: %v", err)
	}

	for _, trigger := range due {
		d.queue <- trigger
	}

	return len(due)
}

func (d *ReminderDispatcher) Shutdown(ctx context.Context) {
	close(d.pollStop)
	d.pollWG.Wait()
	close(d.queue)

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("reminder dispatcher shut down cleanly")
	case <-ctx.Done():
		log.Println("reminder dispatcher shutdown timed out")
	}
}
