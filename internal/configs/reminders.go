package config

import (
	"log"

	"todo-folders.com/todo-folders/internal/reminders"
)

// NewTriggerTable builds the reminder scheduler picked by REMINDER_BACKEND.
// The returned func releases whatever connection it holds.
func NewTriggerTable(cfg Config) (reminders.TriggerTable, func()) {
	if cfg.ReminderBackend == ReminderBackendRedis {
		client := NewRedisClient(cfg.RedisAddr)
		log.Printf("reminders stored in redis at %s", cfg.RedisAddr)
		return reminders.NewRedisScheduler(client, cfg.RedisReminderKey, nil), client.Close
	}

	log.Println("reminders stored in memory, they will not survive a restart")
	return reminders.NewMemoryScheduler(nil), func() {}
}
