package reminders

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"
)

const (
	triggerKeyPrefix = "reminder:"
	defaultDueKey    = "reminders:due"
)

// RedisScheduler stores triggers in Redis. Each trigger is a hash under
// reminder:<id>, and a sorted set scored by next fire time in unix
// milliseconds indexes them.
type RedisScheduler struct {
	client rueidis.Client
	dueKey string
	clock  Clock
}

func NewRedisScheduler(client rueidis.Client, dueKey string, clock Clock) *RedisScheduler {
	if dueKey == "" {
		dueKey = defaultDueKey
	}
	if clock == nil {
		clock = realClock{}
	}
	return &RedisScheduler{
		client: client,
		dueKey: dueKey,
		clock:  clock,
	}
}

func (r *RedisScheduler) ScheduleRecurring(ctx context.Context, title, body string, intervalMinutes int) (string, error) {
	id := uuid.NewString()
	if err := r.put(ctx, id, title, body, intervalMinutes); err != nil {
		return "", err
	}
	return id, nil
}

func (r *RedisScheduler) Restore(ctx context.Context, reminderID, title, body string, intervalMinutes int) error {
	return r.put(ctx, reminderID, title, body, intervalMinutes)
}

// put writes the trigger hash and its index entry in one MULTI/EXEC.
func (r *RedisScheduler) put(ctx context.Context, id, title, body string, intervalMinutes int) error {
	period := Period(intervalMinutes)
	fireAt := r.clock.Now().Add(period)

	results := r.client.DoMulti(ctx,
		r.client.B().Multi().Build(),
		r.client.B().Hset().Key(triggerKey(id)).FieldValue().
			FieldValue("title", title).
			FieldValue("body", body).
			FieldValue("period_seconds", strconv.FormatInt(int64(period/time.Second), 10)).
			Build(),
		r.client.B().Zadd().Key(r.dueKey).ScoreMember().ScoreMember(score(fireAt), id).Build(),
		r.client.B().Exec().Build(),
	)
	for _, res := range results {
		if err := res.Error(); err != nil {
			return fmt.Errorf("redis schedule %s: %w", id, err)
		}
	}

	return nil
}

func (r *RedisScheduler) Cancel(ctx context.Context, reminderID string) error {
	results := r.client.DoMulti(ctx,
		r.client.B().Del().Key(triggerKey(reminderID)).Build(),
		r.client.B().Zrem().Key(r.dueKey).Member(reminderID).Build(),
	)
	for _, res := range results {
		if err := res.Error(); err != nil && !rueidis.IsRedisNil(err) {
			return fmt.Errorf("redis cancel %s: %w", reminderID, err)
		}
	}
	return nil
}

func (r *RedisScheduler) Due(ctx context.Context, now time.Time, limit int) ([]Trigger, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	cmd := r.client.B().Zrangebyscore().Key(r.dueKey).
		Min("-inf").Max(strconv.FormatInt(now.UnixMilli(), 10)).
		Withscores().Limit(0, int64(limit)).Build()
	scores, err := r.client.Do(ctx, cmd).AsZScores()
	if err != nil {
		return nil, fmt.Errorf("redis due: %w", err)
	}

	due := make([]Trigger, 0, len(scores))
	for _, zs := range scores {
		t, ok, err := r.load(ctx, zs)
		if err != nil {
			return due, err
		}
		if !ok {
			// hash is gone, drop the dangling index entry
			_ = r.client.Do(ctx, r.client.B().Zrem().Key(r.dueKey).Member(zs.Member).Build()).Error()
			continue
		}

		next := nextFire(t.NextFireAt, now, t.Period)
		// XX keeps a trigger cancelled in the meantime from being re-added
		err = r.client.Do(ctx, r.client.B().Zadd().Key(r.dueKey).Xx().
			ScoreMember().ScoreMember(score(next), t.ID).Build()).Error()
		if err != nil {
			return due, fmt.Errorf("redis advance %s: %w", t.ID, err)
		}

		due = append(due, t)
	}

	return due, nil
}

func (r *RedisScheduler) Active(ctx context.Context) ([]Trigger, error) {
	cmd := r.client.B().Zrange().Key(r.dueKey).Min("0").Max("-1").Withscores().Build()
	scores, err := r.client.Do(ctx, cmd).AsZScores()
	if err != nil {
		return nil, fmt.Errorf("redis active: %w", err)
	}

	out := make([]Trigger, 0, len(scores))
	for _, zs := range scores {
		t, ok, err := r.load(ctx, zs)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *RedisScheduler) load(ctx context.Context, zs rueidis.ZScore) (Trigger, bool, error) {
	fields, err := r.client.Do(ctx, r.client.B().Hgetall().Key(triggerKey(zs.Member)).Build()).AsStrMap()
	if err != nil {
		return Trigger{}, false, fmt.Errorf("redis load %s: %w", zs.Member, err)
	}
	if len(fields) == 0 {
		return Trigger{}, false, nil
	}

	seconds, err := strconv.ParseInt(fields["period_seconds"], 10, 64)
	if err != nil {
		return Trigger{}, false, fmt.Errorf("redis load %s: invalid period: %w", zs.Member, err)
	}

	return Trigger{
		ID:         zs.Member,
		Title:      fields["title"],
		Body:       fields["body"],
		Period:     time.Duration(seconds) * time.Second,
		NextFireAt: time.UnixMilli(int64(zs.Score)).UTC(),
	}, true, nil
}

func triggerKey(id string) string {
	return triggerKeyPrefix + id
}

func score(t time.Time) float64 {
	return float64(t.UnixMilli())
}
