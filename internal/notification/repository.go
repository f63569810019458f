package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("notification not found")

const (
	listTTL = 30 * 24 * time.Hour
	// Per-user cap; old entries fall off the end.
	maxPerUser = 200
)

type Repository interface {
	Push(ctx context.Context, n Notification) error
	List(ctx context.Context, userID uint64, limit, offset int) ([]Notification, int64, error)
	MarkRead(ctx context.Context, userID uint64, id string) error
	MarkAllRead(ctx context.Context, userID uint64) error
	UnreadCount(ctx context.Context, userID uint64) (int64, error)
}

type repo struct{ rdb *redis.Client }

func NewRepository(rdb *redis.Client) Repository { return &repo{rdb: rdb} }

func key(userID uint64) string { return fmt.Sprintf("notifications:%d", userID) }

func (r *repo) Push(ctx context.Context, n Notification) error {
	raw, err := json.Marshal(n)
	if err != nil {
		return err
	}
	k := key(n.UserID)
	pipe := r.rdb.TxPipeline()
	pipe.LPush(ctx, k, raw)
	pipe.LTrim(ctx, k, 0, maxPerUser-1)
	pipe.Expire(ctx, k, listTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *repo) all(ctx context.Context, userID uint64) ([]Notification, error) {
	rows, err := r.rdb.LRange(ctx, key(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Notification, 0, len(rows))
	for _, raw := range rows {
		var n Notification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			continue
		}
		n.UserID = userID
		out = append(out, n)
	}
	return out, nil
}

func (r *repo) List(ctx context.Context, userID uint64, limit, offset int) ([]Notification, int64, error) {
	count, err := r.rdb.LLen(ctx, key(userID)).Result()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.rdb.LRange(ctx, key(userID), int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, 0, err
	}
	out := make([]Notification, 0, len(rows))
	for _, raw := range rows {
		var n Notification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			continue
		}
		n.UserID = userID
		out = append(out, n)
	}
	return out, count, nil
}

// rewrite replaces the whole list; small per-user caps keep this cheap.
func (r *repo) rewrite(ctx context.Context, userID uint64, items []Notification) error {
	k := key(userID)
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, k)
	for _, n := range items {
		raw, err := json.Marshal(n)
		if err != nil {
			return err
		}
		pipe.RPush(ctx, k, raw)
	}
	if len(items) > 0 {
		pipe.Expire(ctx, k, listTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *repo) MarkRead(ctx context.Context, userID uint64, id string) error {
	items, err := r.all(ctx, userID)
	if err != nil {
		return err
	}
	found := false
	for i := range items {
		if items[i].ID == id {
			items[i].Read = true
			found = true
		}
	}
	if !found {
		return ErrNotFound
	}
	return r.rewrite(ctx, userID, items)
}

func (r *repo) MarkAllRead(ctx context.Context, userID uint64) error {
	items, err := r.all(ctx, userID)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].Read = true
	}
	return r.rewrite(ctx, userID, items)
}

func (r *repo) UnreadCount(ctx context.Context, userID uint64) (int64, error) {
	items, err := r.all(ctx, userID)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, it := range items {
		if !it.Read {
			n++
		}
	}
	return n, nil
}
