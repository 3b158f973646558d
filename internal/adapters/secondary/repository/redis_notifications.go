package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jupiterclapton/plaza/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

// RedisNotificationStore : une liste Redis par destinataire, tête = plus récent,
// tronquée au cap à chaque insertion.
type RedisNotificationStore struct {
	client *redis.Client
}

func NewRedisNotificationStore(client *redis.Client) *RedisNotificationStore {
	return &RedisNotificationStore{client: client}
}

func (s *RedisNotificationStore) Push(ctx context.Context, userID int64, n domain.Notification) error {
	b, err := json.Marshal(n)
	if err != nil {
		return err
	}

	key := domain.KeyNotifications(userID)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, b)
	pipe.LTrim(ctx, key, 0, domain.NotificationCap-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("notification push: %w", err)
	}
	return nil
}

func (s *RedisNotificationStore) Recent(ctx context.Context, userID int64, limit int64) ([]domain.Notification, error) {
	raw, err := s.client.LRange(ctx, domain.KeyNotifications(userID), 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("notification range: %w", err)
	}

	out := make([]domain.Notification, 0, len(raw))
	for _, item := range raw {
		var n domain.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// MarkAllRead réécrit la liste entière : mêmes messages, même ordre, isRead=true.
// DEL + RPUSH dans un MULTI pour ne pas laisser une liste à moitié réécrite.
func (s *RedisNotificationStore) MarkAllRead(ctx context.Context, userID int64) error {
	key := domain.KeyNotifications(userID)

	raw, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("notification read-all: %w", err)
	}
	if len(raw) == 0 {
		return nil
	}

	updated := make([]any, 0, len(raw))
	for _, item := range raw {
		var n domain.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		n.IsRead = true
		b, err := json.Marshal(n)
		if err != nil {
			continue
		}
		updated = append(updated, b)
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	// LRange rend tête→queue ; RPush réinsère dans le même ordre
	pipe.RPush(ctx, key, updated...)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("notification mark-read: %w", err)
	}
	return nil
}

func (s *RedisNotificationStore) Clear(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, domain.KeyNotifications(userID)).Err()
}
