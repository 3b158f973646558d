package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jupiterclapton/plaza/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

// RedisLeaderboard stocke le classement complet dans le zset top_stores.
// Membre = JSON de l'entrée, score = popularityScore.
type RedisLeaderboard struct {
	client *redis.Client
}

func NewRedisLeaderboard(client *redis.Client) *RedisLeaderboard {
	return &RedisLeaderboard{client: client}
}

// ReplaceAll : DEL + ZADD dans un même MULTI/EXEC. Un lecteur voit soit
// l'ancienne génération complète, soit la nouvelle — jamais un mélange.
func (r *RedisLeaderboard) ReplaceAll(ctx context.Context, entries []domain.LeaderboardEntry) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, domain.KeyTopStores)

	for _, e := range entries {
		member, err := encodeEntry(e)
		if err != nil {
			return err
		}
		pipe.ZAdd(ctx, domain.KeyTopStores, redis.Z{Score: e.Score, Member: member})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("leaderboard replace: %w", err)
	}
	return nil
}

// TopN relit tout le zset puis re-trie côté client : Redis ordonne les
// égalités lexicalement sur le membre, nous voulons followers décroissants.
// La population de stores est petite, le full range est négligeable.
func (r *RedisLeaderboard) TopN(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	raw, err := r.client.ZRevRangeWithScores(ctx, domain.KeyTopStores, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard range: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(raw))
	for _, z := range raw {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		e, err := decodeEntry(member)
		if err != nil {
			continue // membre corrompu : on l'ignore, le prochain recompute l'écrase
		}
		e.Score = z.Score
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Followers > entries[j].Followers
	})

	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// Le membre n'embarque pas le score : il vit déjà dans le zset, le dupliquer
// créerait deux sources de vérité.
type boardMember struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Followers int64   `json:"followers"`
	AvgRating float64 `json:"avgRating"`
}

func encodeEntry(e domain.LeaderboardEntry) (string, error) {
	b, err := json.Marshal(boardMember{
		ID: e.ID, Name: e.Name, Followers: e.Followers, AvgRating: e.AvgRating,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeEntry(member string) (domain.LeaderboardEntry, error) {
	var m boardMember
	if err := json.Unmarshal([]byte(member), &m); err != nil {
		return domain.LeaderboardEntry{}, err
	}
	return domain.LeaderboardEntry{
		ID: m.ID, Name: m.Name, Followers: m.Followers, AvgRating: m.AvgRating,
	}, nil
}
