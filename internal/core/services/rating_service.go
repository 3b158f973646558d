package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jupiterclapton/plaza/internal/core/domain"
	"github.com/jupiterclapton/plaza/internal/core/ports"
)

// Bornes d'une note
const (
	MinScore = 1
	MaxScore = 5
)

type RatingService struct {
	repo   ports.RatingRepository
	graph  ports.GraphStore
	cache  ports.Cache
	events ports.EventPublisher
}

func NewRatingService(repo ports.RatingRepository, graph ports.GraphStore, cache ports.Cache, events ports.EventPublisher) *RatingService {
	return &RatingService{repo: repo, graph: graph, cache: cache, events: events}
}

// Rate pose ou remplace la note : l'upsert graphe garantit une seule arête
// RATED par paire (user, store), un second appel écrase le score en place.
func (s *RatingService) Rate(ctx context.Context, userID, storeID int64, score int) error {
	if userID <= 0 || storeID <= 0 {
		return domain.ErrInvalidID
	}
	if score < MinScore || score > MaxScore {
		return fmt.Errorf("%w: score must be between %d and %d", domain.ErrInvalidInput, MinScore, MaxScore)
	}

	if err := s.repo.Upsert(ctx, userID, storeID, score); err != nil {
		return err
	}

	s.publish(ctx, domain.Event{Kind: domain.EventRatingChanged, UserID: userID, StoreID: storeID})
	return nil
}

func (s *RatingService) Remove(ctx context.Context, userID, storeID int64) error {
	if userID <= 0 || storeID <= 0 {
		return domain.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, userID, storeID); err != nil {
		return err
	}

	s.publish(ctx, domain.Event{Kind: domain.EventRatingChanged, UserID: userID, StoreID: storeID})
	return nil
}

// Summary : cache-aside sur store:{id}:rating_data (TTL côté adapter).
// Un cache indisponible dégrade en lecture graphe directe, jamais en erreur.
func (s *RatingService) Summary(ctx context.Context, storeID int64) (*domain.RatingSummary, error) {
	key := domain.KeyRatingData(storeID)

	var cached domain.RatingSummary
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		cached.Source = "cache"
		return &cached, nil
	}

	summary, err := s.repo.Summary(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, summary, ratingSummaryTTL); err != nil {
		slog.Warn("Rating summary cache write failed", "store_id", storeID, "error", err)
	}
	return summary, nil
}

// UserScore renvoie la note du user pour ce store, 5 par défaut si absente
// (pré-remplissage du widget, géré par la façade graphe)
func (s *RatingService) UserScore(ctx context.Context, userID, storeID int64) (int, error) {
	if userID <= 0 || storeID <= 0 {
		return 0, domain.ErrInvalidID
	}
	return s.graph.UserRating(ctx, userID, storeID)
}

func (s *RatingService) ForStore(ctx context.Context, storeID int64) ([]domain.StoreRating, error) {
	return s.repo.ForStore(ctx, storeID)
}

func (s *RatingService) publish(ctx context.Context, ev domain.Event) {
	if err := s.events.Publish(ctx, ev); err != nil {
		// la note est committée ; le classement rattrapera au prochain trigger
		slog.Error("❌ Event publish failed", "kind", ev.Kind, "error", err)
	}
}
