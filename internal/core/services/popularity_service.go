package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jupiterclapton/plaza/internal/core/domain"
	"github.com/jupiterclapton/plaza/internal/core/ports"
)

const (
	// TopBroadcastSize : taille du top diffusé en temps réel
	TopBroadcastSize = 3
	// graphQueryTimeout borne la requête d'agrégats : une requête qui pend
	// doit faire échouer le recompute, pas bloquer le pipeline.
	graphQueryTimeout = 10 * time.Second
)

// EventTopStores : nom de l'event broadcast côté front
const EventTopStores = "update_top_3"

type PopularityService struct {
	graph    ports.GraphStore
	board    ports.Leaderboard
	notifier ports.NotificationService
	strategy domain.ScoreStrategy
}

func NewPopularityService(graph ports.GraphStore, board ports.Leaderboard, notifier ports.NotificationService) *PopularityService {
	return &PopularityService{
		graph:    graph,
		board:    board,
		notifier: notifier,
		strategy: domain.ScoreBalanced, // la surface temps réel utilise la formule linéaire
	}
}

// Recompute : le re-rank TOTAL. Déclenché par toute mutation note/follow.
//
//  1. un seul snapshot d'agrégats pour TOUS les stores (pas de N+1, tout le
//     monde est scoré contre le même état) ;
//  2. score + tri (score desc, followers desc) ;
//  3. réécriture COMPLÈTE du leaderboard — un store tombé à zéro follower
//     doit disparaître, pas traîner avec un vieux score ;
//  4. broadcast du top 3.
//
// Deux recomputes concurrents peuvent se croiser : le dernier écrit gagne, et
// comme chacun relit l'état frais (jamais de delta), aucune mise à jour n'est
// structurellement perdue — au pire remplacée par une plus récente.
func (s *PopularityService) Recompute(ctx context.Context) error {
	queryCtx, cancel := context.WithTimeout(ctx, graphQueryTimeout)
	defer cancel()

	stats, err := s.graph.StorePopularityInputs(queryCtx)
	if err != nil {
		// on n'a rien touché : le leaderboard existant reste servi tel quel
		return fmt.Errorf("recompute aborted: %w", err)
	}

	entries := domain.Rank(stats, s.strategy)

	if err := s.board.ReplaceAll(ctx, entries); err != nil {
		// la mutation déclencheuse est DÉJÀ committée dans le graphe : pas de
		// rollback, la popularité rattrapera au prochain trigger
		return fmt.Errorf("recompute failed at cache write: %w", err)
	}

	top := entries
	if len(top) > TopBroadcastSize {
		top = top[:TopBroadcastSize]
	}
	s.notifier.Broadcast(EventTopStores, top)

	slog.Debug("✅ Re-rank complete", "stores", len(entries))
	return nil
}

// Top sert le leaderboard depuis le cache ; sur cache vide, retombe sur le
// graphe (cache-aside) et repeuple au passage.
func (s *PopularityService) Top(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	entries, err := s.board.TopN(ctx, n)
	if err == nil && len(entries) > 0 {
		return entries, nil
	}
	if err != nil {
		slog.Warn("Leaderboard read failed, falling back to graph", "error", err)
	}

	// fallthrough : le graphe est la source de vérité
	stats, err := s.graph.StorePopularityInputs(ctx)
	if err != nil {
		return nil, err
	}
	ranked := domain.Rank(stats, s.strategy)

	// repeuplement best-effort, un échec ici ne gâche pas la lecture
	if err := s.board.ReplaceAll(ctx, ranked); err != nil {
		slog.Warn("Leaderboard refill failed", "error", err)
	}

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// Featured : le classement alternatif (note au carré pondérée par le volume).
// Calculé à la volée depuis le même snapshot, jamais écrit dans top_stores.
func (s *PopularityService) Featured(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	stats, err := s.graph.StorePopularityInputs(ctx)
	if err != nil {
		return nil, err
	}
	ranked := domain.Rank(stats, domain.ScoreFeatured)
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}
