package domain

import "sort"

// RatingWeight : poids de la note moyenne dans la formule linéaire
const RatingWeight = 5.0

// LeaderboardEntry vit dans le cache (zset), jamais dans le graphe.
// Le leaderboard est reconstruit en entier à chaque recompute : pas de patch
// incrémental, sinon un store tombé du classement traînerait avec un vieux score.
type LeaderboardEntry struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Followers int64   `json:"followers"`
	AvgRating float64 `json:"avgRating"`
	Score     float64 `json:"score"`
}

// ScoreStrategy : les deux formules coexistent volontairement. L'appelant
// choisit explicitement sa surface, on ne devine pas une formule "officielle".
type ScoreStrategy func(s StoreStats) float64

// ScoreBalanced alimente le top 3 temps réel : mélange linéaire simple,
// la portée (followers) ET la qualité (note) comptent.
//
//	score = followers + avgRating * 5
func ScoreBalanced(s StoreStats) float64 {
	return float64(s.Followers) + s.AvgRating*RatingWeight
}

// ScoreFeatured alimente la vue "featured" : la note au carré donne la force
// au volume de qualité, les followers ne servent qu'à départager.
//
//	score = ratingCount * avgRating² + followers * 2
func ScoreFeatured(s StoreStats) float64 {
	return float64(s.RatingCount)*s.AvgRating*s.AvgRating + float64(s.Followers)*2.0
}

// Rank score et trie l'ensemble des stores : score décroissant, puis followers
// décroissants pour que les égalités restent déterministes (reproductible en test).
func Rank(stats []StoreStats, score ScoreStrategy) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(stats))
	for _, s := range stats {
		entries = append(entries, LeaderboardEntry{
			ID:        s.StoreID,
			Name:      s.Name,
			Followers: s.Followers,
			AvgRating: s.AvgRating,
			Score:     score(s),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Followers > entries[j].Followers
	})

	return entries
}
