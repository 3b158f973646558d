package repository

import (
	"strings"
	"testing"

	"github.com/jupiterclapton/plaza/internal/core/domain"
)

func TestBoardMember_ScoreLivesOnlyInTheZset(t *testing.T) {
	member, err := encodeEntry(domain.LeaderboardEntry{
		ID: 1, Name: "Corner Shop", Followers: 3, AvgRating: 4.2, Score: 24,
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(member, "score") {
		t.Errorf("member must not duplicate the zset score: %s", member)
	}

	e, err := decodeEntry(member)
	if err != nil {
		t.Fatal(err)
	}
	if e.ID != 1 || e.Followers != 3 || e.AvgRating != 4.2 {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.Score != 0 {
		t.Errorf("decode must leave the score to the zset, got %v", e.Score)
	}
}

func TestDecodeEntry_RejectsCorruptMember(t *testing.T) {
	if _, err := decodeEntry("{not json"); err == nil {
		t.Error("expected error on corrupt member")
	}
}
