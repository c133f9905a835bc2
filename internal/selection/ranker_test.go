package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stonjarli/backend/internal/contracts"
	"github.com/stonjarli/backend/pkg/logger"
)

func TestRankSortsDescendingAndCaps(t *testing.T) {
	r := NewRanker(Config{SortBy: contracts.SortByPctChange, MaxCandidates: 3}, logger.NewNop())

	candidates := []contracts.Candidate{
		{Symbol: "A", MomentumPct: 0.02},
		{Symbol: "B", MomentumPct: 0.09},
		{Symbol: "C", MomentumPct: 0.05},
		{Symbol: "D", MomentumPct: 0.07},
		{Symbol: "E", MomentumPct: 0.01},
	}

	ranked := r.Rank(candidates)

	assert.Len(t, ranked, 3)
	assert.Equal(t, "B", ranked[0].Symbol)
	assert.Equal(t, "D", ranked[1].Symbol)
	assert.Equal(t, "C", ranked[2].Symbol)
}

func TestRankIsStableOnTies(t *testing.T) {
	r := NewRanker(Config{SortBy: contracts.SortByPctChange, MaxCandidates: 5}, logger.NewNop())

	candidates := []contracts.Candidate{
		{Symbol: "FIRST", MomentumPct: 0.05},
		{Symbol: "SECOND", MomentumPct: 0.05},
		{Symbol: "THIRD", MomentumPct: 0.05},
	}

	ranked := r.Rank(candidates)

	assert.Equal(t, []string{"FIRST", "SECOND", "THIRD"},
		[]string{ranked[0].Symbol, ranked[1].Symbol, ranked[2].Symbol})
}

func TestRankBySurpriseBreaksTiesWithMomentum(t *testing.T) {
	r := NewRanker(Config{SortBy: contracts.SortBySurpriseRatio, MaxCandidates: 5}, logger.NewNop())

	candidates := []contracts.Candidate{
		{Symbol: "SLOW", SurpriseRatio: 1.5, MomentumPct: 0.01},
		{Symbol: "FAST", SurpriseRatio: 1.5, MomentumPct: 0.08},
		{Symbol: "BIG", SurpriseRatio: 2.0, MomentumPct: 0.0},
	}

	ranked := r.Rank(candidates)

	assert.Equal(t, "BIG", ranked[0].Symbol)
	assert.Equal(t, "FAST", ranked[1].Symbol)
	assert.Equal(t, "SLOW", ranked[2].Symbol)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	r := NewRanker(Config{SortBy: contracts.SortByPctChange, MaxCandidates: 1}, logger.NewNop())

	candidates := []contracts.Candidate{
		{Symbol: "A", MomentumPct: 0.01},
		{Symbol: "B", MomentumPct: 0.09},
	}

	_ = r.Rank(candidates)

	assert.Equal(t, "A", candidates[0].Symbol)
	assert.Equal(t, "B", candidates[1].Symbol)
}

func TestRankShortListPassesThrough(t *testing.T) {
	r := NewRanker(Config{SortBy: contracts.SortByPctChange, MaxCandidates: 5}, logger.NewNop())

	ranked := r.Rank([]contracts.Candidate{{Symbol: "ONLY", MomentumPct: 0.04}})
	assert.Len(t, ranked, 1)

	assert.Empty(t, r.Rank(nil))
}
