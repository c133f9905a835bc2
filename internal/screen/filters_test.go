package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stonjarli/backend/internal/contracts"
	"github.com/stonjarli/backend/pkg/logger"
)

func passingCandidate() contracts.Candidate {
	return contracts.Candidate{
		Symbol:         "PASS",
		Price:          50,
		PreviousClose:  48,
		IntradayVolume: 1_000_000,
		ADV10:          2_000_000,
		MomentumPct:    0.05,
	}
}

func TestCheckLiquidity(t *testing.T) {
	s := New(DefaultConfig(), logger.NewNop())

	tests := []struct {
		name   string
		mutate func(*contracts.Candidate)
		want   string
	}{
		{"passes all", func(c *contracts.Candidate) {}, ""},
		{"price too low", func(c *contracts.Candidate) { c.Price = 4.99 }, "liquidity"},
		{"price too high", func(c *contracts.Candidate) { c.Price = 100.01 }, "liquidity"},
		{"thin intraday volume", func(c *contracts.Candidate) { c.IntradayVolume = 499_999 }, "liquidity"},
		{"thin average volume", func(c *contracts.Candidate) { c.ADV10 = 100_000 }, "liquidity"},
		{"price at lower bound", func(c *contracts.Candidate) { c.Price = 5 }, ""},
		{"price at upper bound", func(c *contracts.Candidate) { c.Price = 100 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := passingCandidate()
			tt.mutate(&c)
			assert.Equal(t, tt.want, s.Check(&c))
		})
	}
}

func TestCheckMomentum(t *testing.T) {
	s := New(DefaultConfig(), logger.NewNop())

	c := passingCandidate()
	c.MomentumPct = 0.029
	assert.Equal(t, "momentum", s.Check(&c))

	c.MomentumPct = 0.03
	assert.Equal(t, "", s.Check(&c), "threshold is inclusive")

	// A large negative move is still a momentum failure, not a pass
	c.MomentumPct = -0.08
	assert.Equal(t, "momentum", s.Check(&c))
}

func TestCheckEarningsSurprise(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SurpriseEnabled = true
	s := New(cfg, logger.NewNop())

	beat := &contracts.EarningsEvent{
		EPSActual: 1.5, EPSEstimate: 1.0,
		RevenueActual: 110, RevenueEstimate: 100,
	}

	c := passingCandidate()
	c.Earnings = beat
	assert.Equal(t, "", s.Check(&c))

	t.Run("no earnings event", func(t *testing.T) {
		c := passingCandidate()
		assert.Equal(t, "earnings_surprise", s.Check(&c))
	})

	t.Run("weak EPS beat", func(t *testing.T) {
		c := passingCandidate()
		c.Earnings = &contracts.EarningsEvent{
			EPSActual: 1.1, EPSEstimate: 1.0,
			RevenueActual: 110, RevenueEstimate: 100,
		}
		assert.Equal(t, "earnings_surprise", s.Check(&c))
	})

	t.Run("revenue miss", func(t *testing.T) {
		c := passingCandidate()
		c.Earnings = &contracts.EarningsEvent{
			EPSActual: 1.5, EPSEstimate: 1.0,
			RevenueActual: 90, RevenueEstimate: 100,
		}
		assert.Equal(t, "earnings_surprise", s.Check(&c))
	})

	t.Run("negative estimate never qualifies", func(t *testing.T) {
		c := passingCandidate()
		c.Earnings = &contracts.EarningsEvent{
			EPSActual: 0.5, EPSEstimate: -0.2,
			RevenueActual: 110, RevenueEstimate: 100,
		}
		assert.Equal(t, "earnings_surprise", s.Check(&c))
	})
}

func TestApplyAccountsRejections(t *testing.T) {
	s := New(DefaultConfig(), logger.NewNop())

	thin := passingCandidate()
	thin.Symbol = "THIN"
	thin.IntradayVolume = 100

	flat := passingCandidate()
	flat.Symbol = "FLAT"
	flat.MomentumPct = 0.01

	flat2 := passingCandidate()
	flat2.Symbol = "FLAT2"
	flat2.MomentumPct = 0.0

	passed, filtered := s.Apply([]contracts.Candidate{passingCandidate(), thin, flat, flat2})

	assert.Len(t, passed, 1)
	assert.Equal(t, "PASS", passed[0].Symbol)
	assert.Equal(t, map[string]int{"liquidity": 1, "momentum": 2}, filtered)
}

func TestApplyDisabledFiltersPassEverything(t *testing.T) {
	s := New(Config{}, logger.NewNop())

	c := contracts.Candidate{Symbol: "ANY", Price: 0.5, MomentumPct: -0.5}
	passed, filtered := s.Apply([]contracts.Candidate{c})

	assert.Len(t, passed, 1)
	assert.Empty(t, filtered)
}
