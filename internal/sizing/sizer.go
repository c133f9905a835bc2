package sizing

import "math"

// Config defines the risk budget for position sizing.
type Config struct {
	RiskPctOfEquity float64 // fraction of equity risked per trade
	AssumedStopPct  float64 // assumed stop-loss distance
}

// DefaultConfig risks 0.5% of equity per trade against a 5% stop.
func DefaultConfig() Config {
	return Config{
		RiskPctOfEquity: 0.005,
		AssumedStopPct:  0.05,
	}
}

// Shares converts account equity and the risk budget into a share
// quantity: floor(equity × riskPct / (price × stopPct)), floored at 1.
// Callers with no usable equity should use degraded-mode quantity 1
// instead of calling this with zero.
func Shares(price, equity float64, cfg Config) int {
	if price <= 0 || equity <= 0 {
		return 1
	}

	riskDollars := equity * cfg.RiskPctOfEquity
	perShareRisk := price * cfg.AssumedStopPct

	qty := int(math.Floor(riskDollars / perShareRisk))
	if qty < 1 {
		return 1
	}
	return qty
}
