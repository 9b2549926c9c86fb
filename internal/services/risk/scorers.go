// Package risk implements the portfolio risk assessment engine: factor
// scorers, score aggregation, recommendations, alerts, stress testing and
// the facade service tying them together.
package risk

import (
	"github.com/shopspring/decimal"

	"github.com/findosh/sextant/internal/models"
)

// Reference caps for diversification scoring. A portfolio spanning this
// many distinct sectors/geographies/risk levels scores 100 on that axis.
const (
	sectorCap    = 5
	geographyCap = 10
	riskLevelCap = 3
)

// Per-risk-level volatility contribution, weighted by portfolio share.
var volatilityWeights = map[models.RiskLevel]float64{
	models.RiskHigh:   80,
	models.RiskMedium: 50,
	models.RiskLow:    20,
}

// Liquidity penalty thresholds on 24h volume.
var (
	liquidityDeep    = decimal.NewFromInt(1_000_000)
	liquidityShallow = decimal.NewFromInt(500_000)
)

// DiversificationScore measures how spread out the portfolio is across
// sectors, geographies and risk levels. Unlike the other scorers, higher
// means safer; the aggregator inverts it.
func DiversificationScore(snap models.Snapshot) float64 {
	if snap.IsEmpty() {
		return 0
	}

	sectors := make(map[models.Sector]struct{})
	geographies := make(map[string]struct{})
	levels := make(map[models.RiskLevel]struct{})
	for _, p := range snap.Positions {
		sectors[p.Sector] = struct{}{}
		geographies[p.Geography] = struct{}{}
		levels[p.RiskLevel] = struct{}{}
	}

	sectorScore := capScore(float64(len(sectors)) / sectorCap * 100)
	geoScore := capScore(float64(len(geographies)) / geographyCap * 100)
	levelScore := capScore(float64(len(levels)) / riskLevelCap * 100)

	return (sectorScore + geoScore + levelScore) / 3
}

// VolatilityRisk is the portfolio-weighted sum of per-asset risk-level
// volatility contributions.
func VolatilityRisk(snap models.Snapshot) float64 {
	if snap.IsEmpty() {
		return 0
	}

	total := 0.0
	for _, p := range snap.Positions {
		total += volatilityWeights[p.RiskLevel] * (p.PortfolioPercent / 100)
	}
	return capScore(total)
}

// LiquidityRisk penalizes positions with thin 24h trading volume,
// weighted by portfolio share.
func LiquidityRisk(snap models.Snapshot) float64 {
	if snap.IsEmpty() {
		return 0
	}

	total := 0.0
	for _, p := range snap.Positions {
		total += liquidityPenalty(p.Volume24h) * (p.PortfolioPercent / 100)
	}
	return capScore(total)
}

func liquidityPenalty(volume decimal.Decimal) float64 {
	switch {
	case volume.GreaterThan(liquidityDeep):
		return 20
	case volume.GreaterThan(liquidityShallow):
		return 40
	default:
		return 70
	}
}

// ConcentrationRisk is a step function of the single largest position's
// share of the portfolio. Only the maximum matters.
func ConcentrationRisk(snap models.Snapshot) float64 {
	if snap.IsEmpty() {
		return 0
	}

	maxPct := 0.0
	for _, p := range snap.Positions {
		if p.PortfolioPercent > maxPct {
			maxPct = p.PortfolioPercent
		}
	}

	switch {
	case maxPct > 30:
		return 80
	case maxPct > 20:
		return 60
	case maxPct > 15:
		return 40
	default:
		return 20
	}
}

// GeographicRisk steps on the heaviest single geography's total weight.
func GeographicRisk(snap models.Snapshot) float64 {
	if snap.IsEmpty() {
		return 0
	}

	weights := make(map[string]float64)
	for _, p := range snap.Positions {
		weights[p.Geography] += p.PortfolioPercent
	}

	maxWeight := 0.0
	for _, w := range weights {
		if w > maxWeight {
			maxWeight = w
		}
	}

	switch {
	case maxWeight > 60:
		return 80
	case maxWeight > 40:
		return 50
	default:
		return 20
	}
}

// SectorRisk steps on the heaviest single sector's total weight.
func SectorRisk(snap models.Snapshot) float64 {
	if snap.IsEmpty() {
		return 0
	}

	weights := make(map[models.Sector]float64)
	for _, p := range snap.Positions {
		weights[p.Sector] += p.PortfolioPercent
	}

	maxWeight := 0.0
	for _, w := range weights {
		if w > maxWeight {
			maxWeight = w
		}
	}

	switch {
	case maxWeight > 70:
		return 70
	case maxWeight > 50:
		return 40
	default:
		return 20
	}
}

func capScore(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}
