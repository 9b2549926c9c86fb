package risk

import (
	"fmt"
	"math"

	"github.com/findosh/sextant/internal/models"
)

// SubScores bundles the six factor scores for aggregation
type SubScores struct {
	Diversification float64 // higher is safer
	Volatility      float64
	Liquidity       float64
	Concentration   float64
	Geographic      float64
	Sector          float64
}

// Weights assigns each risk dimension its share of the overall score.
// The fields must sum to exactly 1.0.
type Weights struct {
	Diversification float64
	Volatility      float64
	Concentration   float64
	Geographic      float64
	Liquidity       float64
	Sector          float64
}

// DefaultWeights is the standard weighting contract
var DefaultWeights = Weights{
	Diversification: 0.25,
	Volatility:      0.25,
	Concentration:   0.20,
	Geographic:      0.15,
	Liquidity:       0.10,
	Sector:          0.05,
}

// Validate asserts the weighting contract: all weights sum to 1.0.
// Checked at service construction so an edited weight set fails fast.
func (w Weights) Validate() error {
	sum := w.Diversification + w.Volatility + w.Concentration +
		w.Geographic + w.Liquidity + w.Sector
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("risk weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// OverallScore combines the six sub-scores into a single 1-10 risk score.
// Diversification is inverted first since it is the only higher-is-safer
// sub-score. The result is clamped to [1,10]: even an empty portfolio
// carries baseline risk, so the floor is 1, never 0.
func OverallScore(w Weights, s SubScores) int {
	diversificationRisk := 100 - s.Diversification

	weighted := diversificationRisk*w.Diversification +
		s.Volatility*w.Volatility +
		s.Concentration*w.Concentration +
		s.Geographic*w.Geographic +
		s.Liquidity*w.Liquidity +
		s.Sector*w.Sector

	score := int(math.Round(weighted / 10))
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	return score
}

// Score computes all six sub-scores for a snapshot
func Score(snap models.Snapshot) SubScores {
	return SubScores{
		Diversification: DiversificationScore(snap),
		Volatility:      VolatilityRisk(snap),
		Liquidity:       LiquidityRisk(snap),
		Concentration:   ConcentrationRisk(snap),
		Geographic:      GeographicRisk(snap),
		Sector:          SectorRisk(snap),
	}
}
