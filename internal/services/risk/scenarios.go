package risk

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/findosh/sextant/internal/models"
)

// scenarioSpec is a fixed macro scenario in the stress catalogue
type scenarioSpec struct {
	name         string
	description  string
	lossFraction decimal.Decimal
	probability  float64
	timeframe    string
	mitigations  []string
}

var stressCatalogue = []scenarioSpec{
	{
		name:         "Market Correction",
		description:  "A broad market pullback drags down prices across most asset classes.",
		lossFraction: decimal.NewFromFloat(0.20),
		probability:  0.15,
		timeframe:    "6-12 months",
		mitigations: []string{
			"Keep an emergency fund outside the portfolio",
			"Diversify across uncorrelated asset classes",
			"Avoid selling into the drawdown",
		},
	},
	{
		name:         "Regulatory Changes",
		description:  "Sudden regulatory shifts hit valuations in affected sectors.",
		lossFraction: decimal.NewFromFloat(0.35),
		probability:  0.08,
		timeframe:    "3-6 months",
		mitigations: []string{
			"Limit exposure to any single jurisdiction",
			"Follow regulatory developments in your largest sectors",
			"Hold assets across multiple regulatory regimes",
		},
	},
	{
		name:         "Technology Disruption",
		description:  "A disruptive technology shift erodes the value of incumbent holdings.",
		lossFraction: decimal.NewFromFloat(0.50),
		probability:  0.05,
		timeframe:    "1-2 years",
		mitigations: []string{
			"Balance incumbents with exposure to emerging technology",
			"Review sector allocations at least yearly",
			"Cap any single theme's share of the portfolio",
		},
	},
}

// PerformStressTest projects each catalogue scenario's hypothetical loss
// against the user's current portfolio value. A risk profile is required,
// matching AssessPortfolioRisk, even though the loss math does not use it.
func (s *Service) PerformStressTest(ctx context.Context, userID uuid.UUID) ([]models.StressScenario, error) {
	profile, err := s.profiles.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	positions, err := s.portfolio.GetUserPortfolio(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load portfolio: %w", err)
	}
	snap := models.NewSnapshot(positions)

	scenarios := make([]models.StressScenario, 0, len(stressCatalogue))
	for _, spec := range stressCatalogue {
		scenarios = append(scenarios, models.StressScenario{
			Name:                 spec.name,
			Description:          spec.description,
			PotentialLoss:        snap.TotalValue.Mul(spec.lossFraction),
			Probability:          spec.probability,
			Timeframe:            spec.timeframe,
			MitigationStrategies: spec.mitigations,
		})
	}

	s.logger.Debug("stress test performed",
		zapUserID(userID),
	)
	return scenarios, nil
}
