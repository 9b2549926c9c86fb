package risk

import (
	"context"

	"github.com/findosh/sextant/internal/models"
)

// Narrative prompt keys and their mandatory local fallbacks. The fallback
// is always available; provider text only replaces it when generation
// succeeds.
const (
	promptDiversify      = "recommendation.diversify"
	promptReducePosition = "recommendation.reduce_position"
	promptEducational    = "recommendation.educational"
	promptRebalance      = "recommendation.rebalance"
)

var recommendationFallbacks = map[string]string{
	promptDiversify:      "Your portfolio is concentrated in few sectors, regions or risk levels. Spreading investments more widely reduces the impact of any single downturn.",
	promptReducePosition: "A single position makes up a large share of your portfolio. Trimming it limits how much one asset can hurt your overall wealth.",
	promptEducational:    "Learning the basics of diversification, volatility and fees will help you make more confident investment decisions.",
	promptRebalance:      "Your holdings are more volatile than your conservative risk tolerance suggests. Shifting toward steadier assets brings the portfolio back in line.",
}

// buildRecommendations evaluates the recommendation rules in fixed order.
// Rules are independent; any subset may fire. Numeric inputs are already
// computed, only the narrative text involves the external provider.
func (s *Service) buildRecommendations(ctx context.Context, profile *models.RiskProfile, sub SubScores) []models.Recommendation {
	recs := make([]models.Recommendation, 0, 4)

	if sub.Diversification < 60 {
		recs = append(recs, models.Recommendation{
			Type:            models.RecommendDiversify,
			Priority:        models.PriorityHigh,
			Title:           "Improve Diversification",
			Description:     "Spread holdings across more sectors, geographies and risk levels.",
			Narrative:       s.narratives.Explain(ctx, promptDiversify, *profile, recommendationFallbacks[promptDiversify]),
			ActionRequired:  true,
			EstimatedImpact: 2.0,
		})
	}

	if sub.Concentration > 60 {
		recs = append(recs, models.Recommendation{
			Type:            models.RecommendReducePosition,
			Priority:        models.PriorityHigh,
			Title:           "Reduce Largest Position",
			Description:     "Your largest position dominates the portfolio; trim it to cut concentration risk.",
			Narrative:       s.narratives.Explain(ctx, promptReducePosition, *profile, recommendationFallbacks[promptReducePosition]),
			ActionRequired:  true,
			EstimatedImpact: 1.5,
		})
	}

	if profile.FinancialKnowledge == models.KnowledgeBeginner {
		recs = append(recs, models.Recommendation{
			Type:            models.RecommendEducational,
			Priority:        models.PriorityMedium,
			Title:           "Build Investment Knowledge",
			Description:     "Review introductory material on risk, diversification and long-term investing.",
			Narrative:       s.narratives.Explain(ctx, promptEducational, *profile, recommendationFallbacks[promptEducational]),
			ActionRequired:  false,
			EstimatedImpact: 0,
		})
	}

	if profile.RiskTolerance == models.ToleranceConservative && sub.Volatility > 60 {
		recs = append(recs, models.Recommendation{
			Type:            models.RecommendRebalance,
			Priority:        models.PriorityHigh,
			Title:           "Rebalance Toward Stability",
			Description:     "Portfolio volatility exceeds what a conservative tolerance supports; shift toward lower-risk assets.",
			Narrative:       s.narratives.Explain(ctx, promptRebalance, *profile, recommendationFallbacks[promptRebalance]),
			ActionRequired:  true,
			EstimatedImpact: 2.5,
		})
	}

	return recs
}
