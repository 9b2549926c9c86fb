package risk

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/findosh/sextant/internal/models"
)

const (
	promptHighRisk       = "alert.high_portfolio_risk"
	promptEmergencyFund  = "alert.low_emergency_fund"
	promptInvestmentPace = "alert.investment_pace"
)

var alertFallbacks = map[string]string{
	promptHighRisk:       "Your overall portfolio risk is very high. Consider reducing volatile or concentrated positions soon.",
	promptEmergencyFund:  "Your emergency fund covers less than three months of expenses. Building it up protects you from having to sell investments at a bad time.",
	promptInvestmentPace: "You are investing a sizable share of your income while still learning. A steadier pace leaves room to learn without outsized losses.",
}

// Emergency fund coverage below this many months of expenses triggers a
// warning.
const minEmergencyCoverageMonths = 3.0

// buildAlerts evaluates the alert rules in fixed order. Ratio-based rules
// guard their denominators: zero expenses means infinite coverage and zero
// income means no pace ratio, so those alerts are simply skipped.
func (s *Service) buildAlerts(ctx context.Context, profile *models.RiskProfile, overall int, snap models.Snapshot) []models.Alert {
	now := time.Now().UTC()
	alerts := make([]models.Alert, 0, 3)

	if overall >= 8 {
		alerts = append(alerts, models.Alert{
			Level:      models.SeverityCritical,
			Title:      "High Portfolio Risk Detected",
			Message:    fmt.Sprintf("Overall risk score is %d out of 10.", overall),
			Narrative:  s.narratives.Explain(ctx, promptHighRisk, *profile, alertFallbacks[promptHighRisk]),
			Timestamp:  now,
			Actionable: true,
		})
	}

	if profile.MonthlyExpenses.IsPositive() {
		coverage := profile.EmergencyFund.Div(profile.MonthlyExpenses)
		if coverage.LessThan(decimal.NewFromFloat(minEmergencyCoverageMonths)) {
			alerts = append(alerts, models.Alert{
				Level:      models.SeverityWarning,
				Title:      "Low Emergency Fund",
				Message:    fmt.Sprintf("Emergency fund covers %s months of expenses; aim for at least 3.", coverage.Round(1)),
				Narrative:  s.narratives.Explain(ctx, promptEmergencyFund, *profile, alertFallbacks[promptEmergencyFund]),
				Timestamp:  now,
				Actionable: true,
			})
		}
	}

	if profile.FinancialKnowledge == models.KnowledgeBeginner && profile.MonthlyIncome.IsPositive() {
		annualIncome := profile.MonthlyIncome.Mul(decimal.NewFromInt(12))
		pace := snap.TotalValue.Div(annualIncome)
		if pace.GreaterThan(decimal.NewFromFloat(0.1)) {
			alerts = append(alerts, models.Alert{
				Level:      models.SeverityWarning,
				Title:      "Consider Investment Pace",
				Message:    "Your invested amount is large relative to annual income for a beginner investor.",
				Narrative:  s.narratives.Explain(ctx, promptInvestmentPace, *profile, alertFallbacks[promptInvestmentPace]),
				Timestamp:  now,
				Actionable: false,
			})
		}
	}

	return alerts
}
