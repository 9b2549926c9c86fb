// Package models defines core domain types
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RiskTolerance describes how much risk a user declared they can bear
type RiskTolerance string

const (
	ToleranceConservative RiskTolerance = "conservative"
	ToleranceModerate     RiskTolerance = "moderate"
	ToleranceAggressive   RiskTolerance = "aggressive"
)

// InvestmentHorizon describes the user's declared investment timeframe
type InvestmentHorizon string

const (
	HorizonShort  InvestmentHorizon = "short"  // <1yr
	HorizonMedium InvestmentHorizon = "medium" // 1-5yr
	HorizonLong   InvestmentHorizon = "long"   // >5yr
)

// Knowledge describes the user's self-reported financial literacy
type Knowledge string

const (
	KnowledgeBeginner     Knowledge = "beginner"
	KnowledgeIntermediate Knowledge = "intermediate"
	KnowledgeAdvanced     Knowledge = "advanced"
)

// Goal is a user-declared investment goal tag
type Goal string

const (
	GoalWealthBuilding      Goal = "wealth_building"
	GoalIncomeGeneration    Goal = "income_generation"
	GoalCapitalPreservation Goal = "capital_preservation"
	GoalSocialImpact        Goal = "social_impact"
)

// RiskProfile holds a user's declared risk preferences.
// Exactly one profile exists per user; updates replace it wholesale.
type RiskProfile struct {
	UserID             uuid.UUID         `json:"user_id"`
	RiskTolerance      RiskTolerance     `json:"risk_tolerance"`
	InvestmentHorizon  InvestmentHorizon `json:"investment_horizon"`
	MonthlyIncome      decimal.Decimal   `json:"monthly_income"`
	MonthlyExpenses    decimal.Decimal   `json:"monthly_expenses"`
	EmergencyFund      decimal.Decimal   `json:"emergency_fund"`
	Age                int               `json:"age"`
	Dependents         int               `json:"dependents"`
	FinancialKnowledge Knowledge         `json:"financial_knowledge"`
	PrimaryGoals       []Goal            `json:"primary_goals"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// ValidationError reports a profile field that violates its invariants
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

// Validate checks all field invariants. Out-of-range values are rejected,
// never coerced.
func (p *RiskProfile) Validate() error {
	if p.UserID == uuid.Nil {
		return &ValidationError{Field: "user_id", Reason: "must be set"}
	}
	switch p.RiskTolerance {
	case ToleranceConservative, ToleranceModerate, ToleranceAggressive:
	default:
		return &ValidationError{Field: "risk_tolerance", Reason: "unknown value " + string(p.RiskTolerance)}
	}
	switch p.InvestmentHorizon {
	case HorizonShort, HorizonMedium, HorizonLong:
	default:
		return &ValidationError{Field: "investment_horizon", Reason: "unknown value " + string(p.InvestmentHorizon)}
	}
	switch p.FinancialKnowledge {
	case KnowledgeBeginner, KnowledgeIntermediate, KnowledgeAdvanced:
	default:
		return &ValidationError{Field: "financial_knowledge", Reason: "unknown value " + string(p.FinancialKnowledge)}
	}
	if p.MonthlyIncome.IsNegative() {
		return &ValidationError{Field: "monthly_income", Reason: "must not be negative"}
	}
	if p.MonthlyExpenses.IsNegative() {
		return &ValidationError{Field: "monthly_expenses", Reason: "must not be negative"}
	}
	if p.EmergencyFund.IsNegative() {
		return &ValidationError{Field: "emergency_fund", Reason: "must not be negative"}
	}
	if p.Age <= 0 {
		return &ValidationError{Field: "age", Reason: "must be positive"}
	}
	if p.Dependents < 0 {
		return &ValidationError{Field: "dependents", Reason: "must not be negative"}
	}
	for _, g := range p.PrimaryGoals {
		switch g {
		case GoalWealthBuilding, GoalIncomeGeneration, GoalCapitalPreservation, GoalSocialImpact:
		default:
			return &ValidationError{Field: "primary_goals", Reason: "unknown goal " + string(g)}
		}
	}
	return nil
}
