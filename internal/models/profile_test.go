package models

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func validProfile() RiskProfile {
	return RiskProfile{
		UserID:             uuid.New(),
		RiskTolerance:      ToleranceModerate,
		InvestmentHorizon:  HorizonLong,
		MonthlyIncome:      decimal.NewFromInt(5000),
		MonthlyExpenses:    decimal.NewFromInt(3000),
		EmergencyFund:      decimal.NewFromInt(12000),
		Age:                35,
		Dependents:         1,
		FinancialKnowledge: KnowledgeIntermediate,
		PrimaryGoals:       []Goal{GoalWealthBuilding},
	}
}

func TestRiskProfile_ValidateOK(t *testing.T) {
	p := validProfile()
	if err := p.Validate(); err != nil {
		t.Errorf("Expected valid profile, got %v", err)
	}
}

func TestRiskProfile_ValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RiskProfile)
		field  string
	}{
		{"missing user id", func(p *RiskProfile) { p.UserID = uuid.Nil }, "user_id"},
		{"bad tolerance", func(p *RiskProfile) { p.RiskTolerance = "reckless" }, "risk_tolerance"},
		{"bad horizon", func(p *RiskProfile) { p.InvestmentHorizon = "forever" }, "investment_horizon"},
		{"bad knowledge", func(p *RiskProfile) { p.FinancialKnowledge = "guru" }, "financial_knowledge"},
		{"negative income", func(p *RiskProfile) { p.MonthlyIncome = decimal.NewFromInt(-1) }, "monthly_income"},
		{"negative expenses", func(p *RiskProfile) { p.MonthlyExpenses = decimal.NewFromInt(-50) }, "monthly_expenses"},
		{"negative fund", func(p *RiskProfile) { p.EmergencyFund = decimal.NewFromInt(-1) }, "emergency_fund"},
		{"zero age", func(p *RiskProfile) { p.Age = 0 }, "age"},
		{"negative dependents", func(p *RiskProfile) { p.Dependents = -1 }, "dependents"},
		{"bad goal", func(p *RiskProfile) { p.PrimaryGoals = []Goal{"get_rich_quick"} }, "primary_goals"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validProfile()
			tc.mutate(&p)

			err := p.Validate()
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected *ValidationError, got %T", err)
			}
			if verr.Field != tc.field {
				t.Errorf("Expected field %q, got %q", tc.field, verr.Field)
			}
		})
	}
}

func TestRiskProfile_ZeroAmountsAreValid(t *testing.T) {
	p := validProfile()
	p.MonthlyIncome = decimal.Zero
	p.MonthlyExpenses = decimal.Zero
	p.EmergencyFund = decimal.Zero

	if err := p.Validate(); err != nil {
		t.Errorf("Expected zero amounts to be valid, got %v", err)
	}
}
