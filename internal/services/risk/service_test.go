package risk

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/findosh/sextant/internal/models"
	"github.com/findosh/sextant/internal/services/narrative"
)

// stubPortfolio returns a fixed snapshot for every user
type stubPortfolio struct {
	positions []models.Position
	err       error
}

func (s *stubPortfolio) GetUserPortfolio(ctx context.Context, _ uuid.UUID) ([]models.Position, error) {
	return s.positions, s.err
}

func newTestService(t *testing.T, positions []models.Position) *Service {
	t.Helper()
	svc, err := NewService(
		NewMemoryProfileStore(),
		&stubPortfolio{positions: positions},
		narrative.NewResolver(nil, 0, nil),
		nil,
	)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func conservativeBeginner(userID uuid.UUID) *models.RiskProfile {
	return &models.RiskProfile{
		UserID:             userID,
		RiskTolerance:      models.ToleranceConservative,
		InvestmentHorizon:  models.HorizonMedium,
		MonthlyIncome:      decimal.NewFromInt(800),
		MonthlyExpenses:    decimal.NewFromInt(600),
		EmergencyFund:      decimal.NewFromInt(1200),
		Age:                30,
		Dependents:         0,
		FinancialKnowledge: models.KnowledgeBeginner,
		PrimaryGoals:       []models.Goal{models.GoalCapitalPreservation},
	}
}

// singleRiskyPosition is the worked scenario: one position at 100%
// allocation, high risk, 24h volume 200k, total value 900.
func singleRiskyPosition() []models.Position {
	return []models.Position{{
		AssetID:         "NOVAX",
		Sector:          models.SectorTechnology,
		Geography:       "US",
		RiskLevel:       models.RiskHigh,
		HoldingAmount:   decimal.NewFromInt(9),
		CurrentPrice:    decimal.NewFromInt(100),
		EntryPrice:      decimal.NewFromInt(90),
		InvestmentValue: decimal.NewFromInt(810),
		Volume24h:       decimal.NewFromInt(200_000),
	}}
}

func TestAssessPortfolioRisk_NoProfile(t *testing.T) {
	svc := newTestService(t, singleRiskyPosition())

	_, err := svc.AssessPortfolioRisk(context.Background(), uuid.New())
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("Expected ErrProfileNotFound, got %v", err)
	}
}

func TestCreateRiskProfile_RejectsInvalid(t *testing.T) {
	svc := newTestService(t, nil)

	profile := conservativeBeginner(uuid.New())
	profile.MonthlyIncome = decimal.NewFromInt(-100)

	_, err := svc.CreateRiskProfile(context.Background(), profile)
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *ValidationError, got %v", err)
	}
	if verr.Field != "monthly_income" {
		t.Errorf("Expected monthly_income violation, got %q", verr.Field)
	}
}

func TestCreateRiskProfile_CachesAssessment(t *testing.T) {
	svc := newTestService(t, singleRiskyPosition())
	userID := uuid.New()

	assessment, err := svc.CreateRiskProfile(context.Background(), conservativeBeginner(userID))
	if err != nil {
		t.Fatalf("CreateRiskProfile failed: %v", err)
	}

	cached, ok := svc.CachedAssessment(userID)
	if !ok {
		t.Fatal("Expected an assessment to be cached")
	}
	if cached != assessment {
		t.Error("Expected the cached assessment to be the one returned")
	}
}

func TestAssessPortfolioRisk_WorkedExample(t *testing.T) {
	svc := newTestService(t, singleRiskyPosition())
	userID := uuid.New()

	a, err := svc.CreateRiskProfile(context.Background(), conservativeBeginner(userID))
	if err != nil {
		t.Fatalf("CreateRiskProfile failed: %v", err)
	}

	if a.VolatilityRisk != 80 {
		t.Errorf("Expected volatility 80, got %v", a.VolatilityRisk)
	}
	if a.ConcentrationRisk != 80 {
		t.Errorf("Expected concentration 80, got %v", a.ConcentrationRisk)
	}
	if a.LiquidityRisk != 70 {
		t.Errorf("Expected liquidity 70, got %v", a.LiquidityRisk)
	}
	if a.DiversificationScore >= 60 {
		t.Errorf("Expected low diversification score, got %v", a.DiversificationScore)
	}
	if a.OverallRiskScore < 7 || a.OverallRiskScore > 9 {
		t.Errorf("Expected overall score in 7-9 band, got %d", a.OverallRiskScore)
	}

	wantRecs := map[models.RecommendationType]bool{
		models.RecommendDiversify:      false,
		models.RecommendReducePosition: false,
		models.RecommendEducational:    false,
		models.RecommendRebalance:      false,
	}
	for _, rec := range a.Recommendations {
		wantRecs[rec.Type] = true
	}
	for typ, seen := range wantRecs {
		if !seen {
			t.Errorf("Expected recommendation %s to fire", typ)
		}
	}
	if len(a.Recommendations) != 4 {
		t.Errorf("Expected exactly 4 recommendations, got %d", len(a.Recommendations))
	}

	var fundAlert, critical bool
	for _, alert := range a.Alerts {
		if alert.Title == "Low Emergency Fund" && alert.Level == models.SeverityWarning {
			fundAlert = true
		}
		if alert.Level == models.SeverityCritical {
			critical = true
		}
	}
	if !fundAlert {
		t.Error("Expected Low Emergency Fund warning (coverage 2 months)")
	}
	if a.OverallRiskScore >= 8 && !critical {
		t.Error("Expected critical alert at score >= 8")
	}
}

func TestAssessPortfolioRisk_Idempotent(t *testing.T) {
	svc := newTestService(t, singleRiskyPosition())
	userID := uuid.New()

	first, err := svc.CreateRiskProfile(context.Background(), conservativeBeginner(userID))
	if err != nil {
		t.Fatalf("CreateRiskProfile failed: %v", err)
	}
	second, err := svc.AssessPortfolioRisk(context.Background(), userID)
	if err != nil {
		t.Fatalf("AssessPortfolioRisk failed: %v", err)
	}

	if first.OverallRiskScore != second.OverallRiskScore ||
		first.DiversificationScore != second.DiversificationScore ||
		first.VolatilityRisk != second.VolatilityRisk ||
		first.LiquidityRisk != second.LiquidityRisk ||
		first.ConcentrationRisk != second.ConcentrationRisk ||
		first.GeographicRisk != second.GeographicRisk ||
		first.SectorRisk != second.SectorRisk {
		t.Error("Expected identical numeric fields for an unchanged snapshot")
	}
}

func TestAssessPortfolioRisk_RecomputeOverwritesCache(t *testing.T) {
	provider := &stubPortfolio{positions: singleRiskyPosition()}
	svc, err := NewService(NewMemoryProfileStore(), provider, nil, nil)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	userID := uuid.New()

	if _, err := svc.CreateRiskProfile(context.Background(), conservativeBeginner(userID)); err != nil {
		t.Fatalf("CreateRiskProfile failed: %v", err)
	}

	// portfolio empties out; the next assessment must reflect that
	provider.positions = nil
	a, err := svc.AssessPortfolioRisk(context.Background(), userID)
	if err != nil {
		t.Fatalf("AssessPortfolioRisk failed: %v", err)
	}
	if a.VolatilityRisk != 0 {
		t.Errorf("Expected volatility 0 after portfolio emptied, got %v", a.VolatilityRisk)
	}

	cached, _ := svc.CachedAssessment(userID)
	if cached != a {
		t.Error("Expected the cache to hold the latest assessment")
	}
}

func TestBuildAlerts_ZeroExpensesSkipsFundAlert(t *testing.T) {
	svc := newTestService(t, singleRiskyPosition())
	userID := uuid.New()

	profile := conservativeBeginner(userID)
	profile.EmergencyFund = decimal.Zero
	profile.MonthlyExpenses = decimal.Zero

	a, err := svc.CreateRiskProfile(context.Background(), profile)
	if err != nil {
		t.Fatalf("CreateRiskProfile failed: %v", err)
	}

	for _, alert := range a.Alerts {
		if alert.Title == "Low Emergency Fund" {
			t.Error("Expected no emergency fund alert with zero expenses")
		}
	}
}

func TestBuildAlerts_InvestmentPace(t *testing.T) {
	// beginner with total value above 10% of annual income
	positions := singleRiskyPosition()
	positions[0].HoldingAmount = decimal.NewFromInt(20) // value 2000 vs 9600 annual income

	svc := newTestService(t, positions)
	userID := uuid.New()

	a, err := svc.CreateRiskProfile(context.Background(), conservativeBeginner(userID))
	if err != nil {
		t.Fatalf("CreateRiskProfile failed: %v", err)
	}

	var pace bool
	for _, alert := range a.Alerts {
		if alert.Title == "Consider Investment Pace" {
			pace = true
			if alert.Actionable {
				t.Error("Expected pace alert to be non-actionable")
			}
		}
	}
	if !pace {
		t.Error("Expected Consider Investment Pace alert")
	}
}

func TestRecommendations_CarryFallbackNarratives(t *testing.T) {
	svc := newTestService(t, singleRiskyPosition())
	userID := uuid.New()

	a, err := svc.CreateRiskProfile(context.Background(), conservativeBeginner(userID))
	if err != nil {
		t.Fatalf("CreateRiskProfile failed: %v", err)
	}

	for _, rec := range a.Recommendations {
		if strings.TrimSpace(rec.Narrative) == "" {
			t.Errorf("Recommendation %s has empty narrative; fallback expected", rec.Type)
		}
	}
	for _, alert := range a.Alerts {
		if strings.TrimSpace(alert.Narrative) == "" {
			t.Errorf("Alert %q has empty narrative; fallback expected", alert.Title)
		}
	}
}

func TestSimplifiedExplanation(t *testing.T) {
	svc := newTestService(t, singleRiskyPosition())
	userID := uuid.New()

	// no assessment yet: sentinel, not an error
	if got := svc.SimplifiedExplanation(userID, "en"); !strings.Contains(got, "No risk assessment") {
		t.Errorf("Expected no-assessment sentinel, got %q", got)
	}

	if _, err := svc.CreateRiskProfile(context.Background(), conservativeBeginner(userID)); err != nil {
		t.Fatalf("CreateRiskProfile failed: %v", err)
	}

	en := svc.SimplifiedExplanation(userID, "en")
	if !strings.Contains(en, "high") {
		t.Errorf("Expected high-risk explanation, got %q", en)
	}

	es := svc.SimplifiedExplanation(userID, "es")
	if !strings.Contains(es, "alto") {
		t.Errorf("Expected Spanish high-risk explanation, got %q", es)
	}

	// unknown language falls back to English
	if got := svc.SimplifiedExplanation(userID, "xx"); got != en {
		t.Errorf("Expected English fallback for unknown language, got %q", got)
	}
}
