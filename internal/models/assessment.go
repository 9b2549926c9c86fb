package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecommendationType categorizes portfolio recommendations
type RecommendationType string

const (
	RecommendRebalance        RecommendationType = "rebalance"
	RecommendDiversify        RecommendationType = "diversify"
	RecommendReducePosition   RecommendationType = "reduce_position"
	RecommendIncreasePosition RecommendationType = "increase_position"
	RecommendAddAsset         RecommendationType = "add_asset"
	RecommendEducational      RecommendationType = "educational"
)

// Priority ranks recommendations
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Severity levels for alerts
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Recommendation is a prioritized, typed action suggestion
type Recommendation struct {
	Type            RecommendationType `json:"type"`
	Priority        Priority           `json:"priority"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Narrative       string             `json:"narrative"` // externally generated, falls back to Description
	ActionRequired  bool               `json:"action_required"`
	EstimatedImpact float64            `json:"estimated_impact"` // expected point reduction in overall score
}

// Alert is a severity-tagged portfolio notification
type Alert struct {
	Level      Severity  `json:"level"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Narrative  string    `json:"narrative"`
	Timestamp  time.Time `json:"timestamp"`
	Actionable bool      `json:"actionable"`
}

// RiskAssessment is the full result of one portfolio risk evaluation.
// It is recomputed from scratch on every assessment; cached copies are
// never mutated.
type RiskAssessment struct {
	UserID           uuid.UUID `json:"user_id"`
	OverallRiskScore int       `json:"overall_risk_score"` // 1-10

	DiversificationScore float64 `json:"diversification_score"` // higher is safer
	VolatilityRisk       float64 `json:"volatility_risk"`
	LiquidityRisk        float64 `json:"liquidity_risk"`
	ConcentrationRisk    float64 `json:"concentration_risk"`
	GeographicRisk       float64 `json:"geographic_risk"`
	SectorRisk           float64 `json:"sector_risk"`

	Recommendations []Recommendation `json:"recommendations"`
	Alerts          []Alert          `json:"alerts"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// StressScenario projects the hypothetical loss from one macro scenario
type StressScenario struct {
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	PotentialLoss        decimal.Decimal `json:"potential_loss"`
	Probability          float64         `json:"probability"` // 0-1
	Timeframe            string          `json:"timeframe"`
	MitigationStrategies []string        `json:"mitigation_strategies"`
}
