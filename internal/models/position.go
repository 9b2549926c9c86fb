package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sector categorizes positions by industry
type Sector string

const (
	SectorTechnology Sector = "technology"
	SectorHealthcare Sector = "healthcare"
	SectorFinance    Sector = "finance"
	SectorEnergy     Sector = "energy"
	SectorConsumer   Sector = "consumer"
)

// AllSectors returns all valid sectors for iteration
func AllSectors() []Sector {
	return []Sector{
		SectorTechnology,
		SectorHealthcare,
		SectorFinance,
		SectorEnergy,
		SectorConsumer,
	}
}

// RiskLevel classifies a single asset's riskiness
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Position is a single holding as reported by the portfolio provider.
// The engine reads positions as an immutable snapshot per assessment.
type Position struct {
	AssetID         string          `json:"asset_id"`
	Name            string          `json:"name"`
	Sector          Sector          `json:"sector"`
	Geography       string          `json:"geography"`
	RiskLevel       RiskLevel       `json:"risk_level"`
	HoldingAmount   decimal.Decimal `json:"holding_amount"`
	CurrentPrice    decimal.Decimal `json:"current_price"`
	EntryPrice      decimal.Decimal `json:"entry_price"`
	InvestmentValue decimal.Decimal `json:"investment_value"` // amount * entry price at acquisition
	Volume24h       decimal.Decimal `json:"volume_24h"`       // liquidity proxy
}

// CurrentValue returns the position's market value at the current price
func (p Position) CurrentValue() decimal.Decimal {
	return p.HoldingAmount.Mul(p.CurrentPrice)
}

// AnnotatedPosition is a position enriched with derived per-snapshot figures
type AnnotatedPosition struct {
	Position

	CurrentValue     decimal.Decimal `json:"current_value"`
	UnrealizedGain   decimal.Decimal `json:"unrealized_gain"`
	PortfolioPercent float64         `json:"portfolio_percent"` // share of total value, 0-100
}

// Snapshot is a derived, read-only view of a portfolio at a point in time.
// PortfolioPercent across all positions sums to 100 when TotalValue > 0
// and to 0 for an empty portfolio.
type Snapshot struct {
	Positions  []AnnotatedPosition `json:"positions"`
	TotalValue decimal.Decimal     `json:"total_value"`
	TakenAt    time.Time           `json:"taken_at"`
}

// NewSnapshot derives an annotated snapshot from raw positions.
// The input slice is not modified; all derived fields live on the copy.
func NewSnapshot(positions []Position) Snapshot {
	snap := Snapshot{
		Positions:  make([]AnnotatedPosition, 0, len(positions)),
		TotalValue: decimal.Zero,
		TakenAt:    time.Now().UTC(),
	}

	for _, p := range positions {
		snap.TotalValue = snap.TotalValue.Add(p.CurrentValue())
	}

	hundred := decimal.NewFromInt(100)
	for _, p := range positions {
		value := p.CurrentValue()
		ap := AnnotatedPosition{
			Position:       p,
			CurrentValue:   value,
			UnrealizedGain: value.Sub(p.InvestmentValue),
		}
		if !snap.TotalValue.IsZero() {
			ap.PortfolioPercent = value.Div(snap.TotalValue).Mul(hundred).InexactFloat64()
		}
		snap.Positions = append(snap.Positions, ap)
	}

	return snap
}

// IsEmpty reports whether the snapshot holds no positions
func (s Snapshot) IsEmpty() bool {
	return len(s.Positions) == 0
}
