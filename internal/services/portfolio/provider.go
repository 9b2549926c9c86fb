// Package portfolio implements the portfolio provider consumed by the
// risk engine: either synthetic holdings with simulated price movement,
// or holdings persisted in sqlite.
package portfolio

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/findosh/sextant/internal/models"
	"github.com/findosh/sextant/internal/storage"
)

// Mode selects where holdings come from
type Mode string

const (
	ModeMock     Mode = "mock"     // synthetic data, simulated prices
	ModeDatabase Mode = "database" // sqlite-backed holdings
)

// Config holds provider configuration
type Config struct {
	Mode Mode
	Seed int64 // mock price stream seed; 0 picks a fixed default
}

// Service supplies per-user portfolio snapshots
type Service struct {
	cfg      Config
	holdings *storage.HoldingRepository
	logger   *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService creates a provider. The holdings repository may be nil in
// mock mode.
func NewService(cfg Config, holdings *storage.HoldingRepository, logger *zap.Logger) (*Service, error) {
	switch cfg.Mode {
	case ModeMock:
	case ModeDatabase:
		if holdings == nil {
			return nil, fmt.Errorf("portfolio: database mode requires a holding repository")
		}
	default:
		return nil, fmt.Errorf("portfolio: unknown mode %q", cfg.Mode)
	}
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		cfg:      cfg,
		holdings: holdings,
		logger:   logger,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// GetUserPortfolio returns the user's current positions. Callers treat
// the result as read-only for the duration of one assessment.
func (s *Service) GetUserPortfolio(ctx context.Context, userID uuid.UUID) ([]models.Position, error) {
	if s.cfg.Mode == ModeDatabase {
		return s.holdings.ListByUser(ctx, userID)
	}
	return s.mockPortfolio(), nil
}

// basePosition is a synthetic asset in the mock catalogue
type basePosition struct {
	assetID   string
	name      string
	sector    models.Sector
	geography string
	riskLevel models.RiskLevel
	amount    float64
	price     float64
	entry     float64
	volume    int64
}

var mockCatalogue = []basePosition{
	{"NOVAX", "Novax Semiconductors", models.SectorTechnology, "US", models.RiskHigh, 120, 48.50, 41.20, 2_400_000},
	{"HELIA", "Helia Biotech", models.SectorHealthcare, "EU", models.RiskMedium, 60, 112.00, 118.75, 820_000},
	{"KRONB", "Kronbank Group", models.SectorFinance, "EU", models.RiskLow, 200, 23.40, 21.05, 1_650_000},
	{"SUNRG", "Sunridge Energy", models.SectorEnergy, "US", models.RiskMedium, 90, 37.80, 35.00, 430_000},
	{"MERCA", "Mercado Andino", models.SectorConsumer, "LATAM", models.RiskHigh, 150, 14.25, 16.40, 210_000},
}

// mockPortfolio builds synthetic positions with a small random walk on
// prices so repeated calls look like a live feed.
func (s *Service) mockPortfolio() []models.Position {
	s.mu.Lock()
	defer s.mu.Unlock()

	positions := make([]models.Position, 0, len(mockCatalogue))
	for _, b := range mockCatalogue {
		// +/-2% drift per call
		drift := 1 + (s.rng.Float64()-0.5)*0.04
		price := decimal.NewFromFloat(b.price * drift).Round(2)
		amount := decimal.NewFromFloat(b.amount)
		entry := decimal.NewFromFloat(b.entry)

		positions = append(positions, models.Position{
			AssetID:         b.assetID,
			Name:            b.name,
			Sector:          b.sector,
			Geography:       b.geography,
			RiskLevel:       b.riskLevel,
			HoldingAmount:   amount,
			CurrentPrice:    price,
			EntryPrice:      entry,
			InvestmentValue: amount.Mul(entry),
			Volume24h:       decimal.NewFromInt(b.volume),
		})
	}
	return positions
}
