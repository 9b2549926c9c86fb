package portfolio

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/findosh/sextant/internal/models"
)

func TestNewService_RejectsUnknownMode(t *testing.T) {
	_, err := NewService(Config{Mode: "paper"}, nil, nil)
	if err == nil {
		t.Error("Expected error for unknown mode")
	}
}

func TestNewService_DatabaseModeNeedsRepository(t *testing.T) {
	_, err := NewService(Config{Mode: ModeDatabase}, nil, nil)
	if err == nil {
		t.Error("Expected error for database mode without repository")
	}
}

func TestMockPortfolio_CoversCatalogue(t *testing.T) {
	svc, err := NewService(Config{Mode: ModeMock, Seed: 7}, nil, nil)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	positions, err := svc.GetUserPortfolio(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetUserPortfolio failed: %v", err)
	}
	if len(positions) != len(mockCatalogue) {
		t.Fatalf("Expected %d positions, got %d", len(mockCatalogue), len(positions))
	}

	for i, p := range positions {
		if p.AssetID != mockCatalogue[i].assetID {
			t.Errorf("position %d: expected asset %s, got %s", i, mockCatalogue[i].assetID, p.AssetID)
		}
		if p.CurrentPrice.IsZero() || p.CurrentPrice.IsNegative() {
			t.Errorf("position %d: expected positive price, got %s", i, p.CurrentPrice)
		}
		if !p.InvestmentValue.Equal(p.HoldingAmount.Mul(p.EntryPrice)) {
			t.Errorf("position %d: investment value must equal amount * entry price", i)
		}
	}
}

func TestMockPortfolio_DeterministicPerSeed(t *testing.T) {
	a, _ := NewService(Config{Mode: ModeMock, Seed: 42}, nil, nil)
	b, _ := NewService(Config{Mode: ModeMock, Seed: 42}, nil, nil)

	pa, _ := a.GetUserPortfolio(context.Background(), uuid.New())
	pb, _ := b.GetUserPortfolio(context.Background(), uuid.New())

	for i := range pa {
		if !pa[i].CurrentPrice.Equal(pb[i].CurrentPrice) {
			t.Errorf("position %d: expected identical price streams per seed, got %s vs %s",
				i, pa[i].CurrentPrice, pb[i].CurrentPrice)
		}
	}
}

func TestMockPortfolio_ValidSectors(t *testing.T) {
	svc, _ := NewService(Config{Mode: ModeMock}, nil, nil)
	positions, _ := svc.GetUserPortfolio(context.Background(), uuid.New())

	valid := make(map[models.Sector]bool)
	for _, s := range models.AllSectors() {
		valid[s] = true
	}
	for _, p := range positions {
		if !valid[p.Sector] {
			t.Errorf("Unknown sector %q on asset %s", p.Sector, p.AssetID)
		}
	}
}
