package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/findosh/sextant/internal/models"
)

// HoldingRepository provides holdings data access for the database-backed
// portfolio provider.
type HoldingRepository struct {
	db *DB
}

// NewHoldingRepository creates a new holding repository
func NewHoldingRepository(db *DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

// Insert adds one holding row for a user
func (r *HoldingRepository) Insert(ctx context.Context, userID uuid.UUID, p models.Position) error {
	query := `
		INSERT INTO holdings (
			id, user_id, asset_id, name, sector, geography, risk_level,
			holding_amount, current_price, entry_price, investment_value, volume_24h
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		uuid.New().String(),
		userID.String(),
		p.AssetID,
		p.Name,
		string(p.Sector),
		p.Geography,
		string(p.RiskLevel),
		p.HoldingAmount.String(),
		p.CurrentPrice.String(),
		p.EntryPrice.String(),
		p.InvestmentValue.String(),
		p.Volume24h.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert holding: %w", err)
	}
	return nil
}

// UpdatePrice sets the current price on all of a user's rows for an asset
func (r *HoldingRepository) UpdatePrice(ctx context.Context, userID uuid.UUID, assetID string, price decimal.Decimal) error {
	query := `
		UPDATE holdings SET current_price = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND asset_id = ?
	`
	_, err := r.db.ExecContext(ctx, query, price.String(), userID.String(), assetID)
	return err
}

// ListByUser returns all of a user's positions
func (r *HoldingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Position, error) {
	query := `
		SELECT asset_id, name, sector, geography, risk_level,
			holding_amount, current_price, entry_price, investment_value, volume_24h
		FROM holdings WHERE user_id = ?
		ORDER BY asset_id
	`
	rows, err := r.db.QueryContext(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	var positions []models.Position
	for rows.Next() {
		var (
			p      models.Position
			amount string
			price  string
			entry  string
			value  string
			volume string
		)
		if err := rows.Scan(
			&p.AssetID,
			&p.Name,
			&p.Sector,
			&p.Geography,
			&p.RiskLevel,
			&amount,
			&price,
			&entry,
			&value,
			&volume,
		); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}

		if p.HoldingAmount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse holding_amount: %w", err)
		}
		if p.CurrentPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("failed to parse current_price: %w", err)
		}
		if p.EntryPrice, err = decimal.NewFromString(entry); err != nil {
			return nil, fmt.Errorf("failed to parse entry_price: %w", err)
		}
		if p.InvestmentValue, err = decimal.NewFromString(value); err != nil {
			return nil, fmt.Errorf("failed to parse investment_value: %w", err)
		}
		if p.Volume24h, err = decimal.NewFromString(volume); err != nil {
			return nil, fmt.Errorf("failed to parse volume_24h: %w", err)
		}

		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// DeleteByUser removes all holdings for a user
func (r *HoldingRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM holdings WHERE user_id = ?", userID.String())
	return err
}
