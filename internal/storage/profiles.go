package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/findosh/sextant/internal/models"
)

// ProfileRepository provides risk profile data access. It satisfies the
// risk engine's ProfileStore interface.
type ProfileRepository struct {
	db *DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Save inserts or wholesale-replaces the user's risk profile
func (r *ProfileRepository) Save(profile *models.RiskProfile) error {
	goals, err := json.Marshal(profile.PrimaryGoals)
	if err != nil {
		return fmt.Errorf("failed to encode goals: %w", err)
	}

	query := `
		INSERT INTO risk_profiles (
			user_id, risk_tolerance, investment_horizon,
			monthly_income, monthly_expenses, emergency_fund,
			age, dependents, financial_knowledge, primary_goals,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			risk_tolerance = excluded.risk_tolerance,
			investment_horizon = excluded.investment_horizon,
			monthly_income = excluded.monthly_income,
			monthly_expenses = excluded.monthly_expenses,
			emergency_fund = excluded.emergency_fund,
			age = excluded.age,
			dependents = excluded.dependents,
			financial_knowledge = excluded.financial_knowledge,
			primary_goals = excluded.primary_goals,
			updated_at = excluded.updated_at
	`
	_, err = r.db.Exec(query,
		profile.UserID.String(),
		string(profile.RiskTolerance),
		string(profile.InvestmentHorizon),
		profile.MonthlyIncome.String(),
		profile.MonthlyExpenses.String(),
		profile.EmergencyFund.String(),
		profile.Age,
		profile.Dependents,
		string(profile.FinancialKnowledge),
		string(goals),
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save risk profile: %w", err)
	}
	return nil
}

// Get retrieves a profile by user ID, returning (nil, nil) when absent
func (r *ProfileRepository) Get(userID uuid.UUID) (*models.RiskProfile, error) {
	query := `
		SELECT user_id, risk_tolerance, investment_horizon,
			monthly_income, monthly_expenses, emergency_fund,
			age, dependents, financial_knowledge, primary_goals,
			created_at, updated_at
		FROM risk_profiles WHERE user_id = ?
	`

	var (
		p       models.RiskProfile
		id      string
		income  string
		expense string
		fund    string
		goals   string
	)

	err := r.db.QueryRow(query, userID.String()).Scan(
		&id,
		&p.RiskTolerance,
		&p.InvestmentHorizon,
		&income,
		&expense,
		&fund,
		&p.Age,
		&p.Dependents,
		&p.FinancialKnowledge,
		&goals,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan risk profile: %w", err)
	}

	p.UserID, _ = uuid.Parse(id)
	if p.MonthlyIncome, err = decimal.NewFromString(income); err != nil {
		return nil, fmt.Errorf("failed to parse monthly_income: %w", err)
	}
	if p.MonthlyExpenses, err = decimal.NewFromString(expense); err != nil {
		return nil, fmt.Errorf("failed to parse monthly_expenses: %w", err)
	}
	if p.EmergencyFund, err = decimal.NewFromString(fund); err != nil {
		return nil, fmt.Errorf("failed to parse emergency_fund: %w", err)
	}
	if err := json.Unmarshal([]byte(goals), &p.PrimaryGoals); err != nil {
		return nil, fmt.Errorf("failed to decode goals: %w", err)
	}

	return &p, nil
}

// Delete removes a user's risk profile
func (r *ProfileRepository) Delete(userID uuid.UUID) error {
	_, err := r.db.Exec("DELETE FROM risk_profiles WHERE user_id = ?", userID.String())
	return err
}
