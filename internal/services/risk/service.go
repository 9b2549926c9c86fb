package risk

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/findosh/sextant/internal/models"
	"github.com/findosh/sextant/internal/services/narrative"
)

// ErrProfileNotFound is returned by assessment operations when no risk
// profile exists for the user. Recoverable: create a profile first.
var ErrProfileNotFound = errors.New("risk: profile not found")

// ProfileStore is the keyed store of user risk profiles. Get returns
// (nil, nil) when no profile exists.
type ProfileStore interface {
	Save(profile *models.RiskProfile) error
	Get(userID uuid.UUID) (*models.RiskProfile, error)
}

// PortfolioProvider supplies the current holdings snapshot for a user.
// The engine treats the returned slice as read-only for one assessment.
type PortfolioProvider interface {
	GetUserPortfolio(ctx context.Context, userID uuid.UUID) ([]models.Position, error)
}

// Service is the risk assessment facade. It orchestrates the scorers,
// aggregator, recommendation and alert generators and the stress test
// simulator, and caches the latest assessment per user. Assessments for
// the same user are serialized through the cache lock; last write wins.
type Service struct {
	profiles   ProfileStore
	portfolio  PortfolioProvider
	narratives *narrative.Resolver
	weights    Weights
	logger     *zap.Logger

	mu    sync.RWMutex
	cache map[uuid.UUID]*models.RiskAssessment
}

// NewService wires the facade. The weighting contract is asserted here so
// a broken weight edit fails at startup, not mid-assessment.
func NewService(profiles ProfileStore, portfolio PortfolioProvider, narratives *narrative.Resolver, logger *zap.Logger) (*Service, error) {
	if profiles == nil {
		return nil, errors.New("risk: profile store must not be nil")
	}
	if portfolio == nil {
		return nil, errors.New("risk: portfolio provider must not be nil")
	}
	if narratives == nil {
		narratives = narrative.NewResolver(nil, 0, logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := DefaultWeights.Validate(); err != nil {
		return nil, err
	}

	return &Service{
		profiles:   profiles,
		portfolio:  portfolio,
		narratives: narratives,
		weights:    DefaultWeights,
		logger:     logger,
		cache:      make(map[uuid.UUID]*models.RiskAssessment),
	}, nil
}

// CreateRiskProfile validates and stores the profile, then immediately
// computes and caches a first assessment. An existing profile is replaced
// wholesale, never merged.
func (s *Service) CreateRiskProfile(ctx context.Context, profile *models.RiskProfile) (*models.RiskAssessment, error) {
	if profile == nil {
		return nil, &models.ValidationError{Field: "profile", Reason: "must not be nil"}
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	if err := s.profiles.Save(profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	s.logger.Info("risk profile created",
		zapUserID(profile.UserID),
		zap.String("tolerance", string(profile.RiskTolerance)),
		zap.String("knowledge", string(profile.FinancialKnowledge)),
	)

	return s.AssessPortfolioRisk(ctx, profile.UserID)
}

// AssessPortfolioRisk recomputes the full assessment against the latest
// portfolio snapshot and overwrites the cached copy. Assessments are never
// updated incrementally. Scores are computed eagerly; only narrative text
// touches the external provider, and its failure never gates the result.
func (s *Service) AssessPortfolioRisk(ctx context.Context, userID uuid.UUID) (*models.RiskAssessment, error) {
	profile, err := s.profiles.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	positions, err := s.portfolio.GetUserPortfolio(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load portfolio: %w", err)
	}
	snap := models.NewSnapshot(positions)

	sub := Score(snap)
	overall := OverallScore(s.weights, sub)

	assessment := &models.RiskAssessment{
		UserID:               userID,
		OverallRiskScore:     overall,
		DiversificationScore: sub.Diversification,
		VolatilityRisk:       sub.Volatility,
		LiquidityRisk:        sub.Liquidity,
		ConcentrationRisk:    sub.Concentration,
		GeographicRisk:       sub.Geographic,
		SectorRisk:           sub.Sector,
		Recommendations:      s.buildRecommendations(ctx, profile, sub),
		Alerts:               s.buildAlerts(ctx, profile, overall, snap),
		GeneratedAt:          time.Now().UTC(),
	}

	s.mu.Lock()
	s.cache[userID] = assessment
	s.mu.Unlock()

	s.logger.Info("portfolio risk assessed",
		zapUserID(userID),
		zap.Int("overall_score", overall),
		zap.Int("positions", len(snap.Positions)),
		zap.Int("recommendations", len(assessment.Recommendations)),
		zap.Int("alerts", len(assessment.Alerts)),
	)

	return assessment, nil
}

// CachedAssessment returns the most recent assessment for the user, if any
func (s *Service) CachedAssessment(userID uuid.UUID) (*models.RiskAssessment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.cache[userID]
	return a, ok
}

func zapUserID(id uuid.UUID) zap.Field {
	return zap.String("user_id", id.String())
}
