// Package narrative turns recommendation and alert keys into humanized
// explanation text via an external language model, with mandatory local
// fallbacks so narrative generation can never fail an assessment.
package narrative

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/findosh/sextant/internal/models"
)

// Provider generates explanation text for a prompt key and user profile
type Provider interface {
	GenerateExplanation(ctx context.Context, promptKey string, profile models.RiskProfile) (string, error)
}

// Resolver wraps a Provider and guarantees a usable string for every
// call site. Provider failures and timeouts are absorbed into the
// caller-supplied fallback; they are never surfaced.
type Resolver struct {
	provider Provider
	timeout  time.Duration
	logger   *zap.Logger
}

// NewResolver creates a resolver. A nil provider is valid and resolves
// every key straight to its fallback.
func NewResolver(provider Provider, timeout time.Duration, logger *zap.Logger) *Resolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		provider: provider,
		timeout:  timeout,
		logger:   logger,
	}
}

// Explain returns provider-generated text for promptKey, or fallback when
// the provider is absent, errors out, times out, or returns empty text.
func (r *Resolver) Explain(ctx context.Context, promptKey string, profile models.RiskProfile, fallback string) string {
	if r == nil || r.provider == nil {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	text, err := r.provider.GenerateExplanation(ctx, promptKey, profile)
	if err != nil {
		r.logger.Warn("narrative generation failed, using fallback",
			zap.String("prompt_key", promptKey),
			zap.Error(err),
		)
		return fallback
	}
	if text == "" {
		return fallback
	}
	return text
}
