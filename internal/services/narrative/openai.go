package narrative

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/findosh/sextant/internal/models"
)

// OpenAIConfig configures the OpenAI-backed narrative provider
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAIClient generates explanations through the OpenAI chat API
type OpenAIClient struct {
	cfg    OpenAIConfig
	logger *zap.Logger
	sdk    *openai.Client
}

// NewOpenAIClient creates the provider. Fails without an API key; callers
// that have none should pass a nil Provider to NewResolver instead.
func NewOpenAIClient(cfg OpenAIConfig, logger *zap.Logger) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("narrative: openai api key must be set")
	}
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sdkCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		sdkCfg.BaseURL = cfg.BaseURL
	}
	sdkCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout + 5*time.Second}

	return &OpenAIClient{
		cfg:    cfg,
		logger: logger,
		sdk:    openai.NewClientWithConfig(sdkCfg),
	}, nil
}

const systemPrompt = `You write short explanations for a portfolio risk tool.
Explain the flagged topic in 2-3 plain sentences matched to the investor's
experience level. Never recommend specific securities, never guarantee
returns, never give tax advice.`

// GenerateExplanation asks the model to humanize one recommendation or
// alert key for the given profile.
func (c *OpenAIClient) GenerateExplanation(ctx context.Context, promptKey string, profile models.RiskProfile) (string, error) {
	userPrompt := buildPrompt(promptKey, profile)

	resp, err := c.sdk.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("narrative: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("narrative: empty completion response")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("narrative: blank completion text")
	}

	c.logger.Debug("narrative generated",
		zap.String("prompt_key", promptKey),
		zap.Int("length", len(text)),
	)
	return text, nil
}

func buildPrompt(promptKey string, profile models.RiskProfile) string {
	var sb strings.Builder
	sb.WriteString("Topic: ")
	sb.WriteString(promptKey)
	sb.WriteString("\nInvestor context:\n")
	sb.WriteString(fmt.Sprintf("- risk tolerance: %s\n", profile.RiskTolerance))
	sb.WriteString(fmt.Sprintf("- investment horizon: %s\n", profile.InvestmentHorizon))
	sb.WriteString(fmt.Sprintf("- financial knowledge: %s\n", profile.FinancialKnowledge))
	if len(profile.PrimaryGoals) > 0 {
		goals := make([]string, 0, len(profile.PrimaryGoals))
		for _, g := range profile.PrimaryGoals {
			goals = append(goals, string(g))
		}
		sb.WriteString("- goals: " + strings.Join(goals, ", ") + "\n")
	}
	return sb.String()
}
