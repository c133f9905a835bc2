package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/stonjarli/backend/internal/contracts"
	"github.com/stonjarli/backend/pkg/breaker"
	"github.com/stonjarli/backend/pkg/config"
	"github.com/stonjarli/backend/pkg/logger"
)

const systemInstruction = `You are a financial news analyst. Classify the sentiment of a single
stock-market headline strictly from the perspective of a shareholder of
the mentioned company. Respond with JSON only.`

// GeminiClassifier scores headlines with the Gemini API. The service is
// treated as unreliable: calls go through a circuit breaker and any
// failure degrades to a neutral verdict instead of blocking the run.
type GeminiClassifier struct {
	client  *genai.Client
	model   string
	breaker *breaker.Breaker
	logger  *logger.Logger
}

// NewGeminiClassifier creates a classifier from config.
func NewGeminiClassifier(ctx context.Context, cfg config.GeminiConfig, log *logger.Logger) (*GeminiClassifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClassifier{
		client:  client,
		model:   cfg.Model,
		breaker: breaker.New("gemini", 5, 2*time.Minute),
		logger:  log,
	}, nil
}

// classification is the JSON shape the model is constrained to return
type classification struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Classify scores a headline. On any failure (API error, open breaker,
// unparseable response) it returns a neutral verdict and no error:
// neutral is the documented degraded mode, not a fault.
func (g *GeminiClassifier) Classify(ctx context.Context, symbol, headline string) (*contracts.SentimentVerdict, error) {
	verdict := &contracts.SentimentVerdict{
		Symbol:   symbol,
		Headline: headline,
		Label:    contracts.SentimentNeutral,
		ScoredAt: time.Now(),
	}

	result, err := g.breaker.Execute(func() (interface{}, error) {
		return g.classify(ctx, headline)
	})
	if err != nil {
		g.logger.WithFields(map[string]interface{}{
			"symbol":        symbol,
			"breaker_state": g.breaker.State(),
			"error":         err.Error(),
		}).Warn("Sentiment classification failed, defaulting to neutral")
		return verdict, nil
	}

	cls := result.(*classification)
	verdict.Label = parseLabel(cls.Label)
	verdict.Confidence = cls.Confidence

	return verdict, nil
}

// classify performs the actual model call.
func (g *GeminiClassifier) classify(ctx context.Context, headline string) (*classification, error) {
	prompt := fmt.Sprintf("Classify the sentiment of this headline as positive, negative or neutral: %q", headline)

	contents := []*genai.Content{
		{
			Parts: []*genai.Part{{Text: systemInstruction}},
			Role:  "system",
		},
		{
			Parts: []*genai.Part{{Text: prompt}},
			Role:  "user",
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	var cls classification
	if err := json.Unmarshal([]byte(resp.Text()), &cls); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gemini response: %w", err)
	}

	return &cls, nil
}

// responseSchema constrains the model output to the classification shape
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"label": {
				Type:        genai.TypeString,
				Description: "One of: positive, negative, neutral.",
			},
			"confidence": {
				Type:        genai.TypeNumber,
				Description: "Confidence in the label, 0 to 1.",
			},
		},
		Required: []string{"label"},
	}
}

// parseLabel normalizes the model's label, defaulting to neutral.
func parseLabel(s string) contracts.SentimentLabel {
	switch {
	case strings.Contains(strings.ToLower(s), "positive"):
		return contracts.SentimentPositive
	case strings.Contains(strings.ToLower(s), "negative"):
		return contracts.SentimentNegative
	default:
		return contracts.SentimentNeutral
	}
}
