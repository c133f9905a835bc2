package contracts

import "time"

// SentimentLabel is the classifier's verdict for a headline.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// SentimentVerdict pairs a headline with its classification. Verdicts are
// collected during a run and handed to the recorder once at the end;
// there is no process-wide accumulator.
type SentimentVerdict struct {
	Symbol     string         `json:"symbol"`
	Headline   string         `json:"headline"`
	Label      SentimentLabel `json:"label"`
	Confidence float64        `json:"confidence,omitempty"`
	ScoredAt   time.Time      `json:"scored_at"`
}
