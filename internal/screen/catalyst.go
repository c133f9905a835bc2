package screen

import (
	"strings"

	"github.com/stonjarli/backend/internal/contracts"
)

// CatalystMatcher matches news headlines against a configurable keyword
// list. Strategy variants diverge on the exact list, so it is config,
// not code.
type CatalystMatcher struct {
	keywords []string
}

// DefaultCatalystKeywords is the curated keyword set shared by the
// momentum strategies. Strategies may override it in their YAML config.
func DefaultCatalystKeywords() []string {
	return []string{
		"investment", "investor", "partnership", "strategic", "stake",
		"acquisition", "merger", "deal", "collaboration",
		"earnings beat", "earnings surprise", "guidance raise", "profit",
		"revenue growth", "AI", "artificial intelligence",
		"launch", "product release", "breakthrough", "innovation",
		"approval", "FDA", "contract", "award", "expansion",
		"joint venture", "funding", "grant", "buyback", "dividend",
		"surge", "upgrade", "price target", "record", "milestone",
		"NVIDIA", "data center", "cloud", "semiconductor", "chip",
		"automation", "robotics", "autonomous", "defense", "space",
		"renewable", "battery",
	}
}

// NewCatalystMatcher creates a matcher for the given keyword list.
func NewCatalystMatcher(keywords []string) *CatalystMatcher {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k != "" {
			lowered = append(lowered, strings.ToLower(k))
		}
	}
	return &CatalystMatcher{keywords: lowered}
}

// Match returns the news items whose headline or summary contains any
// keyword (case-insensitive), preserving input order.
func (m *CatalystMatcher) Match(items []contracts.NewsItem) []contracts.NewsItem {
	matched := make([]contracts.NewsItem, 0)
	for _, item := range items {
		if m.MatchText(item.Headline + " " + item.Summary) {
			matched = append(matched, item)
		}
	}
	return matched
}

// MatchText reports whether the text contains any catalyst keyword.
func (m *CatalystMatcher) MatchText(text string) bool {
	lowered := strings.ToLower(text)
	for _, k := range m.keywords {
		if strings.Contains(lowered, k) {
			return true
		}
	}
	return false
}
