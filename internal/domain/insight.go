package domain

// InsightCategory classifies the tone of a generated insight.
type InsightCategory string

const (
	InsightPositive InsightCategory = "positive"
	InsightNegative InsightCategory = "negative"
	InsightNeutral  InsightCategory = "neutral"
)

// Insight is one rule-based observation about the selected period.
// Insights are produced fresh per request and never mutated afterwards;
// their order is part of the contract and must not be changed by callers.
type Insight struct {
	Title    string          `json:"title"`
	Message  string          `json:"message"`
	Category InsightCategory `json:"category"`
}
