// Package advisor turns an insights snapshot into narrative financial advice
// by prompting a remote language model. The snapshot math never depends on
// this package; advice is a strictly additive layer.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rumor-ml/fininsight/internal/domain"
)

// Provider is a language-model backend that completes a prompt. Implementations
// own their transport, credentials, and model selection.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generate builds the advice prompt from the snapshot, sends it to the
// provider, and decodes the structured response. A response with no JSON
// object in it is still returned, as a summary-only Advice.
func Generate(ctx context.Context, insights *domain.Insights, provider Provider) (*domain.Advice, error) {
	if insights == nil {
		return nil, fmt.Errorf("advisor: nil insights")
	}
	if provider == nil {
		return nil, fmt.Errorf("advisor: nil provider")
	}

	raw, err := provider.Complete(ctx, BuildPrompt(insights))
	if err != nil {
		return nil, fmt.Errorf("advisor: %s: %w", provider.Name(), err)
	}

	advice, err := extractAdvice(raw)
	if err != nil {
		return nil, fmt.Errorf("advisor: %s: %w", provider.Name(), err)
	}
	return advice, nil
}

// BuildPrompt renders the snapshot into the analysis prompt. The response
// contract (a single JSON object with summary, recommendations, warnings,
// and opportunities) is part of the prompt text.
func BuildPrompt(insights *domain.Insights) string {
	var categories strings.Builder
	for _, c := range insights.CategoryBreakdown {
		fmt.Fprintf(&categories, "- %s: $%.2f (%.1f%%)\n", c.Category, c.Amount, c.Percentage)
	}

	var merchants strings.Builder
	for _, m := range insights.TopMerchants {
		fmt.Fprintf(&merchants, "- %s: $%.2f (%d transactions)\n", m.Merchant, m.Amount, m.Count)
	}

	return fmt.Sprintf(`Analyze this personal finance data and provide actionable insights:

Financial Summary:
- Total Income: $%.2f
- Total Expenses: $%.2f
- Net Savings: $%.2f
- Savings Rate: %.1f%%
- Daily Average Spending: $%.2f
- Burn Rate: %.0f days

Category Breakdown:
%s
Top Merchants:
%s
Please provide:
1. A brief summary (2-3 sentences) of the overall financial health
2. 3-5 specific recommendations for improving finances
3. Any warnings or concerns about spending patterns
4. Opportunities for optimization or savings

Format your response as JSON with this structure:
{
  "summary": "...",
  "recommendations": ["...", "..."],
  "warnings": ["...", "..."],
  "opportunities": ["...", "..."]
}`,
		insights.TotalIncome, insights.TotalExpenses, insights.NetSavings,
		insights.SavingsRate, insights.DailyAverage, insights.BurnRate,
		categories.String(), merchants.String())
}

// extractAdvice pulls the JSON object out of a model response. Models wrap
// answers in prose or code fences often enough that the span from the first
// "{" to the last "}" is taken rather than decoding the response whole.
func extractAdvice(raw string) (*domain.Advice, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		// No structured payload at all; keep the text as the summary.
		return &domain.Advice{
			Summary:         strings.TrimSpace(raw),
			Recommendations: []string{},
			Warnings:        []string{},
			Opportunities:   []string{},
		}, nil
	}

	var advice domain.Advice
	if err := json.Unmarshal([]byte(raw[start:end+1]), &advice); err != nil {
		return nil, fmt.Errorf("decoding model response: %w", err)
	}
	if advice.Recommendations == nil {
		advice.Recommendations = []string{}
	}
	if advice.Warnings == nil {
		advice.Warnings = []string{}
	}
	if advice.Opportunities == nil {
		advice.Opportunities = []string{}
	}
	return &advice, nil
}
