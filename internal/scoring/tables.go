package scoring

import "strings"

// phaseStages maps a journey phase (lowercased) to the company stages it
// applies to. Hand-authored heuristics, not learned weights.
var phaseStages = map[string][]string{
	"ideation":   {"idea"},
	"validation": {"idea", "mvp"},
	"launch":     {"mvp", "early_revenue"},
	"growth":     {"early_revenue", "growth"},
	"scale":      {"growth", "scale"},
	"operations": {"early_revenue", "growth", "scale"},
}

// businessModelKeywords maps a normalized business model to the keywords that
// mark a step as relevant to it. Matched case-insensitively against the step's
// name and description.
var businessModelKeywords = map[string][]string{
	"b2b_saas":    {"enterprise", "sales", "pipeline", "demo", "contract", "integration", "onboarding"},
	"b2c":         {"consumer", "retention", "brand", "community", "engagement", "acquisition"},
	"marketplace": {"supply", "demand", "liquidity", "seller", "buyer", "matching", "commission"},
	"ecommerce":   {"checkout", "inventory", "fulfillment", "conversion", "catalog", "shipping"},
	"services":    {"client", "proposal", "billing", "scope", "referral", "portfolio"},
	"hardware":    {"prototype", "manufacturing", "supplier", "certification", "assembly", "logistics"},
}

// normalizeModelName lowercases and underscore-joins a business model label so
// "B2B SaaS" and "b2b_saas" hit the same keyword list.
func normalizeModelName(model string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(model)), " ", "_")
}
