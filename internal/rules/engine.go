// Package rules provides the keyword rules engine that maps free-text bank
// descriptions onto the fixed category set, plus merchant-name extraction.
package rules

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rumor-ml/fininsight/internal/domain"
)

//go:embed rules.yaml
var embeddedRules []byte

// Rule maps one merchant/keyword pattern to a category. Patterns are
// matched case-insensitively as substrings of the description.
type Rule struct {
	Pattern  string `yaml:"pattern"`
	Category string `yaml:"category"`
}

// ruleSet is the top-level YAML structure
type ruleSet struct {
	Rules []Rule `yaml:"rules"`
}

// Engine matches transaction descriptions against an ordered rule list.
// Evaluation is strictly first-match-wins in file order; there is no scoring
// and no multiple-match resolution, so behavior stays deterministic and
// explainable.
type Engine struct {
	rules []Rule
}

// NewEngine creates a rules engine from YAML data. Rule order in the file is
// preserved exactly.
func NewEngine(rulesData []byte) (*Engine, error) {
	var rs ruleSet
	if err := yaml.Unmarshal(rulesData, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse YAML rules (check syntax, indentation, and field names): %w", err)
	}

	for i, rule := range rs.Rules {
		if strings.TrimSpace(rule.Pattern) == "" {
			return nil, fmt.Errorf("rule %d: pattern cannot be empty", i)
		}
		if !domain.ValidateCategory(domain.Category(rule.Category)) {
			return nil, fmt.Errorf("rule %d (%s): invalid category %q", i, rule.Pattern, rule.Category)
		}
	}

	rules := make([]Rule, len(rs.Rules))
	copy(rules, rs.Rules)

	return &Engine{rules: rules}, nil
}

// LoadEmbedded loads the embedded rules.yaml file
func LoadEmbedded() (*Engine, error) {
	engine, err := NewEngine(embeddedRules)
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded rules (possible binary corruption): %w", err)
	}
	return engine, nil
}

// LoadFromFile loads rules from a filesystem path
func LoadFromFile(path string) (*Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	engine, err := NewEngine(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules from %q: %w", path, err)
	}
	return engine, nil
}

// Categorize maps a description to a category. The first rule whose pattern
// is a case-insensitive substring of the description wins; descriptions no
// rule matches resolve to the catch-all Other category.
func (e *Engine) Categorize(description string) domain.Category {
	upper := strings.ToUpper(description)

	for _, rule := range e.rules {
		if strings.Contains(upper, strings.ToUpper(rule.Pattern)) {
			return domain.Category(rule.Category)
		}
	}

	return domain.CategoryOther
}

// MerchantCategory resolves a merchant name to a category, consulting the
// user's override map (keyed by normalized merchant name) before falling
// back to pattern matching. The override map is external persisted state;
// it is read here, never written.
func (e *Engine) MerchantCategory(merchant string, overrides map[string]domain.Category) domain.Category {
	key := NormalizeMerchant(merchant)
	if c, ok := overrides[key]; ok && domain.ValidateCategory(c) {
		return c
	}
	return e.Categorize(merchant)
}

// Rules returns a copy of the rule list in evaluation order.
func (e *Engine) Rules() []Rule {
	result := make([]Rule, len(e.rules))
	copy(result, e.rules)
	return result
}
