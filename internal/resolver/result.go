package resolver

import (
	"sort"

	"github.com/wizzomafizzo/flatlint/internal/config"
	"github.com/wizzomafizzo/flatlint/internal/plugin"
	"github.com/wizzomafizzo/flatlint/internal/severity"
)

// Result is what the external rule-checking engine receives for one path.
// Maps are owned by the caller.
type Result struct {
	LanguageOptions *config.LanguageOptions      `json:"languageOptions,omitempty"`
	Parser          plugin.Handle                `json:"parser,omitempty"`
	Plugins         map[string]plugin.Handle     `json:"plugins,omitempty"`
	Rules           map[string]severity.Severity `json:"rules"`
	RuleOptions     map[string][]any             `json:"ruleOptions,omitempty"`
	Path            string                       `json:"path"`
	IgnoredBy       string                       `json:"ignoredBy,omitempty"`
	Block           string                       `json:"block,omitempty"`
	Excluded        bool                         `json:"excluded"`
	Matched         bool                         `json:"matched"`
}

// RuleNames returns the resolved rule names in sorted order.
func (r *Result) RuleNames() []string {
	names := make([]string, 0, len(r.Rules))
	for name := range r.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EnabledRules returns the rules whose severity is not off.
func (r *Result) EnabledRules() map[string]severity.Severity {
	enabled := make(map[string]severity.Severity)
	for name, sev := range r.Rules {
		if sev.Enabled() {
			enabled[name] = sev
		}
	}
	return enabled
}

// BlockSummary describes one compiled block for listing.
type BlockSummary struct {
	Rules       map[string]severity.Severity `json:"rules"`
	Label       string                       `json:"label"`
	Files       []string                     `json:"files"`
	Ignores     []string                     `json:"ignores,omitempty"`
	Conditional []string                     `json:"conditional,omitempty"`
}
