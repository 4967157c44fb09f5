package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/wizzomafizzo/flatlint/internal/environment"
	"github.com/wizzomafizzo/flatlint/internal/severity"
)

var ErrInvalidCondition = errors.New("invalid conditional rule")

// Condition compares one environment variable against a literal.
type Condition struct {
	Env    string `yaml:"env" mapstructure:"env"`
	Equals string `yaml:"equals" mapstructure:"equals"`
}

// RuleSetting is a parsed rule value. A plain setting always yields Severity.
// A conditional setting yields Severity when the condition holds and Else
// otherwise.
type RuleSetting struct {
	When     *Condition
	Options  []any
	Severity severity.Severity
	Else     severity.Severity
}

// ParseRuleSetting accepts the rule value forms allowed in a config:
//
//	"error" | 2                            plain severity
//	["error", {...}]                       severity followed by rule options
//	{when: {env, equals}, then, else}      environment conditional
func ParseRuleSetting(value any) (RuleSetting, error) {
	switch v := value.(type) {
	case []any:
		return parseListSetting(v)
	case map[string]any:
		return parseConditional(v)
	default:
		sev, err := severity.Parse(value)
		if err != nil {
			return RuleSetting{}, err //nolint:wrapcheck // severity errors carry the value
		}
		return RuleSetting{Severity: sev}, nil
	}
}

func parseListSetting(values []any) (RuleSetting, error) {
	if len(values) == 0 {
		return RuleSetting{}, fmt.Errorf("%w: empty rule value", severity.ErrUnknownSeverity)
	}
	if _, nested := values[0].([]any); nested {
		return RuleSetting{}, fmt.Errorf("%w: rule value lists cannot be nested", severity.ErrUnknownSeverity)
	}

	setting, err := ParseRuleSetting(values[0])
	if err != nil {
		return RuleSetting{}, err
	}
	if len(values) > 1 {
		setting.Options = append([]any(nil), values[1:]...)
	}
	return setting, nil
}

func parseConditional(m map[string]any) (RuleSetting, error) {
	for key := range m {
		switch key {
		case "when", "then", "else":
		default:
			return RuleSetting{}, fmt.Errorf("%w: unexpected key '%s'", ErrInvalidCondition, key)
		}
	}

	when, ok := m["when"].(map[string]any)
	if !ok {
		return RuleSetting{}, fmt.Errorf("%w: a 'when' mapping is required", ErrInvalidCondition)
	}
	envName, _ := when["env"].(string)
	if envName == "" {
		return RuleSetting{}, fmt.Errorf("%w: 'when.env' must name a variable", ErrInvalidCondition)
	}
	equalsValue, present := when["equals"]
	if !present || equalsValue == nil {
		return RuleSetting{}, fmt.Errorf("%w: 'when.equals' is required", ErrInvalidCondition)
	}

	thenValue, present := m["then"]
	if !present {
		return RuleSetting{}, fmt.Errorf("%w: 'then' severity is required", ErrInvalidCondition)
	}
	thenSeverity, err := severity.Parse(thenValue)
	if err != nil {
		return RuleSetting{}, fmt.Errorf("then: %w", err)
	}

	elseSeverity := severity.Off
	if elseValue, present := m["else"]; present {
		elseSeverity, err = severity.Parse(elseValue)
		if err != nil {
			return RuleSetting{}, fmt.Errorf("else: %w", err)
		}
	}

	return RuleSetting{
		When:     &Condition{Env: envName, Equals: fmt.Sprint(equalsValue)},
		Severity: thenSeverity,
		Else:     elseSeverity,
	}, nil
}

// Conditional reports whether the setting depends on the environment.
func (s RuleSetting) Conditional() bool {
	return s.When != nil
}

// Evaluate returns the effective severity under env.
func (s RuleSetting) Evaluate(env environment.Environment) severity.Severity {
	if s.When == nil {
		return s.Severity
	}
	if env.Equals(s.When.Env, s.When.Equals) {
		return s.Severity
	}
	return s.Else
}

// RuleSettings parses every rule of the block.
func (b *Block) RuleSettings() (map[string]RuleSetting, error) {
	settings := make(map[string]RuleSetting, len(b.Rules))
	for _, name := range b.RuleNames() {
		setting, err := ParseRuleSetting(b.Rules[name])
		if err != nil {
			return nil, fmt.Errorf("rule '%s': %w", name, err)
		}
		settings[name] = setting
	}
	return settings, nil
}

// RuleNames returns the block's rule names in sorted order.
func (b *Block) RuleNames() []string {
	names := make([]string, 0, len(b.Rules))
	for name := range b.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
