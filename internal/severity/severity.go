// Package severity defines the closed set of rule severities.
package severity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownSeverity = errors.New("unknown severity")

// Severity is how a rule violation is reported.
type Severity int

const (
	Off Severity = iota
	Warn
	Error
)

var names = [...]string{
	Off:   "off",
	Warn:  "warn",
	Error: "error",
}

// Parse converts a configuration value into a Severity.
// Accepted values are "off", "warn", "error" (any case) and 0, 1, 2
// as numbers or numeric strings.
func Parse(value any) (Severity, error) {
	switch v := value.(type) {
	case Severity:
		if v < Off || v > Error {
			return Off, fmt.Errorf("%w: %d", ErrUnknownSeverity, int(v))
		}
		return v, nil
	case string:
		return parseString(v)
	case int:
		return fromInt(int64(v))
	case int64:
		return fromInt(v)
	case uint64:
		if v > 2 {
			return Off, fmt.Errorf("%w: %d", ErrUnknownSeverity, v)
		}
		return Severity(v), nil
	case float64:
		if v != float64(int64(v)) {
			return Off, fmt.Errorf("%w: %v", ErrUnknownSeverity, v)
		}
		return fromInt(int64(v))
	case nil:
		return Off, fmt.Errorf("%w: missing value", ErrUnknownSeverity)
	default:
		return Off, fmt.Errorf("%w: unsupported type %T", ErrUnknownSeverity, value)
	}
}

func parseString(s string) (Severity, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if normalized == name {
			return Severity(i), nil
		}
	}
	if n, err := strconv.ParseInt(normalized, 10, 64); err == nil {
		return fromInt(n)
	}
	return Off, fmt.Errorf("%w: %q (must be one of: off, warn, error)", ErrUnknownSeverity, s)
}

func fromInt(n int64) (Severity, error) {
	if n < 0 || n > 2 {
		return Off, fmt.Errorf("%w: %d (must be 0, 1 or 2)", ErrUnknownSeverity, n)
	}
	return Severity(n), nil
}

func (s Severity) String() string {
	if s < Off || s > Error {
		return "Severity(" + strconv.Itoa(int(s)) + ")"
	}
	return names[s]
}

// Enabled reports whether the rule should run at all.
func (s Severity) Enabled() bool {
	return s != Off
}

func (s Severity) MarshalText() ([]byte, error) {
	if s < Off || s > Error {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSeverity, int(s))
	}
	return []byte(names[s]), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := parseString(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Severity) MarshalYAML() (any, error) {
	text, err := s.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}
