// Package environment provides explicit environment snapshots so that
// configuration evaluation never reads process-global state directly.
package environment

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

var ErrInvalidAssignment = errors.New("invalid environment assignment")

// NodeEnv is the variable the default configuration keys console reporting on.
const NodeEnv = "NODE_ENV"

// Production is the NodeEnv value that enables console warnings.
const Production = "production"

// Environment is an immutable snapshot of environment variables.
type Environment struct {
	vars map[string]string
}

// New copies vars into a new Environment.
func New(vars map[string]string) Environment {
	copied := make(map[string]string, len(vars))
	for k, v := range vars {
		copied[k] = v
	}
	return Environment{vars: copied}
}

// Empty returns an Environment with no variables set.
func Empty() Environment {
	return Environment{vars: map[string]string{}}
}

// FromOS snapshots the current process environment.
func FromOS() Environment {
	vars := make(map[string]string)
	for _, assignment := range os.Environ() {
		// Windows exposes per-drive entries such as "=C:=C:\".
		if key, value, found := strings.Cut(assignment, "="); found && key != "" {
			vars[key] = value
		}
	}
	return Environment{vars: vars}
}

// Parse builds an Environment from KEY=VALUE assignments. Later assignments
// override earlier ones.
func Parse(assignments []string) (Environment, error) {
	vars := make(map[string]string, len(assignments))
	for _, assignment := range assignments {
		key, value, found := strings.Cut(assignment, "=")
		if !found || key == "" {
			return Environment{}, fmt.Errorf("%w '%s': expected KEY=VALUE", ErrInvalidAssignment, assignment)
		}
		vars[key] = value
	}
	return Environment{vars: vars}, nil
}

// Merge returns a new Environment with overrides layered over e.
func (e Environment) Merge(overrides Environment) Environment {
	merged := make(map[string]string, len(e.vars)+len(overrides.vars))
	for k, v := range e.vars {
		merged[k] = v
	}
	for k, v := range overrides.vars {
		merged[k] = v
	}
	return Environment{vars: merged}
}

// Lookup returns the value of key and whether it is set.
func (e Environment) Lookup(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

// Equals reports whether key is set and equal to value. An unset variable
// never equals anything, including the empty string.
func (e Environment) Equals(key, value string) bool {
	v, ok := e.vars[key]
	return ok && v == value
}

// Keys returns the set variable names in sorted order.
func (e Environment) Keys() []string {
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
