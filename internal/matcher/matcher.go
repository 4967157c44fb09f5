// Package matcher compiles and evaluates the path globs used by ignore
// lists and file-matching blocks.
package matcher

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

var ErrInvalidGlob = errors.New("invalid glob pattern")

const separator = '/'

// Pattern is a compiled glob. A single source pattern may expand to several
// engine globs; the pattern matches when any of them does.
type Pattern struct {
	source string
	globs  []glob.Glob
}

// CompileFile compiles a file-matching glob. A "**/" segment also matches
// zero directories, so "**/*.ts" matches "index.ts" and "src/**/*.ts"
// matches "src/index.ts".
func CompileFile(pattern string) (*Pattern, error) {
	cleaned, err := clean(pattern)
	if err != nil {
		return nil, err
	}

	return compile(pattern, expandGlobstars(cleaned))
}

// CompileIgnore compiles an ignore glob. Ignore patterns match the entry they
// name and everything beneath it. A trailing slash restricts the pattern to
// what is beneath the directory.
func CompileIgnore(pattern string) (*Pattern, error) {
	if strings.HasPrefix(strings.TrimSpace(pattern), "!") {
		return nil, fmt.Errorf("%w '%s': negated ignore patterns are not supported", ErrInvalidGlob, pattern)
	}

	dirOnly := strings.HasSuffix(strings.TrimSpace(pattern), "/")

	cleaned, err := clean(pattern)
	if err != nil {
		return nil, err
	}

	var expansions []string
	for _, expansion := range expandGlobstars(cleaned) {
		if !dirOnly {
			expansions = append(expansions, expansion)
		}
		if expansion != "**" {
			expansions = append(expansions, expansion+"/**")
		}
	}

	return compile(pattern, expansions)
}

// expandGlobstars returns pattern plus every variant in which a "**/"
// segment matches zero directories. The engine requires the "/" after "**"
// literally, so those variants are compiled separately.
func expandGlobstars(pattern string) []string {
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok && rest != "" {
		var out []string
		for _, tail := range expandGlobstars(rest) {
			out = append(out, "**/"+tail, tail)
		}
		return out
	}

	head, tail, found := strings.Cut(pattern, "/**/")
	if !found {
		return []string{pattern}
	}
	var out []string
	for _, rest := range expandGlobstars("**/" + tail) {
		out = append(out, head+"/"+rest)
	}
	return out
}

func clean(pattern string) (string, error) {
	trimmed := strings.TrimSpace(pattern)
	trimmed = strings.TrimPrefix(trimmed, "./")
	trimmed = strings.TrimPrefix(trimmed, "/")
	trimmed = strings.TrimRight(trimmed, "/")
	if trimmed == "" {
		return "", fmt.Errorf("%w '%s': pattern is empty", ErrInvalidGlob, pattern)
	}
	return trimmed, nil
}

func compile(source string, expansions []string) (*Pattern, error) {
	globs := make([]glob.Glob, 0, len(expansions))
	for _, expansion := range expansions {
		g, err := glob.Compile(expansion, separator)
		if err != nil {
			return nil, fmt.Errorf("%w '%s': %w", ErrInvalidGlob, source, err)
		}
		globs = append(globs, g)
	}
	return &Pattern{source: source, globs: globs}, nil
}

// Match reports whether the normalized path matches the pattern.
func (p *Pattern) Match(name string) bool {
	for _, g := range p.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

func (p *Pattern) String() string {
	return p.source
}

// Set is an ordered list of patterns. The first match wins.
type Set struct {
	patterns []*Pattern
}

// CompileFileSet compiles each pattern with CompileFile.
func CompileFileSet(patterns []string) (*Set, error) {
	return compileSet(patterns, CompileFile)
}

// CompileIgnoreSet compiles each pattern with CompileIgnore.
func CompileIgnoreSet(patterns []string) (*Set, error) {
	return compileSet(patterns, CompileIgnore)
}

func compileSet(patterns []string, compileFn func(string) (*Pattern, error)) (*Set, error) {
	set := &Set{patterns: make([]*Pattern, 0, len(patterns))}
	for i, pattern := range patterns {
		compiled, err := compileFn(pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i+1, err)
		}
		set.patterns = append(set.patterns, compiled)
	}
	return set, nil
}

// Match returns the first pattern matching name.
func (s *Set) Match(name string) (*Pattern, bool) {
	if s == nil {
		return nil, false
	}
	for _, p := range s.patterns {
		if p.Match(name) {
			return p, true
		}
	}
	return nil, false
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// Patterns returns the source patterns in declaration order.
func (s *Set) Patterns() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.patterns))
	for i, p := range s.patterns {
		out[i] = p.source
	}
	return out
}

// NormalizePath converts name into the slash-separated, base-relative form
// patterns are matched against. It returns false when name lies outside base.
func NormalizePath(base, name string) (string, bool) {
	if name == "" {
		return "", false
	}

	if filepath.IsAbs(name) && base != "" {
		rel, err := filepath.Rel(base, name)
		if err != nil {
			return "", false
		}
		name = rel
	}

	normalized := path.Clean(filepath.ToSlash(name))
	if normalized == ".." || strings.HasPrefix(normalized, "../") {
		return "", false
	}
	if normalized == "." {
		return "", false
	}
	return normalized, true
}
