// Package resolver decides, for a candidate path, whether it is excluded and
// which block, rule severities, language options and plugin handles apply.
//
// A Resolver is built once from a validated configuration and an explicit
// environment snapshot. Conditional severities are evaluated at construction,
// so Resolve is a pure lookup that is safe for concurrent use.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/wizzomafizzo/flatlint/internal/config"
	"github.com/wizzomafizzo/flatlint/internal/environment"
	"github.com/wizzomafizzo/flatlint/internal/logging"
	"github.com/wizzomafizzo/flatlint/internal/matcher"
	"github.com/wizzomafizzo/flatlint/internal/plugin"
	"github.com/wizzomafizzo/flatlint/internal/severity"
)

// Options contains the inputs a Resolver is built from besides the config
type Options struct {
	// Environment is consulted once, while conditional severities are evaluated.
	Environment environment.Environment
	// Registry binds parser and plugin references. When nil, references are
	// passed through as unresolved handles.
	Registry *plugin.Registry
	// BaseDir anchors patterns. Absolute paths outside it never match.
	BaseDir string
}

// Resolver is immutable after New.
type Resolver struct {
	logger  *zerolog.Logger
	ignores *matcher.Set
	baseDir string
	blocks  []compiledBlock
}

type compiledBlock struct {
	languageOptions *config.LanguageOptions
	parser          plugin.Handle
	files           *matcher.Set
	ignores         *matcher.Set
	plugins         map[string]plugin.Handle
	rules           map[string]severity.Severity
	ruleOptions     map[string][]any
	label           string
	conditional     []string
}

// New compiles cfg into a Resolver.
func New(ctx context.Context, cfg *config.Config, opts Options) (*Resolver, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	ignores, err := matcher.CompileIgnoreSet(cfg.GlobalIgnores())
	if err != nil {
		return nil, fmt.Errorf("failed to compile ignores: %w", err)
	}

	r := &Resolver{
		logger:  logging.Get(ctx),
		ignores: ignores,
		baseDir: opts.BaseDir,
	}

	var conditional int
	for i := range cfg.Blocks {
		block := &cfg.Blocks[i]
		if block.IsGlobalIgnore() {
			continue
		}

		compiled, err := compileBlock(block, i, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", block.Label(i), err)
		}
		conditional += len(compiled.conditional)
		r.blocks = append(r.blocks, compiled)
	}

	r.logger.Debug().
		Int("blocks", len(r.blocks)).
		Int("ignores", ignores.Len()).
		Int("conditional_rules", conditional).
		Str("base_dir", opts.BaseDir).
		Msg("resolver ready")

	return r, nil
}

func compileBlock(block *config.Block, index int, opts Options) (compiledBlock, error) {
	files, err := matcher.CompileFileSet(block.Files)
	if err != nil {
		return compiledBlock{}, fmt.Errorf("files: %w", err)
	}
	localIgnores, err := matcher.CompileIgnoreSet(block.Ignores)
	if err != nil {
		return compiledBlock{}, fmt.Errorf("ignores: %w", err)
	}

	settings, err := block.RuleSettings()
	if err != nil {
		return compiledBlock{}, err //nolint:wrapcheck // already names the rule
	}

	compiled := compiledBlock{
		label:       block.Label(index),
		files:       files,
		ignores:     localIgnores,
		rules:       make(map[string]severity.Severity, len(settings)),
		ruleOptions: make(map[string][]any),
		plugins:     make(map[string]plugin.Handle, len(block.Plugins)),
	}

	for name, setting := range settings {
		compiled.rules[name] = setting.Evaluate(opts.Environment)
		if setting.Conditional() {
			compiled.conditional = append(compiled.conditional, name)
		}
		if len(setting.Options) > 0 {
			compiled.ruleOptions[name] = setting.Options
		}
	}
	sort.Strings(compiled.conditional)

	if block.LanguageOptions != nil {
		languageOptions := *block.LanguageOptions
		compiled.languageOptions = &languageOptions

		if languageOptions.Parser != "" {
			compiled.parser, err = bind(opts.Registry, languageOptions.Parser, plugin.KindParser)
			if err != nil {
				return compiledBlock{}, fmt.Errorf("parser: %w", err)
			}
		}
	}

	for name, ref := range block.Plugins {
		handle, err := bind(opts.Registry, ref, plugin.KindPlugin)
		if err != nil {
			return compiledBlock{}, fmt.Errorf("plugin '%s': %w", name, err)
		}
		compiled.plugins[name] = handle
	}

	return compiled, nil
}

func bind(registry *plugin.Registry, ref string, kind plugin.Kind) (plugin.Handle, error) {
	if registry == nil {
		return plugin.Unresolved(ref, kind), nil
	}
	handle, err := registry.LookupKind(ref, kind)
	if err != nil {
		return nil, err //nolint:wrapcheck // registry errors carry the reference
	}
	return handle, nil
}

// Resolve returns the resolution for path. It never fails: a path that no
// block matches yields an empty rule set.
func (r *Resolver) Resolve(path string) Result {
	result := Result{Path: path, Rules: map[string]severity.Severity{}}

	normalized, ok := matcher.NormalizePath(r.baseDir, path)
	if !ok {
		r.logger.Trace().Str("path", path).Msg("path outside base directory")
		return result
	}

	if pattern, excluded := r.ignores.Match(normalized); excluded {
		r.logger.Trace().Str("path", normalized).Str("pattern", pattern.String()).Msg("path excluded")
		result.Excluded = true
		result.IgnoredBy = pattern.String()
		return result
	}

	for i := range r.blocks {
		block := &r.blocks[i]
		if _, matched := block.files.Match(normalized); !matched {
			continue
		}
		if _, ignored := block.ignores.Match(normalized); ignored {
			continue
		}

		r.logger.Trace().Str("path", normalized).Str("block", block.label).Msg("block selected")
		block.materialize(&result)
		return result
	}

	r.logger.Trace().Str("path", normalized).Msg("no block matched")
	return result
}

// ResolveAll resolves paths in order.
func (r *Resolver) ResolveAll(paths []string) []Result {
	results := make([]Result, len(paths))
	for i, path := range paths {
		results[i] = r.Resolve(path)
	}
	return results
}

func (b *compiledBlock) materialize(result *Result) {
	result.Matched = true
	result.Block = b.label

	for name, sev := range b.rules {
		result.Rules[name] = sev
	}
	if len(b.ruleOptions) > 0 {
		result.RuleOptions = make(map[string][]any, len(b.ruleOptions))
		for name, options := range b.ruleOptions {
			result.RuleOptions[name] = append([]any(nil), options...)
		}
	}
	if b.languageOptions != nil {
		languageOptions := *b.languageOptions
		result.LanguageOptions = &languageOptions
	}
	result.Parser = b.parser
	if len(b.plugins) > 0 {
		result.Plugins = make(map[string]plugin.Handle, len(b.plugins))
		for name, handle := range b.plugins {
			result.Plugins[name] = handle
		}
	}
}

// Blocks summarizes the compiled file blocks in declaration order.
func (r *Resolver) Blocks() []BlockSummary {
	summaries := make([]BlockSummary, len(r.blocks))
	for i := range r.blocks {
		block := &r.blocks[i]
		rules := make(map[string]severity.Severity, len(block.rules))
		for name, sev := range block.rules {
			rules[name] = sev
		}
		summaries[i] = BlockSummary{
			Label:       block.label,
			Files:       block.files.Patterns(),
			Ignores:     block.ignores.Patterns(),
			Rules:       rules,
			Conditional: append([]string(nil), block.conditional...),
		}
	}
	return summaries
}

// Ignores returns the global ignore patterns in declaration order.
func (r *Resolver) Ignores() []string {
	return r.ignores.Patterns()
}
