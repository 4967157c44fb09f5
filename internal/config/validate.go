package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/wizzomafizzo/flatlint/internal/matcher"
	"github.com/wizzomafizzo/flatlint/internal/severity"
)

// Load-time failures. All of them are fatal.
var (
	ErrInvalidGlob            = matcher.ErrInvalidGlob
	ErrUnknownSeverity        = severity.ErrUnknownSeverity
	ErrEmptyBlock             = errors.New("block must list files or ignores")
	ErrInvalidLanguageOptions = errors.New("invalid language options")
	ErrInvalidPlugin          = errors.New("invalid plugin binding")
)

var validSourceTypes = map[string]bool{
	"module":   true,
	"script":   true,
	"commonjs": true,
}

// Validate checks every block and reports all problems at once.
func (c *Config) Validate() error {
	if len(c.Blocks) == 0 {
		return errors.New("config must contain at least one block")
	}

	var errs []error
	for i := range c.Blocks {
		if err := c.Blocks[i].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s validation failed: %w", c.Blocks[i].Label(i), err))
		}
	}
	return errors.Join(errs...)
}

// Validate performs block-level validation
func (b *Block) Validate() error {
	if len(b.Files) == 0 && len(b.Ignores) == 0 {
		return ErrEmptyBlock
	}
	if len(b.Files) == 0 && !b.IsGlobalIgnore() {
		return fmt.Errorf("%w: rules, plugins and language options need a files list", ErrEmptyBlock)
	}

	if _, err := matcher.CompileFileSet(b.Files); err != nil {
		return fmt.Errorf("files: %w", err)
	}
	if _, err := matcher.CompileIgnoreSet(b.Ignores); err != nil {
		return fmt.Errorf("ignores: %w", err)
	}

	if _, err := b.RuleSettings(); err != nil {
		return err
	}

	for name, ref := range b.Plugins {
		if name == "" || ref == "" {
			return fmt.Errorf("%w: '%s' -> '%s'", ErrInvalidPlugin, name, ref)
		}
	}

	if b.LanguageOptions != nil {
		if err := b.LanguageOptions.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks sourceType and ecmaVersion.
func (o *LanguageOptions) Validate() error {
	if o.SourceType != "" && !validSourceTypes[o.SourceType] {
		return fmt.Errorf("%w: sourceType '%s' must be one of: module, script, commonjs",
			ErrInvalidLanguageOptions, o.SourceType)
	}

	if o.EcmaVersion == "" || o.EcmaVersion == "latest" {
		return nil
	}
	version, err := strconv.Atoi(o.EcmaVersion)
	if err != nil || !validEcmaVersion(version) {
		return fmt.Errorf("%w: ecmaVersion '%s' must be 'latest', 3, 5, 6-17 or 2015 and later",
			ErrInvalidLanguageOptions, o.EcmaVersion)
	}
	return nil
}

func validEcmaVersion(v int) bool {
	return v == 3 || v == 5 || (v >= 6 && v <= 17) || v >= 2015
}
