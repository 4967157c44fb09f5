package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var supportedFormats = []string{"yaml", "yml", "json", "toml"}

// Config is an ordered list of blocks. Blocks that carry only ignores form the
// global ignore set; every other block selects files and assigns rules.
type Config struct {
	Blocks  []Block       `yaml:"blocks" mapstructure:"blocks"`
	Logging LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
}

type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`
	MaxSize    int    `yaml:"max_size,omitempty" mapstructure:"max_size"`
	MaxBackups int    `yaml:"max_backups,omitempty" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age,omitempty" mapstructure:"max_age"`
}

type Block struct {
	Name            string            `yaml:"name,omitempty" mapstructure:"name"`
	Files           []string          `yaml:"files,omitempty" mapstructure:"files"`
	Ignores         []string          `yaml:"ignores,omitempty" mapstructure:"ignores"`
	LanguageOptions *LanguageOptions  `yaml:"languageOptions,omitempty" mapstructure:"languageOptions"`
	Plugins         map[string]string `yaml:"plugins,omitempty" mapstructure:"plugins"`
	Rules           map[string]any    `yaml:"rules,omitempty" mapstructure:"rules"`
}

// LanguageOptions describes how the external engine should parse matched files.
type LanguageOptions struct {
	EcmaVersion string `yaml:"ecmaVersion,omitempty" mapstructure:"ecmaVersion"`
	SourceType  string `yaml:"sourceType,omitempty" mapstructure:"sourceType"`
	Parser      string `yaml:"parser,omitempty" mapstructure:"parser"`
}

// IsGlobalIgnore reports whether the block only lists ignores. Such blocks
// exclude matching paths from all processing.
func (b *Block) IsGlobalIgnore() bool {
	return len(b.Ignores) > 0 &&
		len(b.Files) == 0 &&
		len(b.Rules) == 0 &&
		len(b.Plugins) == 0 &&
		b.LanguageOptions == nil
}

// Label returns the block name, or a positional label when unnamed.
func (b *Block) Label(index int) string {
	if b.Name != "" {
		return b.Name
	}
	return fmt.Sprintf("block %d", index+1)
}

// GlobalIgnores returns the ignore patterns of all global-ignore blocks in
// declaration order.
func (c *Config) GlobalIgnores() []string {
	var ignores []string
	for i := range c.Blocks {
		if c.Blocks[i].IsGlobalIgnore() {
			ignores = append(ignores, c.Blocks[i].Ignores...)
		}
	}
	return ignores
}

// Load reads a YAML, TOML or JSON config file. The format follows the
// file extension.
func Load(path string) (*Config, error) {
	return LoadFromFs(afero.NewOsFs(), path)
}

// LoadFromFs is Load against an arbitrary filesystem.
func LoadFromFs(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return load(data, format)
}

// LoadFromYAML loads config from YAML bytes - helper for tests
func LoadFromYAML(data []byte) (*Config, error) {
	return load(data, "yaml")
}

func load(data []byte, format string) (*Config, error) {
	if !slices.Contains(supportedFormats, format) {
		return nil, fmt.Errorf("failed to read config: unsupported format '%s' (must be one of: %s)",
			format, strings.Join(supportedFormats, ", "))
	}

	viperInstance := viper.New()
	viperInstance.SetConfigType(format)
	if err := viperInstance.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viperInstance.UnmarshalKey("logging", &config.Logging); err != nil {
		return nil, fmt.Errorf("failed to unmarshal logging config: %w", err)
	}

	// viper folds keys to lower case; rule and plugin names are case-sensitive
	blocks, err := decodeBlocks(data, format)
	if err != nil {
		return nil, err
	}
	config.Blocks = blocks

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// decodeBlocks decodes the blocks list with map keys exactly as written.
func decodeBlocks(data []byte, format string) ([]Block, error) {
	raw := map[string]any{}
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	default:
		// JSON is a subset of YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	var blocks []Block
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &blocks,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create config decoder: %w", err)
	}
	if err := decoder.Decode(raw["blocks"]); err != nil {
		return nil, fmt.Errorf("failed to unmarshal blocks: %w", err)
	}
	return blocks, nil
}

// Save writes the config as YAML.
func (c *Config) Save(fs afero.Fs, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(fs, path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config to %s: %w", path, err)
	}
	return nil
}
