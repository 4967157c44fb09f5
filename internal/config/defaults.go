package config

import (
	"fmt"

	"github.com/wizzomafizzo/flatlint/internal/environment"
	"github.com/wizzomafizzo/flatlint/internal/plugin"
	"gopkg.in/yaml.v3"
)

// DefaultConfig returns the stock TypeScript configuration
func DefaultConfig() *Config {
	return &Config{
		Blocks: []Block{
			{
				Ignores: []string{
					"dist",
					"node_modules",
					"coverage",
					"build",
					"public",
					"deploy",
					"dependency-check-bin",
					"logs",
				},
			},
			{
				Name:  "typescript",
				Files: []string{"**/*.ts"},
				LanguageOptions: &LanguageOptions{
					EcmaVersion: "latest",
					SourceType:  "module",
					Parser:      plugin.TypeScriptParser,
				},
				Plugins: map[string]string{
					"@typescript-eslint": plugin.TypeScriptPlugin,
					"prettier":           plugin.PrettierPlugin,
					"js":                 plugin.JSPlugin,
					"import":             plugin.ImportPlugin,
				},
				Rules: map[string]any{
					"prettier/prettier":                  "error",
					"@typescript-eslint/no-explicit-any": "warn",
					"no-console": map[string]any{
						"when": map[string]any{
							"env":    environment.NodeEnv,
							"equals": environment.Production,
						},
						"then": "warn",
						"else": "off",
					},
				},
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     30,
		},
	}
}

// DefaultConfigYAML returns the default configuration as YAML bytes
func DefaultConfigYAML() ([]byte, error) {
	config := DefaultConfig()
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal default config to YAML: %w", err)
	}
	return data, nil
}
