// Package config loads the optional gh-tidy-annotate configuration file.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/githubnext/gh-tidy-annotate/pkg/tidy"
)

//go:embed schemas/config_schema.json
var configSchema string

// Config is the content of a .tidy-annotate.yml file
type Config struct {
	IgnoreChecks []string `yaml:"ignore-checks"`
	IgnorePaths  []string `yaml:"ignore-paths"`
	Summary      bool     `yaml:"summary"`
}

// Filter returns the annotation filter described by the config
func (c *Config) Filter() tidy.Filter {
	return tidy.Filter{
		IgnoreChecks: c.IgnoreChecks,
		IgnorePaths:  c.IgnorePaths,
	}
}

// Load reads and validates a config file. An empty path yields the zero config.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(content)
}

// Parse validates YAML config content against the config schema and decodes it
func Parse(content []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateWithSchema(content, raw); err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Filter().Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validateWithSchema validates decoded YAML against the embedded JSON schema.
// Validation failures are returned as *Error pointing into content.
func validateWithSchema(content []byte, raw map[string]any) error {
	compiler := jsonschema.NewCompiler()

	var schemaDoc any
	if err := json.Unmarshal([]byte(configSchema), &schemaDoc); err != nil {
		return fmt.Errorf("failed to parse config schema: %w", err)
	}

	schemaURL := "http://gh-tidy-annotate/config.json"
	if err := compiler.AddResource(schemaURL, schemaDoc); err != nil {
		return fmt.Errorf("failed to add config schema resource: %w", err)
	}

	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("failed to compile config schema: %w", err)
	}

	// An empty file decodes to nil; validate it as an empty object.
	// A JSON round trip normalizes YAML integer types for the validator.
	if raw == nil {
		raw = make(map[string]any)
	}
	rawJSON, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(rawJSON, &normalized); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := schema.Validate(normalized); err != nil {
		return &Error{
			Position: locateSchemaError(content, err),
			Message:  "invalid config: " + cleanSchemaError(err.Error()),
		}
	}
	return nil
}

// cleanSchemaError drops the jsonschema header line that repeats the schema URL
func cleanSchemaError(message string) string {
	lines := strings.Split(message, "\n")
	var kept []string
	for _, line := range lines {
		if strings.HasPrefix(line, "jsonschema validation failed") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "- "))
		if line != "" {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		return message
	}
	return strings.Join(kept, "; ")
}
