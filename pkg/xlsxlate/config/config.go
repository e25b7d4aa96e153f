// Package config loads translation service settings from a YAML file and
// the environment.
//
// API key lookup order:
//  1. --api-key flag (highest priority)
//  2. XLSXLATE_API_KEY environment variable
//  3. ZHIPU_API_KEY environment variable
//  4. api_key in the config file
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/gateway"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = ".xlsxlate.yaml"

// Environment variables consulted for the API key, in order.
var apiKeyEnv = []string{"XLSXLATE_API_KEY", "ZHIPU_API_KEY"}

// ErrMissingAPIKey indicates no credential was configured.
var ErrMissingAPIKey = errors.New("API key not configured (set XLSXLATE_API_KEY or ZHIPU_API_KEY)")

// Config is the .xlsxlate.yaml structure.
type Config struct {
	// BaseURL is the OpenAI-compatible endpoint.
	BaseURL string `yaml:"base_url,omitempty"`
	// APIKey is the credential. Prefer the environment.
	APIKey string `yaml:"api_key,omitempty"`
	// Model is the model identifier.
	Model string `yaml:"model,omitempty"`
	// Temperature is the sampling temperature.
	Temperature *float64 `yaml:"temperature,omitempty"`
	// TopP is the nucleus-sampling cutoff.
	TopP *float64 `yaml:"top_p,omitempty"`
	// Interval is the minimum spacing between calls, e.g. "400ms".
	Interval *time.Duration `yaml:"interval,omitempty"`
	// Timeout bounds a single call, e.g. "60s".
	Timeout time.Duration `yaml:"timeout,omitempty"`
	// SystemPrompt overrides the instruction template.
	SystemPrompt string `yaml:"system_prompt,omitempty"`
	// Terms overrides the preserved terminology.
	Terms []string `yaml:"terms,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	temp, topP, interval := gateway.DefaultTemperature, gateway.DefaultTopP, gateway.DefaultInterval
	return &Config{
		BaseURL:     gateway.DefaultBaseURL,
		Model:       gateway.DefaultModel,
		Temperature: &temp,
		TopP:        &topP,
		Interval:    &interval,
		Timeout:     60 * time.Second,
		Terms:       append([]string(nil), gateway.DefaultTerms...),
	}
}

// Load reads a config file over the defaults. An empty path looks for
// FileName in the working directory; a missing default file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = FileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	cfg.merge(&file)
	return cfg, nil
}

func (c *Config) merge(o *Config) {
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.APIKey != "" {
		c.APIKey = o.APIKey
	}
	if o.Model != "" {
		c.Model = o.Model
	}
	if o.Temperature != nil {
		c.Temperature = o.Temperature
	}
	if o.TopP != nil {
		c.TopP = o.TopP
	}
	if o.Interval != nil {
		c.Interval = o.Interval
	}
	if o.Timeout > 0 {
		c.Timeout = o.Timeout
	}
	if o.SystemPrompt != "" {
		c.SystemPrompt = o.SystemPrompt
	}
	if len(o.Terms) > 0 {
		c.Terms = o.Terms
	}
}

// ResolveAPIKey returns the first non-empty key from flag, environment and
// file, or ErrMissingAPIKey.
func (c *Config) ResolveAPIKey(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	for _, name := range apiKeyEnv {
		if v := os.Getenv(name); v != "" {
			return v, nil
		}
	}
	if c.APIKey != "" {
		return c.APIKey, nil
	}
	return "", ErrMissingAPIKey
}

// GatewayOptions maps the config onto gateway options.
func (c *Config) GatewayOptions(verbose bool) gateway.Options {
	interval := gateway.DefaultInterval
	if c.Interval != nil {
		interval = *c.Interval
	}
	return gateway.Options{
		Model:       c.Model,
		Temperature: c.Temperature,
		TopP:        c.TopP,
		Instruction: c.SystemPrompt,
		Terms:       c.Terms,
		Pacer:       gateway.NewPacer(interval),
		Timeout:     c.Timeout,
		Verbose:     verbose,
	}
}

// NewGateway builds a gateway backed by the configured endpoint.
func (c *Config) NewGateway(apiKey string, verbose bool) *gateway.Gateway {
	capability := gateway.NewOpenAICapability(apiKey, c.BaseURL)
	return gateway.New(capability, c.GatewayOptions(verbose))
}
