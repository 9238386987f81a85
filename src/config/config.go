package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Protocol-Lattice/go-attach/src/attachments"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	envLogLevel         = "ATTACH_LOG_LEVEL"
	envProvider         = "ATTACH_PROVIDER"
	envModel            = "ATTACH_MODEL"
	envPromptPrefix     = "ATTACH_PROMPT_PREFIX"
	envMaxEncodedLength = "ATTACH_MAX_ENCODED_LENGTH"
	envAllowedMIMETypes = "ATTACH_ALLOWED_MIME_TYPES"
	envDecodeWorkers    = "ATTACH_DECODE_WORKERS"
	envDecodeCacheSize  = "ATTACH_DECODE_CACHE_SIZE"
	envLegacyGrammar    = "ATTACH_LEGACY_MARKER_GRAMMAR"
)

// Config is the process configuration for the gateway and CLI.
type Config struct {
	LogLevel         string   `yaml:"log_level"`
	Provider         string   `yaml:"provider"`
	Model            string   `yaml:"model"`
	PromptPrefix     string   `yaml:"prompt_prefix"`
	MaxEncodedLength int      `yaml:"max_encoded_length"`
	AllowedMIMETypes []string `yaml:"allowed_mime_types"`
	DecodeWorkers    int      `yaml:"decode_workers"`
	DecodeCacheSize  int      `yaml:"decode_cache_size"`
	LegacyGrammar    bool     `yaml:"legacy_marker_grammar"`
}

// Default returns the built-in configuration.
func Default() Config {
	core := attachments.DefaultConfig()
	return Config{
		LogLevel:         "INFO",
		Provider:         "dummy",
		MaxEncodedLength: core.MaxEncodedLength,
		AllowedMIMETypes: core.AllowedMIMETypes,
		DecodeWorkers:    4,
		DecodeCacheSize:  64,
	}
}

// Attachments projects the limits onto the core package's Config.
func (c Config) Attachments() attachments.Config {
	return attachments.Config{
		MaxEncodedLength: c.MaxEncodedLength,
		AllowedMIMETypes: append([]string(nil), c.AllowedMIMETypes...),
		LegacyGrammar:    c.LegacyGrammar,
	}
}

// Load builds a Config from defaults, then the YAML file at path (if any),
// then the .env file at envFile (if any), then the process environment.
func Load(path, envFile string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}
	if err := cfg.mergeEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(envLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(envProvider); ok && v != "" {
		c.Provider = v
	}
	if v, ok := lookup(envModel); ok && v != "" {
		c.Model = v
	}
	if v, ok := lookup(envPromptPrefix); ok {
		c.PromptPrefix = v
	}
	if err := lookupInt(lookup, envMaxEncodedLength, &c.MaxEncodedLength); err != nil {
		return err
	}
	if v, ok := lookup(envAllowedMIMETypes); ok && v != "" {
		c.AllowedMIMETypes = splitCSV(v)
	}
	if err := lookupInt(lookup, envDecodeWorkers, &c.DecodeWorkers); err != nil {
		return err
	}
	if err := lookupInt(lookup, envDecodeCacheSize, &c.DecodeCacheSize); err != nil {
		return err
	}
	if v, ok := lookup(envLegacyGrammar); ok && v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", envLegacyGrammar, err)
		}
		c.LegacyGrammar = b
	}
	return nil
}

// Validate rejects limits that cannot be applied.
func (c Config) Validate() error {
	if c.MaxEncodedLength <= 0 {
		return fmt.Errorf("max_encoded_length must be positive, got %d", c.MaxEncodedLength)
	}
	if c.DecodeWorkers < 0 {
		return fmt.Errorf("decode_workers must not be negative, got %d", c.DecodeWorkers)
	}
	if c.DecodeCacheSize < 0 {
		return fmt.Errorf("decode_cache_size must not be negative, got %d", c.DecodeCacheSize)
	}
	return nil
}

func lookupInt(lookup func(string) (string, bool), key string, dst *int) error {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
