// Package config loads gopeek CLI settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "GOPEEK_CONFIG"

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config contains the CLI configuration.
type Config struct {
	// ChunkSize is the read size used while scanning for a string terminator.
	ChunkSize int `yaml:"chunk_size" env:"GOPEEK_CHUNK_SIZE"`

	// MaxCString bounds string scans; 0 means unbounded.
	MaxCString int `yaml:"max_cstring" env:"GOPEEK_MAX_CSTRING"`

	// Color is one of auto, always, never.
	Color string `yaml:"color" env:"GOPEEK_COLOR"`

	Hexdump HexdumpConfig `yaml:"hexdump"`
}

// HexdumpConfig controls the layout of `gopeek bytes` output.
type HexdumpConfig struct {
	BytesPerLine int `yaml:"bytes_per_line" env:"GOPEEK_BYTES_PER_LINE"`
	GroupSize    int `yaml:"group_size" env:"GOPEEK_GROUP_SIZE"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		ChunkSize:  32,
		MaxCString: 0,
		Color:      ColorAuto,
		Hexdump: HexdumpConfig{
			BytesPerLine: 16,
			GroupSize:    1,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (or
// $GOPEEK_CONFIG when path is empty), then environment overrides. A missing
// file is only an error when a path was given explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfigPath)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := LoadFromEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.ChunkSize < 1 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.MaxCString < 0 {
		return fmt.Errorf("max_cstring must not be negative, got %d", c.MaxCString)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of auto, always, never, got %q", c.Color)
	}
	if c.Hexdump.BytesPerLine < 1 {
		return fmt.Errorf("hexdump.bytes_per_line must be positive, got %d", c.Hexdump.BytesPerLine)
	}
	if c.Hexdump.GroupSize < 1 || c.Hexdump.GroupSize > c.Hexdump.BytesPerLine {
		return fmt.Errorf("hexdump.group_size must be between 1 and bytes_per_line, got %d", c.Hexdump.GroupSize)
	}
	return nil
}

// LoadFromEnv overrides fields tagged with `env` from the environment.
// Nested structs are walked recursively.
func LoadFromEnv(cfg interface{}) error {
	return loadFromEnv(reflect.ValueOf(cfg))
}

func loadFromEnv(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			if err := loadFromEnv(field); err != nil {
				return err
			}
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}

		envValue := os.Getenv(envTag)
		if envValue == "" {
			continue
		}

		if err := setFieldValue(field, envValue, envTag); err != nil {
			return err
		}
	}

	return nil
}

func setFieldValue(field reflect.Value, value string, envVar string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(value, 0, 64)
		if err != nil {
			return fmt.Errorf("invalid integer in %s: %w", envVar, err)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean in %s: %w", envVar, err)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type %s for %s", field.Kind(), envVar)
	}
	return nil
}
