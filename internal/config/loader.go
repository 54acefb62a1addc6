package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables read by Load itself.
const (
	EnvPrefix  = "TALLY_"
	EnvConfig  = EnvPrefix + "CONFIG"
	EnvEnvFile = EnvPrefix + "ENV_FILE"

	defaultEnvFile = ".env"
)

// LoadOption adjusts where Load looks for its layers.
type LoadOption func(*loadOptions)

type loadOptions struct {
	configFile string
	envFile    string
}

// WithConfigFile sets the YAML config path, taking precedence over TALLY_CONFIG.
func WithConfigFile(path string) LoadOption {
	return func(o *loadOptions) {
		if path != "" {
			o.configFile = path
		}
	}
}

// WithEnvFile sets the dotenv path, taking precedence over TALLY_ENV_FILE.
func WithEnvFile(path string) LoadOption {
	return func(o *loadOptions) {
		if path != "" {
			o.envFile = path
		}
	}
}

// Load builds a Config by layering defaults, optional file, dotenv file and
// env vars. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if TALLY_CONFIG or WithConfigFile is set
//  3. dotenv file (TALLY_ENV_FILE, default .env); a missing file is skipped
//  4. env (prefix TALLY_)
func Load(ctx context.Context, opts ...LoadOption) (*Config, error) {
	o := loadOptions{
		configFile: os.Getenv(EnvConfig),
		envFile:    os.Getenv(EnvEnvFile),
	}
	if o.envFile == "" {
		o.envFile = defaultEnvFile
	}
	for _, opt := range opts {
		opt(&o)
	}

	base := New()
	k := koanf.New(".")

	if o.configFile != "" {
		if err := k.Load(file.Provider(o.configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, o.configFile, err)
		}
	}

	if err := k.Load(dotenvProvider(o.envFile), nil); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, o.envFile, err)
	}

	// TALLY_RECORDS_FILE -> records_file (flat keys, underscores kept).
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	// Slices decode element-wise over the existing value; start from empty
	// so a shorter list replaces the defaults.
	if k.Exists("subjects") {
		cfg.Subjects = nil
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(ctx); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKeyValue maps TALLY_SUBJECTS=Jenkins,AWS to subjects=[Jenkins AWS] and
// any other TALLY_X=v to x=v.
func envKeyValue(key, value string) (string, interface{}) {
	key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
	if key == "subjects" {
		return key, splitList(value)
	}
	return key, value
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// dotenvProvider reads TALLY_ keys from a dotenv file without touching the
// process environment.
type dotenvProvider string

func (p dotenvProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("config: dotenv provider does not support ReadBytes")
}

func (p dotenvProvider) Read() (map[string]interface{}, error) {
	vars, err := godotenv.Read(string(p))
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]interface{}{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := make(map[string]interface{}, len(vars))
	for key, value := range vars {
		if !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		k, v := envKeyValue(key, value)
		out[k] = v
	}
	return out, nil
}
