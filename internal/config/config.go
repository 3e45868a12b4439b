// Package config loads dlfcheck settings from defaults, an optional TOML
// file and DLFCHECK_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Cache   CacheConfig   `toml:"cache"`
	Secret  SecretConfig  `toml:"secret"`
	URN     URNConfig     `toml:"urn"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type StorageConfig struct {
	File           string `toml:"file"`
	DynamoTable    string `toml:"dynamodb_table"`
	DynamoEndpoint string `toml:"dynamodb_endpoint"`
	S3Bucket       string `toml:"s3_bucket"`
	S3Key          string `toml:"s3_key"`
}

type CacheConfig struct {
	TTL     Duration `toml:"ttl"`
	Cleanup Duration `toml:"cleanup"`
}

type SecretConfig struct {
	EncryptionKey string `toml:"encryption_key"`
}

// URNConfig holds the namespace prepended to bare identifiers
type URNConfig struct {
	Namespace string `toml:"namespace"`
}

// Duration wraps time.Duration so it can be written as "5m" in TOML
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Storage: StorageConfig{
			S3Key: "records.json",
		},
		Cache: CacheConfig{
			TTL:     Duration{5 * time.Minute},
			Cleanup: Duration{10 * time.Minute},
		},
		URN: URNConfig{Namespace: "urn:nbn:de:"},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		var fromFile Config
		if _, err := toml.DecodeFile(path, &fromFile); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := mergo.Merge(&cfg, fromFile, mergo.WithOverride); err != nil {
			return Config{}, fmt.Errorf("failed to merge config file %s: %w", path, err)
		}
	}

	if err := mergo.Merge(&cfg, fromEnv(), mergo.WithOverride); err != nil {
		return Config{}, fmt.Errorf("failed to merge environment config: %w", err)
	}

	return cfg, nil
}

// fromEnv collects overrides from the environment; unset variables stay zero
// so they do not override anything
func fromEnv() Config {
	var cfg Config
	cfg.Server.Addr = os.Getenv("DLFCHECK_ADDR")
	cfg.Storage.File = os.Getenv("DLFCHECK_FILE")
	cfg.Storage.DynamoTable = os.Getenv("DYNAMODB_TABLE")
	cfg.Storage.DynamoEndpoint = os.Getenv("DYNAMODB_ENDPOINT")
	cfg.Storage.S3Bucket = os.Getenv("DLFCHECK_S3_BUCKET")
	cfg.Storage.S3Key = os.Getenv("DLFCHECK_S3_KEY")
	cfg.Secret.EncryptionKey = os.Getenv("DLFCHECK_ENCRYPTION_KEY")
	cfg.URN.Namespace = os.Getenv("DLFCHECK_URN_NAMESPACE")
	if ttl, err := time.ParseDuration(os.Getenv("DLFCHECK_CACHE_TTL")); err == nil {
		cfg.Cache.TTL = Duration{ttl}
	}
	return cfg
}
