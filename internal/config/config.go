package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Storage struct {
		Path string `koanf:"path"`
	} `koanf:"storage"`

	Seed struct {
		File string `koanf:"file"`
	} `koanf:"seed"`

	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

func (c Config) String() string {
	seed := c.Seed.File
	if seed == "" {
		seed = "<not configured>"
	}
	return fmt.Sprintf("storage.path=%s, seed.file=%s, log.level=%s.",
		c.Storage.Path,
		seed,
		c.Log.Level)
}

const (
	envPrefix      = "inventory_"
	defaultEnvFile = ".env"
	configFile     = "config.yaml"
)

var defaults = map[string]any{
	"storage.path": "products.json",
	"log.level":    "info",
}

// Load reads the configuration from the default file locations and environment variables.
func Load() (*Config, error) {
	return load(configFile, defaultEnvFile)
}

// load reads configuration from yamlFile, then envFile, then system environment variables.
// Later sources override earlier ones.
func load(yamlFile, envFile string) (*Config, error) {
	// Create a new Koanf instance
	var k = koanf.New(".")

	// 0. Defaults, the lowest priority
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	// 1. Load configuration from yaml file
	if err := k.Load(file.Provider(yamlFile), yaml.Parser()); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARN: error loading YAML config: %v", err)
		}
	}

	// 2. Load environment variables from .env file
	if envFileMap, err := godotenv.Read(envFile); err == nil {
		envMap := make(map[string]any)
		for key, value := range envFileMap {
			if strings.HasPrefix(strings.ToLower(key), envPrefix) {
				envMap[keyTransformer(key)] = value
			}
		}
		// Load the envMap into Koanf
		if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
			log.Printf("WARN: error loading .env config: %v", err)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("WARN: error reading .env file: %v", err)
	}

	// 3. Load environment variables from the system, the highest priority
	if err := k.Load(env.Provider(strings.ToUpper(envPrefix), ".", keyTransformer), nil); err != nil {
		log.Printf("WARN: error loading env vars: %v", err)
	}

	var cfg Config
	// 4. Unmarshal the configuration into the Config struct
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// 5. Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks if the configuration values are valid
func (c Config) Validate() error {
	if strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("storage path is not configured")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}
	return nil
}

// keyTransformer transforms environment variable keys to match the expected format
func keyTransformer(key string) string {
	key = strings.ToLower(key)
	key = strings.TrimPrefix(key, envPrefix)
	return strings.ReplaceAll(key, "_", ".")
}
