package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/daniacca/rdmc/internal/rxn"
)

// ServerConfig holds the server configuration
type ServerConfig struct {
	Addr        string
	LogLevel    string
	RateDir     string
	MaxCompiles int
	ModelFile   string
}

// configResolver defines how to resolve a single configuration value
type configResolver struct {
	flagName    string
	envVarName  string
	defaultVal  string
	description string
	setter      func(*ServerConfig, string) error
}

var resolvers = []configResolver{
	{
		flagName:    "addr",
		envVarName:  "RDMC_ADDR",
		defaultVal:  ":8080",
		description: "HTTP listen address (e.g. :8080, 0.0.0.0:8080)",
		setter:      func(c *ServerConfig, v string) error { c.Addr = v; return nil },
	},
	{
		flagName:    "log-level",
		envVarName:  "RDMC_LOG_LEVEL",
		defaultVal:  "info",
		description: "Log level: debug, info, warn, error",
		setter:      func(c *ServerConfig, v string) error { c.LogLevel = v; return nil },
	},
	{
		flagName:    "rate-dir",
		envVarName:  "RDMC_RATE_DIR",
		defaultVal:  ".",
		description: "Directory rate files are resolved against",
		setter:      func(c *ServerConfig, v string) error { c.RateDir = v; return nil },
	},
	{
		flagName:    "max-compiles",
		envVarName:  "RDMC_MAX_COMPILES",
		defaultVal:  "100",
		description: "Number of compiled tables kept in memory; the oldest is evicted first",
		setter: func(c *ServerConfig, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid value for max-compiles: %q", v)
			}
			c.MaxCompiles = n
			return nil
		},
	},
	{
		flagName:    "model-file",
		envVarName:  "RDMC_MODEL_FILE",
		defaultVal:  "",
		description: "optional path to a JSON model compiled at startup",
		setter:      func(c *ServerConfig, v string) error { c.ModelFile = v; return nil },
	},
}

// loadServerConfig resolves every option from args, then the environment,
// then its default.
func loadServerConfig(args []string) (ServerConfig, error) {
	cfg := ServerConfig{}

	fs := flag.NewFlagSet("rdmc-server", flag.ContinueOnError)
	flagVars := make(map[string]*string)
	for _, resolver := range resolvers {
		flagVars[resolver.flagName] = fs.String(resolver.flagName, "", resolver.description)
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	for _, resolver := range resolvers {
		var value string
		if *flagVars[resolver.flagName] != "" {
			value = *flagVars[resolver.flagName]
		} else if envValue := os.Getenv(resolver.envVarName); envValue != "" {
			value = envValue
		} else {
			value = resolver.defaultVal
		}
		if err := resolver.setter(&cfg, value); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

// loadModelFromFile reads, validates and decodes a model configuration.
func loadModelFromFile(path string) (rxn.ModelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rxn.ModelConfig{}, err
	}

	var cfg rxn.ModelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return rxn.ModelConfig{}, fmt.Errorf("invalid model json: %w", err)
	}

	if err := rxn.ValidateModelConfig(cfg); err != nil {
		return rxn.ModelConfig{}, err
	}
	return cfg, nil
}
