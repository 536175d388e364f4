package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/toolcompare/internal/transport"
	"github.com/agentstation/toolcompare/pkg/constants"
)

// EnvPrefix prefixes every environment variable read through viper.
const EnvPrefix = "TOOLCOMPARE"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose     bool
	Quiet       bool
	NoColor     bool
	Format      string
	ShowMetrics bool

	// Config file
	ConfigFile string

	// Comparison API
	APIURL     string
	APIToken   string
	APITimeout time.Duration
	APIAuth    transport.AuthConfig

	// Local store
	StoreDriver string
	StorePath   string
	StoreKey    string
	MaxTools    int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables (TOOLCOMPARE_API_URL, ...)
// 3. .env files
// 4. Config file (configFile, or ~/.toolcompare.yaml)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Nested keys are only visible to AutomaticEnv once bound.
	for _, key := range []string{"api_auth.scheme", "api_auth.header", "api_auth.query_param"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	v.SetDefault("api_timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("store_driver", "file")
	v.SetDefault("store_key", constants.DefaultStoreKey)
	v.SetDefault("max_tools", constants.MaxComparisonTools)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		// Search for config in standard locations
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".toolcompare")
		// Read config file (ignore error if not found)
		_ = v.ReadInConfig()
	}

	config := &Config{
		Verbose:     v.GetBool("verbose"),
		Quiet:       v.GetBool("quiet"),
		NoColor:     v.GetBool("no_color"),
		Format:      v.GetString("format"),
		ShowMetrics: v.GetBool("metrics"),

		ConfigFile: v.ConfigFileUsed(),

		APIURL:     v.GetString("api_url"),
		APIToken:   v.GetString("api_token"),
		APITimeout: v.GetDuration("api_timeout"),
		APIAuth: transport.AuthConfig{
			Scheme:     transport.AuthScheme(v.GetString("api_auth.scheme")),
			Header:     v.GetString("api_auth.header"),
			QueryParam: v.GetString("api_auth.query_param"),
		},

		StoreDriver: v.GetString("store_driver"),
		StorePath:   v.GetString("store_path"),
		StoreKey:    v.GetString("store_key"),
		MaxTools:    v.GetInt("max_tools"),

		// Logging configuration
		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor, showMetrics bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	c.ShowMetrics = c.ShowMetrics || showMetrics
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are never overwritten.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
