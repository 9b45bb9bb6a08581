package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Storage locations
	ProjectsDir      string `mapstructure:"PROJECTS_DIR"`
	MasterSourcesDir string `mapstructure:"MASTER_SOURCES_DIR"`
	IndexDBPath      string `mapstructure:"INDEX_DB_PATH"`

	// Region mapping overrides (YAML file, optional)
	RegionsFile string `mapstructure:"REGIONS_FILE"`

	// Admin auth configuration
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	AdminPasscode string `mapstructure:"ADMIN_PASSCODE"`
	TokenTTLMin   int    `mapstructure:"TOKEN_TTL_MIN"`

	// CORS configuration
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if config.IndexDBPath == "" {
		config.IndexDBPath = filepath.Join(config.MasterSourcesDir, "source_index.db")
	}

	// Validate required fields
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", "7010")
	viper.SetDefault("LOG_LEVEL", "info")

	// Storage defaults
	viper.SetDefault("PROJECTS_DIR", "./data/projects")
	viper.SetDefault("MASTER_SOURCES_DIR", "./data/master_sources")
	viper.SetDefault("INDEX_DB_PATH", "")
	viper.SetDefault("REGIONS_FILE", "")

	// Auth defaults
	viper.SetDefault("JWT_SECRET", "your-secret-key-change-in-production")
	viper.SetDefault("ADMIN_PASSCODE", "admin")
	viper.SetDefault("TOKEN_TTL_MIN", 480)

	// CORS defaults
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:8080"})
}

func validate(config *Config) error {
	if config.Environment == "production" {
		if config.JWTSecret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if config.AdminPasscode == "admin" {
			return fmt.Errorf("ADMIN_PASSCODE must be set in production")
		}
	}

	if config.ProjectsDir == "" {
		return fmt.Errorf("projects directory is required")
	}
	if config.MasterSourcesDir == "" {
		return fmt.Errorf("master sources directory is required")
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
