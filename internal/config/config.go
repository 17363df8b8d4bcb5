package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	DBUrl    string `mapstructure:"DB_URL"`
	RedisUrl string `mapstructure:"REDIS_URL"`

	// Upstream elements API
	AecBaseURL string `mapstructure:"AEC_BASE_URL"`
	AecToken   string `mapstructure:"AEC_TOKEN"`

	// Containment analysis tuning
	ContainerCategories string  `mapstructure:"CONTAINER_CATEGORIES"`
	Epsilon             float64 `mapstructure:"EPSILON"`
	AnalysisWorkers     int     `mapstructure:"ANALYSIS_WORKERS"`
	UseSpatialIndex     bool    `mapstructure:"USE_SPATIAL_INDEX"`
}

// CategoryFallback returns the container category priority list from the
// comma-separated CONTAINER_CATEGORIES value, or nil to use the built-in
// fallback order
func (c Config) CategoryFallback() []string {
	if c.ContainerCategories == "" {
		return nil
	}
	parts := strings.Split(c.ContainerCategories, ",")
	categories := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			categories = append(categories, trimmed)
		}
	}
	return categories
}

func LoadConfig() (c Config, err error) {
	// Get environment type from ENV variable or use development as default
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Set default values
	viper.SetDefault("PORT", ":8080")
	viper.SetDefault("EPSILON", 0.0)
	viper.SetDefault("ANALYSIS_WORKERS", 1)

	// Load environment file
	viper.SetConfigName(fmt.Sprintf(".env.%s", env))
	viper.SetConfigType("env")
	viper.AddConfigPath(".") // Look in the project root directory

	// Environment variables take precedence over config file
	viper.AutomaticEnv()

	// Try to read config file
	if err := viper.ReadInConfig(); err != nil {
		// Continue even if file is not found
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	// Map the values to the Config struct
	err = viper.Unmarshal(&c)
	return
}
