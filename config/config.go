package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Taxonomy  TaxonomyConfig  `mapstructure:"taxonomy"`
	Selection SelectionConfig `mapstructure:"selection"`
	Vision    VisionConfig    `mapstructure:"vision"`
	Storage   StorageConfig   `mapstructure:"storage"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// CatalogConfig selects and bounds the product catalog backend
type CatalogConfig struct {
	Backend        string              `mapstructure:"backend"` // "memory" or "elasticsearch"
	File           string              `mapstructure:"file"`
	ApprovedStatus string              `mapstructure:"approved_status"`
	CategoryLimit  int                 `mapstructure:"category_limit"`
	KeywordLimit   int                 `mapstructure:"keyword_limit"`
	CategoryLimits map[string]int      `mapstructure:"category_limits"`
	Elasticsearch  ElasticsearchConfig `mapstructure:"elasticsearch"`
}

// ElasticsearchConfig holds document store connection settings
type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

// TaxonomyConfig points at an optional taxonomy override file
type TaxonomyConfig struct {
	File string `mapstructure:"file"`
}

// SelectionConfig holds selection engine settings
type SelectionConfig struct {
	DefaultMaxItems int `mapstructure:"default_max_items"`
	PoolCap         int `mapstructure:"pool_cap"`
}

// VisionConfig holds vision model API configuration
type VisionConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	Model             string        `mapstructure:"model"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

// StorageConfig selects where room and generated images are read from
type StorageConfig struct {
	Type    string `mapstructure:"type"` // "file" or "s3"
	BaseDir string `mapstructure:"base_dir"`
	Bucket  string `mapstructure:"bucket"`
	Region  string `mapstructure:"region"`
}

// Load loads configuration from environment variables and config files.
// A .env file in the working directory is applied first without overriding
// variables that are already set.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/decorlens/")

	v.SetEnvPrefix("DECORLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func loadEnvFile() error {
	err := godotenv.Load()
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("catalog.backend", "memory")
	v.SetDefault("catalog.file", "./data/catalog.json")
	v.SetDefault("catalog.approved_status", "approved")
	v.SetDefault("catalog.category_limit", 30)
	v.SetDefault("catalog.keyword_limit", 20)
	v.SetDefault("catalog.category_limits", map[string]int{})
	v.SetDefault("catalog.elasticsearch.addresses", []string{"http://localhost:9200"})
	v.SetDefault("catalog.elasticsearch.username", "")
	v.SetDefault("catalog.elasticsearch.password", "")
	v.SetDefault("catalog.elasticsearch.index", "products")

	v.SetDefault("taxonomy.file", "")

	v.SetDefault("selection.default_max_items", 4)
	v.SetDefault("selection.pool_cap", 50)

	v.SetDefault("vision.enabled", false)
	v.SetDefault("vision.api_key", "")
	v.SetDefault("vision.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("vision.model", "google/gemini-2.5-flash")
	v.SetDefault("vision.timeout", "60s")
	v.SetDefault("vision.requests_per_second", 2.0)
	v.SetDefault("vision.burst", 2)

	v.SetDefault("storage.type", "file")
	v.SetDefault("storage.base_dir", "./data/images")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "ap-northeast-2")
}

func validate(config *Config) error {
	switch config.Catalog.Backend {
	case "memory":
		if config.Catalog.File == "" {
			return fmt.Errorf("catalog file is required when backend is 'memory'")
		}
	case "elasticsearch":
		if len(config.Catalog.Elasticsearch.Addresses) == 0 {
			return fmt.Errorf("elasticsearch addresses are required when backend is 'elasticsearch'")
		}
	default:
		return fmt.Errorf("catalog backend must be 'memory' or 'elasticsearch', got: %s", config.Catalog.Backend)
	}

	if config.Catalog.CategoryLimit <= 0 || config.Catalog.KeywordLimit <= 0 {
		return fmt.Errorf("catalog limits must be positive")
	}
	for category, limit := range config.Catalog.CategoryLimits {
		if limit <= 0 {
			return fmt.Errorf("category limit for %q must be positive, got: %d", category, limit)
		}
	}

	if config.Selection.DefaultMaxItems <= 0 {
		return fmt.Errorf("selection default_max_items must be positive, got: %d", config.Selection.DefaultMaxItems)
	}
	if config.Selection.PoolCap <= 0 {
		return fmt.Errorf("selection pool_cap must be positive, got: %d", config.Selection.PoolCap)
	}

	if config.Vision.Enabled && config.Vision.APIKey == "" {
		return fmt.Errorf("vision API key is required when vision is enabled (set DECORLENS_VISION_API_KEY)")
	}

	switch config.Storage.Type {
	case "file":
	case "s3":
		if config.Storage.Bucket == "" {
			return fmt.Errorf("storage bucket is required when storage type is 's3'")
		}
	default:
		return fmt.Errorf("storage type must be 'file' or 's3', got: %s", config.Storage.Type)
	}

	return nil
}
