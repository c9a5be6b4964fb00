package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/beautymatch/backend/internal/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cache backends
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Reference ReferenceConfig `mapstructure:"reference"`
	Matching  MatchingConfig  `mapstructure:"matching"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory", "redis" or "none"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client IP, 0 disables
	Burst int `mapstructure:"burst"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
	Debug  bool   `mapstructure:"debug"`  // per-match debug logging in the service
}

// ReferenceConfig points at an optional reference table override file
type ReferenceConfig struct {
	Path string `mapstructure:"path"`
}

// MatchingConfig is the scoring policy as it appears in configuration
type MatchingConfig struct {
	Weights     WeightsConfig     `mapstructure:"weights"`
	Adjustments AdjustmentsConfig `mapstructure:"adjustments"`
	Confidence  ConfidenceConfig  `mapstructure:"confidence"`
	Bands       []BandConfig      `mapstructure:"bands"`
}

// WeightsConfig holds the dimension weights
type WeightsConfig struct {
	SkinType    float64 `mapstructure:"skin_type"`
	Ingredients float64 `mapstructure:"ingredients"`
	Concerns    float64 `mapstructure:"concerns"`
	Preferences float64 `mapstructure:"preferences"`
}

// AdjustmentsConfig holds the additive score adjustments
type AdjustmentsConfig struct {
	BrandAffinity float64 `mapstructure:"brand_affinity"`
	ShadeMatch    float64 `mapstructure:"shade_match"`
	ShadeMismatch float64 `mapstructure:"shade_mismatch"`
	CategoryFit   float64 `mapstructure:"category_fit"`
}

// ConfidenceConfig holds the confidence policy
type ConfidenceConfig struct {
	Base           int `mapstructure:"base"`
	SkinTypeData   int `mapstructure:"skin_type_data"`
	IngredientData int `mapstructure:"ingredient_data"`
	ConcernData    int `mapstructure:"concern_data"`
	PreferenceData int `mapstructure:"preference_data"`
	ShadeData      int `mapstructure:"shade_data"`
	Allergen       int `mapstructure:"allergen"`
	BrandConflict  int `mapstructure:"brand_conflict"`
	MissingInfo    int `mapstructure:"missing_info"`
}

// BandConfig is one verdict band
type BandConfig struct {
	Verdict         string `mapstructure:"verdict"`
	MinScore        int    `mapstructure:"min_score"`
	ConfidenceDelta int    `mapstructure:"confidence_delta"`
	ConfidenceFloor int    `mapstructure:"confidence_floor"`
}

// Policy converts the configured values into the engine policy.
// No configured bands means the default band table.
func (m MatchingConfig) Policy() domain.Policy {
	policy := domain.Policy{
		Weights: domain.Weights{
			SkinType:    m.Weights.SkinType,
			Ingredients: m.Weights.Ingredients,
			Concerns:    m.Weights.Concerns,
			Preferences: m.Weights.Preferences,
		},
		Adjustments: domain.Adjustments{
			BrandAffinity: m.Adjustments.BrandAffinity,
			ShadeMatch:    m.Adjustments.ShadeMatch,
			ShadeMismatch: m.Adjustments.ShadeMismatch,
			CategoryFit:   m.Adjustments.CategoryFit,
		},
		Confidence: domain.ConfidencePolicy{
			Base:           m.Confidence.Base,
			SkinTypeData:   m.Confidence.SkinTypeData,
			IngredientData: m.Confidence.IngredientData,
			ConcernData:    m.Confidence.ConcernData,
			PreferenceData: m.Confidence.PreferenceData,
			ShadeData:      m.Confidence.ShadeData,
			Allergen:       m.Confidence.Allergen,
			BrandConflict:  m.Confidence.BrandConflict,
			MissingInfo:    m.Confidence.MissingInfo,
		},
	}

	if len(m.Bands) == 0 {
		policy.Bands = domain.DefaultBands()
		return policy
	}
	for _, b := range m.Bands {
		policy.Bands = append(policy.Bands, domain.VerdictBand{
			Verdict:         domain.Verdict(strings.ToUpper(strings.TrimSpace(b.Verdict))),
			MinScore:        b.MinScore,
			ConfidenceDelta: b.ConfidenceDelta,
			ConfidenceFloor: b.ConfidenceFloor,
		})
	}
	return policy
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/beautymatch/")

	// Environment variable settings: BEAUTYMATCH_CACHE_REDIS_URL -> cache.redis_url
	v.SetEnvPrefix("BEAUTYMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
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

// loadEnvFile loads ./.env into the process environment when present.
// Variables already set in the environment win.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"chrome-extension://*"})

	// Cache defaults
	v.SetDefault("cache.type", CacheMemory)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.burst", 20)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.debug", false)

	// Reference table override (empty means embedded tables)
	v.SetDefault("reference.path", "")

	// Matching defaults mirror domain.DefaultPolicy
	p := domain.DefaultPolicy()
	v.SetDefault("matching.weights.skin_type", p.Weights.SkinType)
	v.SetDefault("matching.weights.ingredients", p.Weights.Ingredients)
	v.SetDefault("matching.weights.concerns", p.Weights.Concerns)
	v.SetDefault("matching.weights.preferences", p.Weights.Preferences)

	v.SetDefault("matching.adjustments.brand_affinity", p.Adjustments.BrandAffinity)
	v.SetDefault("matching.adjustments.shade_match", p.Adjustments.ShadeMatch)
	v.SetDefault("matching.adjustments.shade_mismatch", p.Adjustments.ShadeMismatch)
	v.SetDefault("matching.adjustments.category_fit", p.Adjustments.CategoryFit)

	v.SetDefault("matching.confidence.base", p.Confidence.Base)
	v.SetDefault("matching.confidence.skin_type_data", p.Confidence.SkinTypeData)
	v.SetDefault("matching.confidence.ingredient_data", p.Confidence.IngredientData)
	v.SetDefault("matching.confidence.concern_data", p.Confidence.ConcernData)
	v.SetDefault("matching.confidence.preference_data", p.Confidence.PreferenceData)
	v.SetDefault("matching.confidence.shade_data", p.Confidence.ShadeData)
	v.SetDefault("matching.confidence.allergen", p.Confidence.Allergen)
	v.SetDefault("matching.confidence.brand_conflict", p.Confidence.BrandConflict)
	v.SetDefault("matching.confidence.missing_info", p.Confidence.MissingInfo)
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Cache.Type {
	case CacheMemory, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("cache type must be 'memory', 'redis' or 'none', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == CacheRedis && config.Cache.RedisURL == "" {
		return fmt.Errorf("redis URL is required when cache type is 'redis'")
	}

	if config.RateLimit.PerIP < 0 || config.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}

	if err := config.Matching.Policy().Validate(); err != nil {
		return err
	}

	return nil
}
