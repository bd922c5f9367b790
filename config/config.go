package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Generative backend configurations
	OpenAI  OpenAIConfig
	Bedrock BedrockConfig

	// Market data configurations
	AlphaVantage AlphaVantageConfig
	Alpaca       AlpacaConfig

	// Provider selection
	Providers ProviderConfig

	// Advisor pipeline configuration
	Advisor AdvisorConfig

	// Symbol extraction configuration
	Extractor ExtractorConfig

	// HTTP configuration
	HTTP HTTPConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
}

// BedrockConfig holds AWS Bedrock configuration
type BedrockConfig struct {
	Region  string
	ModelID string
}

// AlphaVantageConfig holds Alpha Vantage API configuration
type AlphaVantageConfig struct {
	APIKey string
}

// AlpacaConfig holds Alpaca API configuration
type AlpacaConfig struct {
	APIKey    string
	APISecret string
	BaseURL   string
}

// ProviderConfig selects which backends serve market data and augmentation
type ProviderConfig struct {
	MarketData string // alphavantage or alpaca
	Generative string // openai or bedrock
}

// AdvisorConfig holds signal classification and aggregation thresholds
type AdvisorConfig struct {
	RSIPeriod         int
	RSIOversold       float64
	RSIOverbought     float64
	MomentumThreshold float64 // percent change magnitude for a momentum signal
	MomentumWeight    float64
	RSIWeight         float64
	ScoreCutoff       float64 // winning score must exceed this for BUY/SELL
	HoldConfidence    float64
	TargetWordsMin    int
	TargetWordsMax    int
	MarketDataTimeout int // seconds
	AugmentTimeout    int // seconds
	QuoteCacheTTL     int // seconds
	ConcurrencyLimit  int
	AugmentByDefault  bool
}

// ExtractorConfig holds symbol extraction configuration
type ExtractorConfig struct {
	ExtraStopWords []string
	AllowList      []string
	MaxSymbolLen   int
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Port               string
	CORSAllowedOrigins string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		OpenAI: OpenAIConfig{
			APIKey:    os.Getenv("OPENAI_API_KEY"),
			Model:     getEnvString("OPENAI_MODEL", "gpt-4o-mini"),
			MaxTokens: getEnvInt("OPENAI_MAX_TOKENS", 500),
		},
		Bedrock: BedrockConfig{
			Region:  getEnvString("AWS_REGION", "us-east-1"),
			ModelID: getEnvString("BEDROCK_MODEL_ID", "anthropic.claude-3-haiku-20240307-v1:0"),
		},
		AlphaVantage: AlphaVantageConfig{
			APIKey: os.Getenv("ALPHA_VANTAGE_API_KEY"),
		},
		Alpaca: AlpacaConfig{
			APIKey:    os.Getenv("ALPACA_API_KEY"),
			APISecret: os.Getenv("ALPACA_API_SECRET"),
			BaseURL:   getEnvString("ALPACA_BASE_URL", "https://paper-api.alpaca.markets"),
		},
		Providers: ProviderConfig{
			MarketData: getEnvString("MARKET_DATA_PROVIDER", "alphavantage"),
			Generative: getEnvString("GENERATIVE_PROVIDER", "openai"),
		},
		Advisor: AdvisorConfig{
			RSIPeriod:         getEnvInt("ADVISOR_RSI_PERIOD", 14),
			RSIOversold:       getEnvFloatUnbounded("ADVISOR_RSI_OVERSOLD", 30),
			RSIOverbought:     getEnvFloatUnbounded("ADVISOR_RSI_OVERBOUGHT", 70),
			MomentumThreshold: getEnvFloatUnbounded("ADVISOR_MOMENTUM_THRESHOLD", 2.0),
			MomentumWeight:    getEnvFloat("ADVISOR_MOMENTUM_WEIGHT", 0.6),
			RSIWeight:         getEnvFloat("ADVISOR_RSI_WEIGHT", 0.7),
			ScoreCutoff:       getEnvFloatUnbounded("ADVISOR_SCORE_CUTOFF", 1.0),
			HoldConfidence:    getEnvFloat("ADVISOR_HOLD_CONFIDENCE", 0.5),
			TargetWordsMin:    getEnvInt("ADVISOR_TARGET_WORDS_MIN", 150),
			TargetWordsMax:    getEnvInt("ADVISOR_TARGET_WORDS_MAX", 200),
			MarketDataTimeout: getEnvInt("MARKET_DATA_TIMEOUT_SECONDS", 10),
			AugmentTimeout:    getEnvInt("AUGMENT_TIMEOUT_SECONDS", 15),
			QuoteCacheTTL:     getEnvInt("QUOTE_CACHE_TTL_SECONDS", 60),
			ConcurrencyLimit:  getEnvInt("QUERY_CONCURRENCY_LIMIT", 8),
			AugmentByDefault:  getEnvBool("AUGMENT_BY_DEFAULT", true),
		},
		Extractor: ExtractorConfig{
			ExtraStopWords: getEnvList("EXTRACTOR_EXTRA_STOPWORDS"),
			AllowList:      getEnvList("EXTRACTOR_ALLOWLIST"),
			MaxSymbolLen:   getEnvInt("EXTRACTOR_MAX_SYMBOL_LEN", 5),
		},
		HTTP: HTTPConfig{
			Port:               getEnvString("PORT", "8080"),
			CORSAllowedOrigins: getEnvString("CORS_ALLOWED_ORIGINS", "*"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Advisor.RSIOversold >= c.Advisor.RSIOverbought {
		return fmt.Errorf("ADVISOR_RSI_OVERSOLD (%.1f) must be below ADVISOR_RSI_OVERBOUGHT (%.1f)",
			c.Advisor.RSIOversold, c.Advisor.RSIOverbought)
	}
	if c.Advisor.MomentumThreshold <= 0 {
		return fmt.Errorf("ADVISOR_MOMENTUM_THRESHOLD must be positive, got %.2f", c.Advisor.MomentumThreshold)
	}
	if c.Advisor.RSIPeriod <= 1 {
		return fmt.Errorf("ADVISOR_RSI_PERIOD must be greater than 1, got %d", c.Advisor.RSIPeriod)
	}
	if c.Advisor.ScoreCutoff < 0 {
		return fmt.Errorf("ADVISOR_SCORE_CUTOFF must not be negative, got %.2f", c.Advisor.ScoreCutoff)
	}
	if c.Advisor.ConcurrencyLimit <= 0 {
		return fmt.Errorf("QUERY_CONCURRENCY_LIMIT must be positive, got %d", c.Advisor.ConcurrencyLimit)
	}
	if c.Advisor.TargetWordsMin <= 0 || c.Advisor.TargetWordsMax < c.Advisor.TargetWordsMin {
		return fmt.Errorf("target word range invalid: min=%d max=%d", c.Advisor.TargetWordsMin, c.Advisor.TargetWordsMax)
	}

	switch c.Providers.MarketData {
	case "alphavantage", "alpaca":
	default:
		return fmt.Errorf("MARKET_DATA_PROVIDER must be alphavantage or alpaca, got %q", c.Providers.MarketData)
	}
	switch c.Providers.Generative {
	case "openai", "bedrock":
	default:
		return fmt.Errorf("GENERATIVE_PROVIDER must be openai or bedrock, got %q", c.Providers.Generative)
	}

	return nil
}

// HasDatabase returns true if database configuration is available
func (c *Config) HasDatabase() bool {
	return c.Database.URL != ""
}

// HasOpenAI returns true if OpenAI configuration is available
func (c *Config) HasOpenAI() bool {
	return c.OpenAI.APIKey != ""
}

// HasAlphaVantage returns true if Alpha Vantage configuration is available
func (c *Config) HasAlphaVantage() bool {
	return c.AlphaVantage.APIKey != ""
}

// HasAlpaca returns true if Alpaca configuration is available
func (c *Config) HasAlpaca() bool {
	return c.Alpaca.APIKey != "" && c.Alpaca.APISecret != ""
}

func getEnvString(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil && parsed >= 0 && parsed <= 1 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloatUnbounded(key string, defaultValue float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NewTestConfig creates a Config with default values for testing
func NewTestConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			URL: "",
		},
		OpenAI: OpenAIConfig{
			APIKey:    "",
			Model:     "gpt-4o-mini",
			MaxTokens: 500,
		},
		Bedrock: BedrockConfig{
			Region:  "us-east-1",
			ModelID: "anthropic.claude-3-haiku-20240307-v1:0",
		},
		AlphaVantage: AlphaVantageConfig{
			APIKey: "",
		},
		Alpaca: AlpacaConfig{
			APIKey:    "",
			APISecret: "",
			BaseURL:   "https://paper-api.alpaca.markets",
		},
		Providers: ProviderConfig{
			MarketData: "alphavantage",
			Generative: "openai",
		},
		Advisor: AdvisorConfig{
			RSIPeriod:         14,
			RSIOversold:       30,
			RSIOverbought:     70,
			MomentumThreshold: 2.0,
			MomentumWeight:    0.6,
			RSIWeight:         0.7,
			ScoreCutoff:       1.0,
			HoldConfidence:    0.5,
			TargetWordsMin:    150,
			TargetWordsMax:    200,
			MarketDataTimeout: 10,
			AugmentTimeout:    15,
			QuoteCacheTTL:     60,
			ConcurrencyLimit:  8,
			AugmentByDefault:  true,
		},
		Extractor: ExtractorConfig{
			ExtraStopWords: nil,
			AllowList:      nil,
			MaxSymbolLen:   5,
		},
		HTTP: HTTPConfig{
			Port:               "8080",
			CORSAllowedOrigins: "*",
		},
	}
}
