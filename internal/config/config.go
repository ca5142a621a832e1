package config

import (
	"fmt"
	"time"
)

// Config holds all configuration for the TrueScan service.
type Config struct {
	Service    ServiceConfig    `yaml:"service"`
	BrightData BrightDataConfig `yaml:"brightdata"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	ElevenLabs ElevenLabsConfig `yaml:"elevenlabs"`
	Reddit     RedditConfig     `yaml:"reddit"`
	Audio      AudioConfig      `yaml:"audio"`
	Cache      CacheConfig      `yaml:"cache"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
	Logging    LoggingConfig    `yaml:"logging"`
	CORS       CORSConfig       `yaml:"cors"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name            string        `yaml:"name"`
	Version         string        `yaml:"version"`
	Port            int           `yaml:"port" env:"TRUESCAN_PORT"`
	Debug           bool          `yaml:"debug" env:"TRUESCAN_DEBUG"`
	MaxTopics       int           `yaml:"max_topics"`
	GenerateTimeout time.Duration `yaml:"generate_timeout"`
}

// BrightDataConfig holds Bright Data Web Unlocker configuration.
type BrightDataConfig struct {
	APIToken   string        `yaml:"api_token" env:"BRIGHTDATA_API_TOKEN"`
	Zone       string        `yaml:"zone" env:"WEB_UNLOCKER_ZONE"`
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	RateLimit  float64       `yaml:"rate_limit"`
	RateBurst  int           `yaml:"rate_burst"`
}

// GeminiConfig holds Gemini model configuration.
type GeminiConfig struct {
	APIKey             string  `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model              string  `yaml:"model"`
	SummaryTemperature float32 `yaml:"summary_temperature"`
	SummaryMaxTokens   int32   `yaml:"summary_max_tokens"`
	AgentMaxTokens     int32   `yaml:"agent_max_tokens"`
}

// ElevenLabsConfig holds ElevenLabs text-to-speech configuration.
type ElevenLabsConfig struct {
	APIKey       string        `yaml:"api_key" env:"ELEVENLABS_API_KEY"`
	BaseURL      string        `yaml:"base_url"`
	VoiceID      string        `yaml:"voice_id" env:"ELEVENLABS_VOICE_ID"`
	ModelID      string        `yaml:"model_id"`
	OutputFormat string        `yaml:"output_format"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	MaxFailures  int           `yaml:"max_failures"`
}

// RedditConfig holds configuration for the Reddit analysis agent, which
// drives a Bright Data MCP server over stdio.
type RedditConfig struct {
	ServerCommand string        `yaml:"server_command"`
	ServerArgs    []string      `yaml:"server_args"`
	MaxToolCalls  int           `yaml:"max_tool_calls"`
	TopicTimeout  time.Duration `yaml:"topic_timeout"`
	RateInterval  time.Duration `yaml:"rate_interval"`
}

// AudioConfig holds audio clip storage configuration.
type AudioConfig struct {
	Dir      string `yaml:"dir" env:"AUDIO_DIR"`
	MaxClips int    `yaml:"max_clips"`
}

// CacheConfig holds broadcast script cache configuration.
// When RedisAddr is empty an in-memory cache is used.
type CacheConfig struct {
	RedisAddr     string        `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db"`
	TTL           time.Duration `yaml:"ttl"`
}

// ScheduleConfig holds periodic broadcast generation configuration.
type ScheduleConfig struct {
	Cron       string   `yaml:"cron"`
	Topics     []string `yaml:"topics"`
	SourceType string   `yaml:"source_type"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Enabled          bool     `yaml:"enabled"`
	AllowedOrigins   []string `yaml:"allowed_origins" env:"CORS_ORIGINS"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAge           int      `yaml:"max_age"`
}

// Load loads configuration from file and environment variables.
func Load(path string) (*Config, error) {
	cfg, err := loadWithDefaults[Config](path, SetDefaults)
	if err != nil {
		return nil, err
	}

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return cfg, nil
}

// SetDefaults applies default values to the config.
func SetDefaults(cfg *Config) {
	// Service defaults
	if cfg.Service.Name == "" {
		cfg.Service.Name = "truescan"
	}
	if cfg.Service.Version == "" {
		cfg.Service.Version = "1.0.0"
	}
	if cfg.Service.Port == 0 {
		cfg.Service.Port = 1234
	}
	if cfg.Service.MaxTopics == 0 {
		cfg.Service.MaxTopics = 3
	}
	if cfg.Service.GenerateTimeout == 0 {
		cfg.Service.GenerateTimeout = 5 * time.Minute
	}

	// Bright Data defaults
	if cfg.BrightData.BaseURL == "" {
		cfg.BrightData.BaseURL = "https://api.brightdata.com"
	}
	if cfg.BrightData.Timeout == 0 {
		cfg.BrightData.Timeout = 30 * time.Second
	}
	if cfg.BrightData.MaxRetries == 0 {
		cfg.BrightData.MaxRetries = 3
	}
	if cfg.BrightData.RateLimit == 0 {
		cfg.BrightData.RateLimit = 1
	}
	if cfg.BrightData.RateBurst == 0 {
		cfg.BrightData.RateBurst = 2
	}

	// Gemini defaults
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.0-flash"
	}
	if cfg.Gemini.SummaryTemperature == 0 {
		cfg.Gemini.SummaryTemperature = 0.4
	}
	if cfg.Gemini.SummaryMaxTokens == 0 {
		cfg.Gemini.SummaryMaxTokens = 1000
	}
	if cfg.Gemini.AgentMaxTokens == 0 {
		cfg.Gemini.AgentMaxTokens = 1500
	}

	// ElevenLabs defaults
	if cfg.ElevenLabs.BaseURL == "" {
		cfg.ElevenLabs.BaseURL = "https://api.elevenlabs.io"
	}
	if cfg.ElevenLabs.VoiceID == "" {
		cfg.ElevenLabs.VoiceID = "JBFqnCBsd6RMkjVDRZzb"
	}
	if cfg.ElevenLabs.ModelID == "" {
		cfg.ElevenLabs.ModelID = "eleven_multilingual_v2"
	}
	if cfg.ElevenLabs.OutputFormat == "" {
		cfg.ElevenLabs.OutputFormat = "mp3_44100_128"
	}
	if cfg.ElevenLabs.Timeout == 0 {
		cfg.ElevenLabs.Timeout = 60 * time.Second
	}
	if cfg.ElevenLabs.MaxRetries == 0 {
		cfg.ElevenLabs.MaxRetries = 2
	}
	if cfg.ElevenLabs.MaxFailures == 0 {
		cfg.ElevenLabs.MaxFailures = 3
	}

	// Reddit agent defaults
	if cfg.Reddit.ServerCommand == "" {
		cfg.Reddit.ServerCommand = "npx"
	}
	if len(cfg.Reddit.ServerArgs) == 0 {
		cfg.Reddit.ServerArgs = []string{"-y", "@brightdata/mcp"}
	}
	if cfg.Reddit.MaxToolCalls == 0 {
		cfg.Reddit.MaxToolCalls = 8
	}
	if cfg.Reddit.TopicTimeout == 0 {
		cfg.Reddit.TopicTimeout = 2 * time.Minute
	}
	if cfg.Reddit.RateInterval == 0 {
		cfg.Reddit.RateInterval = 5 * time.Second
	}

	// Audio defaults
	if cfg.Audio.Dir == "" {
		cfg.Audio.Dir = "audio"
	}
	if cfg.Audio.MaxClips == 0 {
		cfg.Audio.MaxClips = 50
	}

	// Cache defaults
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 30 * time.Minute
	}

	// Schedule defaults
	if cfg.Schedule.SourceType == "" {
		cfg.Schedule.SourceType = "both"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	// CORS defaults
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Content-Type", "Authorization"}
	}
}

// Validate validates the configuration.
// API tokens are deliberately not required here; missing credentials
// surface as degraded health checks, not startup failures.
func (c *Config) Validate() error {
	if err := ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if c.Service.MaxTopics < 1 {
		return &ValidationError{Field: "service.max_topics", Message: "must be greater than 0"}
	}
	if c.BrightData.RateLimit <= 0 {
		return &ValidationError{Field: "brightdata.rate_limit", Message: "must be greater than 0"}
	}
	if c.Audio.MaxClips < 1 {
		return &ValidationError{Field: "audio.max_clips", Message: "must be greater than 0"}
	}
	if c.Schedule.Cron != "" && len(c.Schedule.Topics) == 0 {
		return &ValidationError{Field: "schedule.topics", Message: "required when schedule.cron is set"}
	}
	if err := ValidateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if err := ValidateLogFormat(c.Logging.Format); err != nil {
		return err
	}
	return nil
}
