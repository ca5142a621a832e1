// Package app wires TrueScan components together for the CLI commands.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Atharva080324/TrueScan/internal/broadcast"
	"github.com/Atharva080324/TrueScan/internal/cache"
	"github.com/Atharva080324/TrueScan/internal/config"
	"github.com/Atharva080324/TrueScan/internal/httpserver"
	"github.com/Atharva080324/TrueScan/internal/llm"
	"github.com/Atharva080324/TrueScan/internal/logger"
	"github.com/Atharva080324/TrueScan/internal/pipeline"
	"github.com/Atharva080324/TrueScan/internal/reddit"
	"github.com/Atharva080324/TrueScan/internal/scraper"
	"github.com/Atharva080324/TrueScan/internal/telemetry"
	"github.com/Atharva080324/TrueScan/internal/tts"
)

// pingTimeout bounds the Redis health probe.
const pingTimeout = 2 * time.Second

// Options controls optional subsystems.
type Options struct {
	// SkipReddit disables the MCP-backed Reddit analyzer. Used when the
	// invocation will never touch Reddit, so no server process is spawned.
	SkipReddit bool
}

// App holds the wired TrueScan components.
type App struct {
	Cfg       *config.Config
	Log       logger.Logger
	Pipeline  *pipeline.Pipeline
	Store     *tts.Store
	Telemetry *telemetry.Provider

	// Services are cheap readiness flags for the health endpoint.
	Services map[string]func() bool
	// Checks are live health probes for the health endpoint.
	Checks map[string]httpserver.HealthChecker

	closers []func() error
}

// Setup loads configuration and builds the service logger.
func Setup(configPath string) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(config.GetConfigPath(configPath))
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}

	return cfg, log.With(logger.String("service", cfg.Service.Name)), nil
}

// New wires the full generation pipeline from configuration.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, opts Options) (*App, error) {
	a := &App{
		Cfg:       cfg,
		Log:       log,
		Telemetry: telemetry.NewProvider(),
		Services:  make(map[string]func() bool),
		Checks:    make(map[string]httpserver.HealthChecker),
	}

	gemini, err := llm.NewGemini(ctx, llm.GeminiConfig{
		APIKey: cfg.Gemini.APIKey,
		Model:  cfg.Gemini.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	a.Services["gemini"] = gemini.Ready

	brightData := scraper.NewBrightDataClient(scraper.BrightDataConfig{
		APIToken:   cfg.BrightData.APIToken,
		Zone:       cfg.BrightData.Zone,
		BaseURL:    cfg.BrightData.BaseURL,
		Timeout:    cfg.BrightData.Timeout,
		MaxRetries: cfg.BrightData.MaxRetries,
	})
	a.Services["brightdata"] = brightData.Ready

	news := scraper.New(scraper.Config{
		RateLimit:   cfg.BrightData.RateLimit,
		RateBurst:   cfg.BrightData.RateBurst,
		Temperature: cfg.Gemini.SummaryTemperature,
		MaxTokens:   cfg.Gemini.SummaryMaxTokens,
	}, brightData, gemini, log)

	social := a.setupReddit(ctx, gemini, opts)

	writer := broadcast.NewWriter(gemini, log)
	engine := a.setupTTS()

	store, err := tts.NewStore(cfg.Audio.Dir, cfg.Audio.MaxClips)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open clip store: %w", err)
	}
	a.Store = store

	a.Pipeline = pipeline.New(
		pipeline.Config{
			MaxTopics: cfg.Service.MaxTopics,
			CacheTTL:  cfg.Cache.TTL,
		},
		news, social, writer, engine, store,
		a.setupCache(), a.Telemetry, log,
	)

	return a, nil
}

// setupReddit connects the MCP-backed analyzer. A connection failure
// degrades to news-only operation instead of failing startup.
func (a *App) setupReddit(ctx context.Context, gemini *llm.Gemini, opts Options) pipeline.SocialAnalyzer {
	cfg := a.Cfg
	ready := false
	a.Services["reddit"] = func() bool { return ready }

	if opts.SkipReddit {
		return nil
	}
	if cfg.BrightData.APIToken == "" || !gemini.Ready() {
		a.Log.Warn("Reddit analysis disabled, Bright Data token and Gemini key are both required")
		return nil
	}

	mcpClient, err := reddit.ConnectMCP(ctx, reddit.MCPConfig{
		Command:  cfg.Reddit.ServerCommand,
		Args:     cfg.Reddit.ServerArgs,
		APIToken: cfg.BrightData.APIToken,
	})
	if err != nil {
		a.Log.Warn("MCP server unavailable, continuing without Reddit analysis",
			logger.Error(err),
			logger.String("command", cfg.Reddit.ServerCommand),
		)
		return nil
	}
	a.closers = append(a.closers, mcpClient.Close)

	agent := reddit.NewAgent(gemini, mcpClient, reddit.AgentConfig{
		MaxToolCalls: cfg.Reddit.MaxToolCalls,
		MaxTokens:    cfg.Gemini.AgentMaxTokens,
	}, a.Log)

	ready = true
	return reddit.NewAnalyzer(agent, reddit.AnalyzerConfig{
		RateInterval: cfg.Reddit.RateInterval,
		TopicTimeout: cfg.Reddit.TopicTimeout,
	}, a.Log)
}

// setupTTS builds the ElevenLabs engine with the Google Translate fallback.
func (a *App) setupTTS() *tts.FallbackEngine {
	cfg := a.Cfg

	eleven := tts.NewElevenLabs(tts.ElevenLabsConfig{
		APIKey:       cfg.ElevenLabs.APIKey,
		BaseURL:      cfg.ElevenLabs.BaseURL,
		VoiceID:      cfg.ElevenLabs.VoiceID,
		ModelID:      cfg.ElevenLabs.ModelID,
		OutputFormat: cfg.ElevenLabs.OutputFormat,
		Timeout:      cfg.ElevenLabs.Timeout,
		MaxRetries:   cfg.ElevenLabs.MaxRetries,
	})
	a.Services["elevenlabs"] = eleven.Ready

	fallback := tts.NewGTranslate(tts.GTranslateConfig{Language: "en"})

	return tts.NewFallbackEngine(eleven, fallback, cfg.ElevenLabs.MaxFailures, a.Log)
}

// setupCache picks Redis when configured and in-memory otherwise.
func (a *App) setupCache() cache.Cache {
	cfg := a.Cfg
	if cfg.Cache.RedisAddr == "" {
		return cache.NewMemory()
	}

	redisCache := cache.NewRedis(cache.RedisConfig{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})
	a.closers = append(a.closers, redisCache.Close)
	a.Checks["redis"] = httpserver.PingHealthChecker("redis", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		return redisCache.Ping(ctx)
	})

	a.Log.Info("Using Redis script cache",
		logger.String("addr", cfg.Cache.RedisAddr),
	)
	return redisCache
}

// Close releases held resources in reverse order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Log.Warn("Close failed", logger.Error(err))
		}
	}
	a.closers = nil
}
