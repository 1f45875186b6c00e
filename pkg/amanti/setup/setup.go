package setup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/NethermindEth/amanti/pkg/amanti/debug"
	"github.com/NethermindEth/amanti/pkg/amanti/note"
)

const (
	DefaultApiIpPort         = ":8080"
	DefaultGenerationWorkers = 16
	defaultDotEnvFile        = ".env"
)

type SetupResult struct {
	GeminiApiKey       string
	GeminiModel        string
	GeminiBaseUrl      string
	ApiIpPort          string
	PromptVariant      note.PromptVariant
	SessionCacheSize   int
	SessionTtl         time.Duration
	GenerationWorkers  int
	CorsAllowedOrigins []string
	SecureCookies      bool
}

// LogValue keeps the api key out of logs.
func (r SetupResult) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("geminiApiKey", mask(r.GeminiApiKey)),
		slog.String("geminiModel", r.GeminiModel),
		slog.String("geminiBaseUrl", r.GeminiBaseUrl),
		slog.String("apiIpPort", r.ApiIpPort),
		slog.String("promptVariant", string(r.PromptVariant)),
		slog.Int("sessionCacheSize", r.SessionCacheSize),
		slog.Duration("sessionTtl", r.SessionTtl),
		slog.Int("generationWorkers", r.GenerationWorkers),
		slog.Any("corsAllowedOrigins", r.CorsAllowedOrigins),
		slog.Bool("secureCookies", r.SecureCookies),
	)
}

func Setup(ctx context.Context) (*SetupResult, error) {
	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("failed to load env file: %v", err)
	}

	config, err := NewConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to get config from env: %v", err)
	}

	setupResult, err := NewSetupResult(config)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve setup: %v", err)
	}

	if debug.IsDebugShowSetup() {
		slog.Info("setup output", "setupOutput", *setupResult)
	}

	return setupResult, nil
}

func NewSetupResult(config *Config) (*SetupResult, error) {
	if config == nil {
		return nil, errors.New("config is nil")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Validate has already checked these.
	variant, _ := note.ParsePromptVariant(config.PromptVariant)
	cacheSize, _ := parsePositiveInt(config.SessionCacheSize)
	ttl, _ := parseDuration(config.SessionTtl)
	workers, _ := parsePositiveInt(config.GenerationWorkers)
	secureCookies, _ := parseBool(config.SecureCookies)

	result := &SetupResult{
		GeminiApiKey:       config.GeminiApiKey,
		GeminiModel:        config.GeminiModel,
		GeminiBaseUrl:      config.GeminiBaseUrl,
		ApiIpPort:          config.ApiIpPort,
		PromptVariant:      variant,
		SessionCacheSize:   cacheSize,
		SessionTtl:         ttl,
		GenerationWorkers:  workers,
		CorsAllowedOrigins: splitList(config.CorsAllowedOrigins),
		SecureCookies:      secureCookies,
	}

	if result.GeminiModel == "" {
		result.GeminiModel = note.DefaultModel
	}
	if result.GeminiBaseUrl == "" {
		result.GeminiBaseUrl = note.DefaultBaseUrl
	}
	if result.ApiIpPort == "" {
		result.ApiIpPort = DefaultApiIpPort
	}
	if result.GenerationWorkers == 0 {
		result.GenerationWorkers = DefaultGenerationWorkers
	}

	return result, nil
}

// loadDotEnv fills unset variables from DOTENV_FILE (default .env). A missing
// file is not an error; variables already in the environment win.
func loadDotEnv() error {
	path := os.Getenv(EnvDotEnvFile)
	if path == "" {
		path = defaultDotEnvFile
	}

	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

func mask(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
