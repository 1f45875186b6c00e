package setup

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/NethermindEth/amanti/pkg/amanti/note"
)

type Config struct {
	GeminiApiKey       string
	GeminiModel        string
	GeminiBaseUrl      string
	ApiIpPort          string
	PromptVariant      string
	SessionCacheSize   string
	SessionTtl         string
	GenerationWorkers  string
	CorsAllowedOrigins string
	SecureCookies      string
}

func NewConfigFromEnv() (*Config, error) {
	config := &Config{
		GeminiApiKey:       os.Getenv(EnvGeminiApiKey),
		GeminiModel:        os.Getenv(EnvGeminiModel),
		GeminiBaseUrl:      os.Getenv(EnvGeminiBaseUrl),
		ApiIpPort:          os.Getenv(EnvApiIpPort),
		PromptVariant:      os.Getenv(EnvPromptVariant),
		SessionCacheSize:   os.Getenv(EnvSessionCacheSize),
		SessionTtl:         os.Getenv(EnvSessionTtl),
		GenerationWorkers:  os.Getenv(EnvGenerationWorkers),
		CorsAllowedOrigins: os.Getenv(EnvCorsAllowedOrigins),
		SecureCookies:      os.Getenv(EnvSecureCookies),
	}

	err := config.Validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.GeminiApiKey == "" {
		return errors.New("GEMINI_API_KEY is required")
	}
	if _, err := note.ParsePromptVariant(c.PromptVariant); err != nil {
		return fmt.Errorf("PROMPT_VARIANT is invalid: %w", err)
	}
	if _, err := parsePositiveInt(c.SessionCacheSize); err != nil {
		return fmt.Errorf("SESSION_CACHE_SIZE is invalid: %w", err)
	}
	if _, err := parseDuration(c.SessionTtl); err != nil {
		return fmt.Errorf("SESSION_TTL is invalid: %w", err)
	}
	if _, err := parsePositiveInt(c.GenerationWorkers); err != nil {
		return fmt.Errorf("GENERATION_WORKERS is invalid: %w", err)
	}
	if _, err := parseBool(c.SecureCookies); err != nil {
		return fmt.Errorf("SECURE_COOKIES is invalid: %w", err)
	}

	return nil
}

// parsePositiveInt returns 0 for an unset value so the caller can fall back
// to its default.
func parsePositiveInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}

	return n, nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", d)
	}

	return d, nil
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
