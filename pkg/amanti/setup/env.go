package setup

const (
	EnvGeminiApiKey       = "GEMINI_API_KEY"
	EnvGeminiModel        = "GEMINI_MODEL"
	EnvGeminiBaseUrl      = "GEMINI_BASE_URL"
	EnvApiIpPort          = "API_IP_PORT"
	EnvPromptVariant      = "PROMPT_VARIANT"
	EnvSessionCacheSize   = "SESSION_CACHE_SIZE"
	EnvSessionTtl         = "SESSION_TTL"
	EnvGenerationWorkers  = "GENERATION_WORKERS"
	EnvCorsAllowedOrigins = "CORS_ALLOWED_ORIGINS"
	EnvSecureCookies      = "SECURE_COOKIES"
	EnvDotEnvFile         = "DOTENV_FILE"
)
