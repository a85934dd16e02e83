package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Backend      BackendConfig
	Redis        RedisConfig
	CORS         CORSConfig
	Log          LogConfig
	Capabilities CapabilitiesConfig
	Polling      PollingConfig
	Video        VideoConfig
	Export       ExportConfig
	Trends       TrendsConfig
	VK           VKConfig
}

// BackendConfig points the gateway at the remote content backend.
type BackendConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	RefreshSkew    time.Duration
	LoginPath      string
	RefreshPath    string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CapabilitiesConfig controls session capability caching.
type CapabilitiesConfig struct {
	CacheTTL time.Duration
}

// PollingConfig tunes the background backend pollers.
type PollingConfig struct {
	Enabled          bool
	AnalyticsList    time.Duration
	AnalysisStatus   time.Duration
	SnapshotCacheTTL time.Duration
}

// VideoConfig gates the video-generation affordance.
type VideoConfig struct {
	AllowedClientSlugs []string
	DevMode            bool
}

// ExportConfig toggles content-plan export endpoints.
type ExportConfig struct {
	Enabled bool
}

// TrendsConfig toggles the trends feed endpoints.
type TrendsConfig struct {
	Enabled bool
}

// VKConfig controls the VK integration surface.
type VKConfig struct {
	Enabled          bool
	MaxUploadBytes   int64
	AllowedPhotoMIME []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Backend = BackendConfig{
		BaseURL:        strings.TrimRight(v.GetString("BACKEND_BASE_URL"), "/"),
		RequestTimeout: parseDuration(v.GetString("BACKEND_REQUEST_TIMEOUT"), 30*time.Second),
		RefreshSkew:    parseDuration(v.GetString("BACKEND_REFRESH_SKEW"), 30*time.Second),
		LoginPath:      v.GetString("BACKEND_LOGIN_PATH"),
		RefreshPath:    v.GetString("BACKEND_REFRESH_PATH"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Capabilities = CapabilitiesConfig{
		CacheTTL: parseDuration(v.GetString("CAPABILITIES_CACHE_TTL"), 15*time.Minute),
	}

	cfg.Polling = PollingConfig{
		Enabled:          v.GetBool("ENABLE_POLLING"),
		AnalyticsList:    parseDuration(v.GetString("POLL_ANALYTICS_INTERVAL"), 5*time.Second),
		AnalysisStatus:   parseDuration(v.GetString("POLL_ANALYSIS_STATUS_INTERVAL"), 10*time.Second),
		SnapshotCacheTTL: parseDuration(v.GetString("POLL_SNAPSHOT_CACHE_TTL"), time.Minute),
	}

	cfg.Video = VideoConfig{
		AllowedClientSlugs: splitAndTrim(v.GetString("VIDEO_ALLOWED_CLIENT_SLUGS")),
		DevMode:            v.GetBool("VIDEO_DEV_MODE"),
	}

	cfg.Export = ExportConfig{Enabled: v.GetBool("ENABLE_EXPORT")}
	cfg.Trends = TrendsConfig{Enabled: v.GetBool("ENABLE_TRENDS")}

	maxUpload := v.GetInt64("VK_MAX_UPLOAD_BYTES")
	if maxUpload <= 0 {
		maxUpload = 10 * 1024 * 1024
	}
	cfg.VK = VKConfig{
		Enabled:          v.GetBool("ENABLE_VK"),
		MaxUploadBytes:   maxUpload,
		AllowedPhotoMIME: splitAndTrim(v.GetString("VK_ALLOWED_PHOTO_MIME_TYPES")),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("BACKEND_BASE_URL", "http://localhost:8000")
	v.SetDefault("BACKEND_REQUEST_TIMEOUT", "30s")
	v.SetDefault("BACKEND_REFRESH_SKEW", "30s")
	v.SetDefault("BACKEND_LOGIN_PATH", "/api/auth/telegram")
	v.SetDefault("BACKEND_REFRESH_PATH", "/auth/refresh/")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("CAPABILITIES_CACHE_TTL", "15m")

	v.SetDefault("ENABLE_POLLING", false)
	v.SetDefault("POLL_ANALYTICS_INTERVAL", "5s")
	v.SetDefault("POLL_ANALYSIS_STATUS_INTERVAL", "10s")
	v.SetDefault("POLL_SNAPSHOT_CACHE_TTL", "1m")

	v.SetDefault("VIDEO_ALLOWED_CLIENT_SLUGS", "")
	v.SetDefault("VIDEO_DEV_MODE", false)

	v.SetDefault("ENABLE_EXPORT", false)
	v.SetDefault("ENABLE_TRENDS", false)

	v.SetDefault("ENABLE_VK", false)
	v.SetDefault("VK_MAX_UPLOAD_BYTES", 10*1024*1024)
	v.SetDefault("VK_ALLOWED_PHOTO_MIME_TYPES", "image/jpeg,image/png,image/webp")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
