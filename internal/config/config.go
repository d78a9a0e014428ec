package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/ShadowArmy_Go/internal/accrual"
	"github.com/osse101/ShadowArmy_Go/internal/offline"
	"github.com/osse101/ShadowArmy_Go/internal/progression"
	"github.com/osse101/ShadowArmy_Go/internal/shadow"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	ServiceName string
	Version     string
	APIKey      string // API key for authentication

	// TrustedProxies are the remote addresses allowed to set X-Forwarded-For
	TrustedProxies []string

	// Persistence
	StorageDriver    string
	SaveDir          string
	SaveSlot         string
	SnapshotCacheTTL  time.Duration
	SnapshotCacheSize int

	// Activity log
	ActivityLogCapacity  int
	ActivityLogRetention time.Duration

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// Tick schedule
	HuntTickInterval    time.Duration
	AccrualTickInterval time.Duration
	CheckpointInterval  time.Duration
	AutosaveInterval    time.Duration
	WorkerCount         int
	WorkerQueueSize     int

	// Game tunables
	PlayerName         string
	PlayerExpGrowth    float64
	ShadowExpGrowth    float64
	StatPointsPerLevel int
	ShadowLevelBonus   float64
	ShadowExpShare     float64
	OfflineMinElapsed  time.Duration
	OfflineHuntCatchUp bool

	// Event publisher
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	OTELEnabled bool
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		APIKey:      getEnv("API_KEY", ""),

		StorageDriver:    strings.ToLower(getEnv("STORAGE_DRIVER", DefaultStorageDriver)),
		SaveDir:          getEnv("SAVE_DIR", DefaultSaveDir),
		SaveSlot:         getEnv("SAVE_SLOT", DefaultSaveSlot),
		SnapshotCacheTTL: getEnvAsDuration("SNAPSHOT_CACHE_TTL", DefaultSnapshotCacheTTL),

		SnapshotCacheSize:    getEnvAsInt("SNAPSHOT_CACHE_SIZE", DefaultSnapshotCacheSize),
		ActivityLogCapacity:  getEnvAsInt("ACTIVITY_LOG_CAPACITY", DefaultActivityLogCapacity),
		ActivityLogRetention: getEnvAsDuration("ACTIVITY_LOG_RETENTION", DefaultActivityLogRetention),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		HuntTickInterval:    getEnvAsDuration("HUNT_TICK_INTERVAL", DefaultHuntTickInterval),
		AccrualTickInterval: getEnvAsDuration("ACCRUAL_TICK_INTERVAL", DefaultAccrualTickInterval),
		CheckpointInterval:  getEnvAsDuration("CHECKPOINT_INTERVAL", DefaultCheckpointInterval),
		AutosaveInterval:    getEnvAsDuration("AUTOSAVE_INTERVAL", DefaultAutosaveInterval),
		WorkerCount:         getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize:     getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),

		PlayerName:         getEnv("PLAYER_NAME", progression.DefaultPlayerName),
		PlayerExpGrowth:    getEnvAsFloat("PLAYER_EXP_GROWTH", progression.DefaultGrowth),
		ShadowExpGrowth:    getEnvAsFloat("SHADOW_EXP_GROWTH", progression.DefaultGrowth),
		StatPointsPerLevel: getEnvAsInt("STAT_POINTS_PER_LEVEL", progression.DefaultStatPointsPerLevel),
		ShadowLevelBonus:   getEnvAsFloat("SHADOW_LEVEL_BONUS", shadow.DefaultLevelBonus),
		ShadowExpShare:     getEnvAsFloat("SHADOW_EXP_SHARE", accrual.DefaultShadowExpShare),
		OfflineMinElapsed:  getEnvAsDuration("OFFLINE_MIN_ELAPSED", offline.DefaultMinElapsed),
		OfflineHuntCatchUp: getEnvAsBool("OFFLINE_HUNT_CATCHUP", false),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetterPath),

		OTELEnabled: getEnvAsBool("OTEL_ENABLED", false),
	}

	portStr := getEnv("PORT", DefaultPort)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// Validate range-checks the values the server and the game depend on.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, errors.New(ErrMsgInvalidPort))
	}
	if c.StorageDriver != StorageDriverFile && c.StorageDriver != StorageDriverPostgres {
		errs = append(errs, errors.New(ErrMsgInvalidStorageDriver))
	}
	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		errs = append(errs, errors.New(ErrMsgInvalidLogFormat))
	}
	if c.SaveSlot == "" {
		errs = append(errs, errors.New(ErrMsgEmptySaveSlot))
	}

	intervals := []struct {
		key string
		val time.Duration
	}{
		{"HUNT_TICK_INTERVAL", c.HuntTickInterval},
		{"ACCRUAL_TICK_INTERVAL", c.AccrualTickInterval},
		{"CHECKPOINT_INTERVAL", c.CheckpointInterval},
		{"AUTOSAVE_INTERVAL", c.AutosaveInterval},
	}
	for _, iv := range intervals {
		if iv.val <= 0 {
			errs = append(errs, fmt.Errorf(ErrMsgInvalidInterval, iv.key))
		}
	}

	if !(c.PlayerExpGrowth > 1) {
		errs = append(errs, fmt.Errorf(ErrMsgInvalidGrowth, "PLAYER_EXP_GROWTH"))
	}
	if !(c.ShadowExpGrowth > 1) {
		errs = append(errs, fmt.Errorf(ErrMsgInvalidGrowth, "SHADOW_EXP_GROWTH"))
	}
	if c.StatPointsPerLevel < 0 {
		errs = append(errs, errors.New(ErrMsgInvalidStatPoints))
	}
	if c.ShadowLevelBonus < 0 {
		errs = append(errs, errors.New(ErrMsgInvalidLevelBonus))
	}
	if c.ShadowExpShare < 0 || c.ShadowExpShare > 1 {
		errs = append(errs, errors.New(ErrMsgInvalidExpShare))
	}
	if c.SnapshotCacheSize < 1 {
		errs = append(errs, errors.New(ErrMsgInvalidCacheSize))
	}
	if c.ActivityLogRetention <= 0 {
		errs = append(errs, fmt.Errorf(ErrMsgInvalidInterval, "ACTIVITY_LOG_RETENTION"))
	}
	if c.OfflineMinElapsed < 0 {
		errs = append(errs, errors.New(ErrMsgInvalidMinElapsed))
	}

	return errors.Join(errs...)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
