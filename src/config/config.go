package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"db"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Catalogo  CatalogoConfig  `mapstructure:"catalogo"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Seed      SeedConfig      `mapstructure:"seed"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	// TrustedProxies are the only peers whose X-Forwarded-For is honored.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

type DBConfig struct {
	DSN             string `mapstructure:"dsn"`
	ConnectAttempts uint   `mapstructure:"connect_attempts"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type CatalogoConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type RateLimitConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	RPS         float64       `mapstructure:"rps"`
	Burst       int           `mapstructure:"burst"`
	RedisAddr   string        `mapstructure:"redis_addr"`
	RedisPrefix string        `mapstructure:"redis_prefix"`
	StatsTTL    time.Duration `mapstructure:"stats_ttl"`
}

type SeedConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// SlogLevel maps log.level onto slog, defaulting to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: ":8080"},
		DB:     DBConfig{ConnectAttempts: 5},
		JWT:    JWTConfig{TTL: 12 * time.Hour},
		Catalogo: CatalogoConfig{
			BaseURL: "http://localhost:8082",
			Timeout: 5 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled:     true,
			RPS:         20,
			Burst:       40,
			RedisPrefix: "circulacion:ratelimit",
			StatsTTL:    24 * time.Hour,
		},
		Seed: SeedConfig{Username: "bibliotecario"},
		Log:  LogConfig{Level: "info"},
	}
}

// Manager loads configuration and keeps it current when the file changes.
type Manager struct {
	mu        sync.RWMutex
	v         *viper.Viper
	config    *Config
	callbacks []func(*Config)
}

// NewManager loads .env (if present), defaults, the optional config file and
// CIRCULACION_* environment variables, in increasing precedence.
func NewManager(cfgFile string) (*Manager, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	m := &Manager{v: viper.New()}
	if err := m.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := m.load()
	if err != nil {
		return nil, err
	}
	m.config = cfg
	return m, nil
}

func (m *Manager) initViper(cfgFile string) error {
	v := m.v
	d := DefaultConfig()
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.trusted_proxies", d.Server.TrustedProxies)
	v.SetDefault("db.dsn", d.DB.DSN)
	v.SetDefault("db.connect_attempts", d.DB.ConnectAttempts)
	v.SetDefault("jwt.secret", d.JWT.Secret)
	v.SetDefault("jwt.ttl", d.JWT.TTL)
	v.SetDefault("catalogo.base_url", d.Catalogo.BaseURL)
	v.SetDefault("catalogo.timeout", d.Catalogo.Timeout)
	v.SetDefault("cors.allow_origins", d.CORS.AllowOrigins)
	v.SetDefault("ratelimit.enabled", d.RateLimit.Enabled)
	v.SetDefault("ratelimit.rps", d.RateLimit.RPS)
	v.SetDefault("ratelimit.burst", d.RateLimit.Burst)
	v.SetDefault("ratelimit.redis_addr", d.RateLimit.RedisAddr)
	v.SetDefault("ratelimit.redis_prefix", d.RateLimit.RedisPrefix)
	v.SetDefault("ratelimit.stats_ttl", d.RateLimit.StatsTTL)
	v.SetDefault("seed.username", d.Seed.Username)
	v.SetDefault("seed.password", d.Seed.Password)
	v.SetDefault("log.level", d.Log.Level)

	v.SetEnvPrefix("CIRCULACION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

func (m *Manager) load() (*Config, error) {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *Manager) OnChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// WatchConfig reloads the config file on change and notifies callbacks.
func (m *Manager) WatchConfig() {
	m.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := m.load()
		if err != nil {
			slog.Warn("config reload failed", "file", e.Name, "error", err)
			return
		}

		m.mu.Lock()
		m.config = cfg
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.Unlock()

		slog.Info("config reloaded", "file", e.Name, "op", e.Op.String())
		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	m.v.WatchConfig()
}

// Validate checks settings that have no usable default.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required (CIRCULACION_JWT_SECRET)")
	}
	if c.DB.DSN == "" {
		return errors.New("db.dsn is required (CIRCULACION_DB_DSN)")
	}
	return nil
}
