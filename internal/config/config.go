package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// ErrInvalidConfig возвращается, когда конфигурация содержит недопустимые значения
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Accounts  AccountsConfig  `toml:"accounts"`
	Kafka     KafkaConfig     `toml:"kafka"`
	Sessions  SessionsConfig  `toml:"sessions"`
	Access    AccessConfig    `toml:"access"`
	Booking   BookingConfig   `toml:"booking"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AccountsConfig сервис аккаунтов (роль пользователя); timeout в секундах
type AccountsConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// KafkaConfig публикация событий; при enabled = false события не отправляются
type KafkaConfig struct {
	Enabled      bool     `toml:"enabled"`
	Brokers      []string `toml:"brokers"`
	Topic        string   `toml:"topic"`
	WriteTimeout int      `toml:"write_timeout"` // секунды
}

// SessionsConfig время жизни сессий мастера бронирования
type SessionsConfig struct {
	TTLMinutes     int `toml:"ttl_minutes"`
	CleanupMinutes int `toml:"cleanup_minutes"`
}

type AccessConfig struct {
	CacheTTLSeconds int `toml:"cache_ttl_seconds"`
}

// BookingConfig бизнес-параметры бронирования
type BookingConfig struct {
	PricingMode      string `toml:"pricing_mode"`
	MaxOccurrences   int    `toml:"max_occurrences"`
	ProviderCapacity int    `toml:"provider_capacity"`
}

type RateLimitConfig struct {
	Enabled        bool     `toml:"enabled"`
	RPS            float64  `toml:"rps"`
	Burst          int      `toml:"burst"`
	IdleTTLMinutes int      `toml:"idle_ttl_minutes"`
	TrustedProxies []string `toml:"trusted_proxies"` // IP или CIDR; пусто - X-Forwarded-For игнорируется
}

// Load читает конфигурацию из TOML файла
// Секреты переопределяются переменными окружения DB_PASSWORD и KAFKA_BROKERS
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		c.Database.Password = password
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		c.Kafka.Brokers = c.Kafka.Brokers[:0]
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				c.Kafka.Brokers = append(c.Kafka.Brokers, b)
			}
		}
	}
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 15)
	setDefault(&c.Server.WriteTimeout, 15)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 30)

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "petcare_booking_service"
	}

	setDefault(&c.Accounts.Timeout, 5)

	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "petcare.bookings"
	}
	setDefault(&c.Kafka.WriteTimeout, 5)

	setDefault(&c.Sessions.TTLMinutes, 30)
	setDefault(&c.Sessions.CleanupMinutes, 5)
	setDefault(&c.Access.CacheTTLSeconds, 300)

	if c.Booking.PricingMode == "" {
		c.Booking.PricingMode = string(domain.DefaultPricingMode)
	}
	setDefault(&c.Booking.MaxOccurrences, domain.DefaultMaxOccurrences)
	setDefault(&c.Booking.ProviderCapacity, domain.DefaultProviderCapacity)

	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 10
	}
	setDefault(&c.RateLimit.Burst, 20)
	setDefault(&c.RateLimit.IdleTTLMinutes, 10)
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

// Validate проверяет, что значения допустимы
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port %d is out of range", c.Server.HTTPPort))
	}
	if c.Database.Host == "" {
		problems = append(problems, "database.host is required")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}
	if c.Accounts.URL == "" {
		problems = append(problems, "accounts.url is required")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		problems = append(problems, "kafka.brokers is required when kafka is enabled")
	}
	if !domain.PricingMode(c.Booking.PricingMode).IsValid() {
		problems = append(problems, fmt.Sprintf("booking.pricing_mode %q is unknown", c.Booking.PricingMode))
	}
	if c.Booking.MaxOccurrences < 1 {
		problems = append(problems, "booking.max_occurrences must be positive")
	}
	if c.Booking.ProviderCapacity < 1 {
		problems = append(problems, "booking.provider_capacity must be positive")
	}
	if c.Sessions.TTLMinutes < 1 {
		problems = append(problems, "sessions.ttl_minutes must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1) {
		problems = append(problems, "rate_limit.rps and rate_limit.burst must be positive")
	}
	for _, proxy := range c.RateLimit.TrustedProxies {
		if !isIPOrCIDR(proxy) {
			problems = append(problems, fmt.Sprintf("rate_limit.trusted_proxies entry %q is not an IP or CIDR", proxy))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func isIPOrCIDR(s string) bool {
	if _, _, err := net.ParseCIDR(s); err == nil {
		return true
	}
	return net.ParseIP(s) != nil
}
