package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Processor   ProcessorConfig   `toml:"processor"`
	Notifier    NotifierConfig    `toml:"notifier"`
	Jobs        JobsConfig        `toml:"jobs"`
	Replication ReplicationConfig `toml:"replication"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ProcessorConfig настройки платежного процессора
type ProcessorConfig struct {
	BaseURL   string `toml:"base_url"`
	SecretKey string `toml:"secret_key"`
	Timeout   int    `toml:"timeout"` // секунды, таймаут одного вызова
	Currency  string `toml:"currency"`
}

// NotifierConfig настройки сервиса уведомлений
type NotifierConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// JobsConfig настройки батч-джобов платежного цикла
type JobsConfig struct {
	// Secret bearer-токен, которым внешний планировщик авторизует запуск джобов
	Secret string `toml:"secret"`
	// BatchLimit максимальное число платежей, обрабатываемых за один запуск
	BatchLimit uint64 `toml:"batch_limit"`
}

// ReplicationConfig настройки дублирования запуска джобов на вторичное окружение
// Используется только для неавторитативной staging-репликации
type ReplicationConfig struct {
	Enabled      bool   `toml:"enabled"`
	SecondaryURL string `toml:"secondary_url"`
	Timeout      int    `toml:"timeout"` // секунды
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort == 0 {
		return fmt.Errorf("config: server.http_port is required")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if c.Processor.BaseURL == "" || c.Processor.SecretKey == "" {
		return fmt.Errorf("config: processor.base_url and processor.secret_key are required")
	}
	if c.Jobs.Secret == "" {
		return fmt.Errorf("config: jobs.secret is required")
	}
	if c.Jobs.BatchLimit == 0 {
		c.Jobs.BatchLimit = 100
	}
	if c.Processor.Currency == "" {
		c.Processor.Currency = "usd"
	}
	return nil
}
