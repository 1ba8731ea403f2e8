package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/avelsk/NSD-SchedulingService/internal/domain"
	"github.com/avelsk/NSD-SchedulingService/pkg/types"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Business BusinessConfig `toml:"business"`
	Calendar CalendarConfig `toml:"calendar"`
	Admin    AdminConfig    `toml:"admin"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"`
	WriteTimeout    int    `toml:"write_timeout"`
	IdleTimeout     int    `toml:"idle_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
	Environment     string `toml:"environment"` // development | production
}

// IsProduction возвращает true для production окружения
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BusinessConfig рабочие часы салона и размер слота календарной сетки
type BusinessConfig struct {
	OpenTime            string `toml:"open_time"`  // "09:00"
	CloseTime           string `toml:"close_time"` // "19:00"
	SlotDurationMinutes int    `toml:"slot_duration_minutes"`
}

// Hours конвертирует рабочие часы в domain представление
func (b BusinessConfig) Hours() (domain.BusinessHours, error) {
	open, err := types.NewTimeStringFromString(b.OpenTime)
	if err != nil {
		return domain.BusinessHours{}, fmt.Errorf("config: invalid open_time %q: %w", b.OpenTime, err)
	}
	close, err := types.NewTimeStringFromString(b.CloseTime)
	if err != nil {
		return domain.BusinessHours{}, fmt.Errorf("config: invalid close_time %q: %w", b.CloseTime, err)
	}

	openMinutes, err := open.Minutes()
	if err != nil {
		return domain.BusinessHours{}, fmt.Errorf("config: invalid open_time %q: %w", b.OpenTime, err)
	}
	closeMinutes, err := close.Minutes()
	if err != nil {
		return domain.BusinessHours{}, fmt.Errorf("config: invalid close_time %q: %w", b.CloseTime, err)
	}
	if closeMinutes <= openMinutes {
		return domain.BusinessHours{}, fmt.Errorf("config: close_time %q must be after open_time %q", b.CloseTime, b.OpenTime)
	}

	return domain.BusinessHours{
		OpenHour:    openMinutes / 60,
		OpenMinute:  openMinutes % 60,
		CloseHour:   closeMinutes / 60,
		CloseMinute: closeMinutes % 60,
	}, nil
}

// CalendarConfig настройки клиента внешнего календаря
type CalendarConfig struct {
	Enabled    bool   `toml:"enabled"`
	URL        string `toml:"url"`
	CalendarID string `toml:"calendar_id"`
	APIToken   string `toml:"api_token"`
	Timeout    int    `toml:"timeout"` // секунды
}

// AdminConfig данные для первичного создания администратора
type AdminConfig struct {
	Email    string `toml:"email"`
	Name     string `toml:"name"`
	Password string `toml:"password"`
}

// Load читает конфигурацию из TOML файла
// Секреты могут быть переопределены переменными окружения:
// DB_PASSWORD, CALENDAR_API_TOKEN, ADMIN_PASSWORD
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("CALENDAR_API_TOKEN"); v != "" {
		cfg.Calendar.APIToken = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.Admin.Password = v
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "nsd-scheduling-service"
	}
	if cfg.Business.OpenTime == "" {
		cfg.Business.OpenTime = "09:00"
	}
	if cfg.Business.CloseTime == "" {
		cfg.Business.CloseTime = "19:00"
	}
	if cfg.Business.SlotDurationMinutes == 0 {
		cfg.Business.SlotDurationMinutes = 60
	}
	if cfg.Calendar.Timeout == 0 {
		cfg.Calendar.Timeout = 5
	}
}
