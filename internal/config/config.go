package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	"github.com/m04kA/SMC-DutyRosterService/pkg/types"
)

// Драйверы хранилища
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Переменные окружения с секретами, перекрывают значения из config.toml
const (
	envDBPassword    = "DB_PASSWORD"
	envRabbitURL     = "RABBITMQ_URL"
	envAdminPassword = "ADMIN_PASSWORD"
)

var (
	ErrReadConfig      = errors.New("config: failed to read config file")
	ErrLoadEnv         = errors.New("config: failed to load .env file")
	ErrInvalidConfig   = errors.New("config: validation failed")
	ErrInvalidTimezone = errors.New("config: invalid timezone")
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Storage       StorageConfig       `toml:"storage"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Calendar      CalendarConfig      `toml:"calendar"`
	Slots         []SlotConfig        `toml:"slots" validate:"dive"`
	Notifications NotificationsConfig `toml:"notifications"`
	Archive       ArchiveConfig       `toml:"archive"`
	Alerts        AlertsConfig        `toml:"alerts"`
	Admin         AdminConfig         `toml:"admin"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" validate:"required,min=1,max=65535"`
	ReadTimeout     int `toml:"read_timeout" validate:"min=0"`
	WriteTimeout    int `toml:"write_timeout" validate:"min=0"`
	IdleTimeout     int `toml:"idle_timeout" validate:"min=0"`
	ShutdownTimeout int `toml:"shutdown_timeout" validate:"min=0"`
}

type StorageConfig struct {
	Driver string `toml:"driver" validate:"required,oneof=postgres memory"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" validate:"required"`
	Port            int    `toml:"port" validate:"required,min=1,max=65535"`
	User            string `toml:"user" validate:"required"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" validate:"required"`
	SSLMode         string `toml:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int    `toml:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int    `toml:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" validate:"min=0"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, sslMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name" validate:"required_if=Enabled true"`
	Path        string `toml:"path" validate:"required_if=Enabled true"`
}

type CalendarConfig struct {
	Timezone          string `toml:"timezone" validate:"required"`
	HolidaysFile      string `toml:"holidays_file"`
	BlackoutFromMonth int    `toml:"blackout_from_month" validate:"min=0,max=12"`
	BlackoutToMonth   int    `toml:"blackout_to_month" validate:"min=0,max=12"`
}

// Location загружает часовой пояс организации
func (c CalendarConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTimezone, c.Timezone, err)
	}
	return loc, nil
}

// BlackoutMonths диапазон сезонной паузы, 0/0 - паузы нет
func (c CalendarConfig) BlackoutMonths() (time.Month, time.Month) {
	return time.Month(c.BlackoutFromMonth), time.Month(c.BlackoutToMonth)
}

type SlotConfig struct {
	ID          int    `toml:"id" validate:"min=0"`
	Weekday     string `toml:"weekday" validate:"required"`
	StartTime   string `toml:"start_time" validate:"required,len=5"`
	EndTime     string `toml:"end_time" validate:"required,len=5"`
	DisplayName string `toml:"display_name"`
}

type NotificationsConfig struct {
	Enabled        bool   `toml:"enabled"`
	RabbitURL      string `toml:"rabbit_url" validate:"required_if=Enabled true"`
	Exchange       string `toml:"exchange" validate:"required_if=Enabled true"`
	PublishTimeout int    `toml:"publish_timeout" validate:"min=0"`
}

type ArchiveConfig struct {
	RetentionDays int `toml:"retention_days" validate:"min=1"`
}

type AlertsConfig struct {
	HorizonDays int `toml:"horizon_days" validate:"min=1,max=366"`
}

type AdminConfig struct {
	Email    string `toml:"email" validate:"omitempty,email"`
	Name     string `toml:"name" validate:"required_with=Email"`
	Password string `toml:"password" validate:"required_with=Email"`
}

// Load загружает конфигурацию из TOML файла
// Рядом с файлом может лежать .env с секретами; переменные окружения имеют приоритет
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadEnv, envPath, err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if (c.Calendar.BlackoutFromMonth == 0) != (c.Calendar.BlackoutToMonth == 0) {
		return fmt.Errorf("%w: blackout_from_month and blackout_to_month must be set together", ErrInvalidConfig)
	}

	if _, err := c.Calendar.Location(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	for i, s := range c.Slots {
		if _, err := types.NewTimeRange(types.TimeString(s.StartTime), types.TimeString(s.EndTime)); err != nil {
			return fmt.Errorf("%w: slots[%d]: %v", ErrInvalidConfig, i, err)
		}
	}

	return nil
}

// SlotDefinitions переводит [[slots]] в доменные определения; nil если слоты не заданы
func (c *Config) SlotDefinitions() []domain.SlotDefinition {
	if len(c.Slots) == 0 {
		return nil
	}
	defs := make([]domain.SlotDefinition, 0, len(c.Slots))
	for _, s := range c.Slots {
		defs = append(defs, domain.SlotDefinition{
			ID:          s.ID,
			Weekday:     s.Weekday,
			StartTime:   types.TimeString(s.StartTime),
			EndTime:     types.TimeString(s.EndTime),
			DisplayName: s.DisplayName,
		})
	}
	return defs
}

// PublishTimeoutDuration таймаут публикации события
func (c NotificationsConfig) PublishTimeoutDuration() time.Duration {
	return time.Duration(c.PublishTimeout) * time.Second
}

func (c *Config) applyEnv() {
	if v := os.Getenv(envDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(envRabbitURL); v != "" {
		c.Notifications.RabbitURL = v
	}
	if v := os.Getenv(envAdminPassword); v != "" {
		c.Admin.Password = v
	}
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "duty_roster",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			ServiceName: "duty_roster_service",
			Path:        "/metrics",
		},
		Calendar: CalendarConfig{
			Timezone:          domain.DefaultTimezone,
			BlackoutFromMonth: int(domain.DefaultBlackoutFromMonth),
			BlackoutToMonth:   int(domain.DefaultBlackoutToMonth),
		},
		Notifications: NotificationsConfig{
			Exchange:       "duty.events",
			PublishTimeout: 5,
		},
		Archive: ArchiveConfig{RetentionDays: domain.DefaultRetentionDays},
		Alerts:  AlertsConfig{HorizonDays: domain.DefaultAlertHorizonDays},
	}
}
