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
	Lab         LabConfig         `toml:"lab"`
	Eligibility EligibilityConfig `toml:"eligibility"`
	Staff       StaffConfig       `toml:"staff"`
	Mailer      MailerConfig      `toml:"mailer"`
}

// ServerConfig настройки HTTP сервера
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	MigrationsDir   string `toml:"migrations_dir"`
}

// DSN собирает строку подключения для lib/pq
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// LabConfig расписание работы лабораторий
type LabConfig struct {
	Timezone    string                    `toml:"timezone"`
	HorizonDays int                       `toml:"horizon_days"`
	SlotMinutes int                       `toml:"slot_minutes"`
	Locations   map[string]LocationConfig `toml:"locations"`
}

// LocationConfig часы работы одной лаборатории
// Ключ: день недели в нижнем регистре ("monday".."sunday"),
// значение: пара [открытие, закрытие] в формате HH:MM.
// Отсутствующий день означает, что лаборатория закрыта.
type LocationConfig struct {
	Hours map[string][]string `toml:"hours"`
}

// EligibilityConfig предикаты допуска студентов к записи
type EligibilityConfig struct {
	StudentIDPrefix string   `toml:"student_id_prefix"`
	EmailSuffixes   []string `toml:"email_suffixes"`
	ExamNumbers     []string `toml:"exam_numbers"`
}

// StaffConfig доступ к панели персонала
type StaffConfig struct {
	Passcode string `toml:"passcode"`
}

// MailerConfig отправка писем-подтверждений через почтовый релей кампуса
// При enabled = false подтверждения только логируются
type MailerConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	From    string `toml:"from"`
	Timeout int    `toml:"timeout"`
}

// Load читает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("database.host and database.dbname are required")
	}
	if c.Lab.Timezone == "" {
		return fmt.Errorf("lab.timezone is required")
	}
	if c.Lab.HorizonDays <= 0 {
		return fmt.Errorf("lab.horizon_days must be positive")
	}
	if c.Lab.SlotMinutes <= 0 {
		return fmt.Errorf("lab.slot_minutes must be positive")
	}
	if len(c.Lab.Locations) == 0 {
		return fmt.Errorf("lab.locations must not be empty")
	}
	for name, loc := range c.Lab.Locations {
		for day, pair := range loc.Hours {
			if len(pair) != 2 {
				return fmt.Errorf("lab.locations.%s.hours.%s must be an [open, close] pair", name, day)
			}
		}
	}
	if c.Staff.Passcode == "" {
		return fmt.Errorf("staff.passcode is required")
	}
	if c.Mailer.Enabled && c.Mailer.URL == "" {
		return fmt.Errorf("mailer.url is required when mailer is enabled")
	}
	return nil
}
