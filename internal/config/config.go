package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"tavola/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig         `yaml:"app"`
	Server     ServerConfig      `yaml:"server"`
	Admin      AdminConfig       `yaml:"admin"`
	Database   DatabaseConfig    `yaml:"database"`
	Redis      RedisConfig       `yaml:"redis"`
	Logging    LoggingConfig     `yaml:"logging"`
	Monitoring MonitoringConfig  `yaml:"monitoring"`
	Restaurant models.Restaurant `yaml:"restaurant"`
	Booking    BookingConfig     `yaml:"booking"`
	Backup     BackupConfig      `yaml:"backup"`
	Google     GoogleConfig      `yaml:"google"`
	Telegram   TelegramConfig    `yaml:"telegram"`
	Exports    ExportConfig      `yaml:"exports"`
	Content    ContentConfig     `yaml:"content"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type ServerConfig struct {
	Port           int     `yaml:"port"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

type AdminConfig struct {
	Password     string        `yaml:"password"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
	SessionToken string        `yaml:"session_token"` // fixed token for tests; random when empty
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type BookingConfig struct {
	MaxPartySize   int `yaml:"max_party_size"`
	MaxBookingDays int `yaml:"max_booking_days"`
}

type BackupConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Interval      string `yaml:"interval"`
	RetentionDays int    `yaml:"retention_days"`
	StoragePath   string `yaml:"storage_path"`
}

type GoogleConfig struct {
	CredentialsFile      string `yaml:"credentials_file"`
	BookingSpreadsheetID string `yaml:"bookings_spreadsheet_id"`
}

type TelegramConfig struct {
	BotToken     string  `yaml:"bot_token"`
	StaffChatIDs []int64 `yaml:"staff_chat_ids"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

type ContentConfig struct {
	SeedFile string `yaml:"seed_file"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional; when present its values feed the ${VAR} expansion below.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Admin.Password == "" || c.Admin.Password == "CHANGE_ME" {
		return errors.New("admin password is required")
	}
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}
	if c.Booking.MaxPartySize < 1 {
		return fmt.Errorf("booking.max_party_size must be positive, got %d", c.Booking.MaxPartySize)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "tavola"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.RateLimitBurst == 0 {
		c.Server.RateLimitBurst = 5
	}
	if c.Admin.SessionTTL == 0 {
		c.Admin.SessionTTL = 12 * time.Hour
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Booking.MaxPartySize == 0 {
		c.Booking.MaxPartySize = 12
	}
	if c.Booking.MaxBookingDays == 0 {
		c.Booking.MaxBookingDays = 365
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}

	if c.Restaurant.Name == "" {
		c.Restaurant = DefaultRestaurant()
	}
	if c.Restaurant.TotalCovers == 0 {
		c.Restaurant.TotalCovers = 45
	}
}

// DefaultRestaurant is the built-in profile used when the config file does
// not override it.
func DefaultRestaurant() models.Restaurant {
	return models.Restaurant{
		Name:        "Bella Tavola",
		Tagline:     "Authentic Italian, Reimagined",
		Description: "Nestled in the heart of the city, Bella Tavola brings the soul of Italy to your table. Our chefs craft each dish with passion, using the finest ingredients sourced from Italian artisans and local farms. From handmade pasta to wood-fired pizza, every bite tells a story of tradition and innovation.",
		Address:     "42 Florence Street, London, EC2A 4BQ",
		Phone:       "+44 20 7946 0123",
		Email:       "hello@bellatavola.co.uk",
		Hours: map[string]string{
			"Monday":             "Closed",
			"Tuesday – Thursday": "12:00 – 22:00",
			"Friday – Saturday":  "12:00 – 23:00",
			"Sunday":             "12:00 – 21:00",
		},
		TotalCovers: 45,
	}
}
