package utils

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Event    EventConfig
	Store    StoreConfig
	Admin    AdminConfig
	Database DatabaseConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

// EventConfig describes the show being sold.
type EventConfig struct {
	SeatCapacity  int
	TicketPrice   int
	DeadlineLabel string
}

// StoreConfig selects and locates the booking table storage.
type StoreConfig struct {
	Driver       string
	DataDir      string
	PaymentsFile string
	InterestFile string
	BackupDir    string
}

// PaymentsPath is the booking table location for the CSV driver.
func (s StoreConfig) PaymentsPath() string {
	return filepath.Join(s.DataDir, s.PaymentsFile)
}

// InterestPath is the declared-interest registry location.
func (s StoreConfig) InterestPath() string {
	return filepath.Join(s.DataDir, s.InterestFile)
}

// BackupPath is where restores archive the outgoing table.
func (s StoreConfig) BackupPath() string {
	return filepath.Join(s.DataDir, s.BackupDir)
}

type AdminConfig struct {
	Password string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "book-seat-pay")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("SEAT_CAPACITY", 85)
	viper.SetDefault("TICKET_PRICE", 10)
	viper.SetDefault("PAYMENT_DEADLINE_LABEL", "20 December 2025")
	viper.SetDefault("STORE_DRIVER", "csv")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("PAYMENTS_FILE", "payments.csv")
	viper.SetDefault("INTEREST_FILE", "interest.csv")
	viper.SetDefault("BACKUP_DIR", "backups")
	viper.SetDefault("DB_MAX_CONNS", 10)

	// A missing .env is fine, the environment alone can carry the settings.
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Event: EventConfig{
			SeatCapacity:  viper.GetInt("SEAT_CAPACITY"),
			TicketPrice:   viper.GetInt("TICKET_PRICE"),
			DeadlineLabel: viper.GetString("PAYMENT_DEADLINE_LABEL"),
		},
		Store: StoreConfig{
			Driver:       viper.GetString("STORE_DRIVER"),
			DataDir:      viper.GetString("DATA_DIR"),
			PaymentsFile: viper.GetString("PAYMENTS_FILE"),
			InterestFile: viper.GetString("INTEREST_FILE"),
			BackupDir:    viper.GetString("BACKUP_DIR"),
		},
		Admin: AdminConfig{
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
	}

	if config.Admin.Password == "" {
		return nil, errors.New("ADMIN_PASSWORD must be set")
	}
	if config.Event.SeatCapacity <= 0 {
		return nil, errors.New("SEAT_CAPACITY must be positive")
	}
	if config.Event.TicketPrice <= 0 {
		return nil, errors.New("TICKET_PRICE must be positive")
	}

	return config, nil
}
