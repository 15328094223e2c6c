package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mjfashion/billdesk/internal/types"
	"github.com/spf13/viper"
)

type Configuration struct {
	Logging LoggingConfig `validate:"required"`
	API     APIConfig     `validate:"required"`
	Auth    AuthConfig    `validate:"required"`
	Print   PrintConfig   `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required,oneof=debug info warn error"`
}

// APIConfig points at the billing api that persists bills
type APIConfig struct {
	BaseURL      string        `mapstructure:"base_url" validate:"required,url"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RetryMax     int           `mapstructure:"retry_max" validate:"gte=0"`
	RetryWaitMin time.Duration `mapstructure:"retry_wait_min"`
	RetryWaitMax time.Duration `mapstructure:"retry_wait_max" validate:"gtefield=RetryWaitMin"`
}

type AuthConfig struct {
	// SessionTTL applies when the api issues tokens without an exp claim
	SessionTTL time.Duration `mapstructure:"session_ttl" validate:"gt=0"`
	// SessionFile keeps the session between cli invocations, empty keeps it in memory only
	SessionFile string `mapstructure:"session_file"`
}

type PrintConfig struct {
	PageCapacity int              `mapstructure:"page_capacity" validate:"gt=0"`
	SerialMode   types.SerialMode `mapstructure:"serial_mode" validate:"required,oneof=per_page continuous"`
	PageSize     types.PageSize   `mapstructure:"page_size" validate:"required,oneof=A4 A5"`
	Title        string           `mapstructure:"title"`
	ShopName     string           `mapstructure:"shop_name"`
	OutputDir    string           `mapstructure:"output_dir"`
}

func NewConfig() (*Configuration, error) {
	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/billdesk")

	setDefaults(v)

	v.SetEnvPrefix("BILLDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.retry_max", 2)
	v.SetDefault("api.retry_wait_min", 500*time.Millisecond)
	v.SetDefault("api.retry_wait_max", 5*time.Second)
	v.SetDefault("auth.session_ttl", 12*time.Hour)
	v.SetDefault("auth.session_file", defaultSessionFile())
	v.SetDefault("print.page_capacity", types.DefaultPrintPageCapacity)
	v.SetDefault("print.serial_mode", types.SerialModePerPage)
	v.SetDefault("print.page_size", types.PageSizeA5)
	v.SetDefault("print.title", "ON APPROVAL / DELIVERY CHALLAN")
	v.SetDefault("print.shop_name", "")
	v.SetDefault("print.output_dir", ".")
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "billdesk", "session.json")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for tests and scripts that never reach a real api
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Logging: LoggingConfig{Level: types.LogLevelDebug},
		API: APIConfig{
			BaseURL:      "http://localhost:8000/api",
			Timeout:      30 * time.Second,
			RetryMax:     0,
			RetryWaitMin: 10 * time.Millisecond,
			RetryWaitMax: 50 * time.Millisecond,
		},
		Auth: AuthConfig{SessionTTL: 12 * time.Hour},
		Print: PrintConfig{
			PageCapacity: types.DefaultPrintPageCapacity,
			SerialMode:   types.SerialModePerPage,
			PageSize:     types.PageSizeA5,
			Title:        "ON APPROVAL / DELIVERY CHALLAN",
			ShopName:     "MJ FASHION MUMBAI",
			OutputDir:    ".",
		},
	}
}
