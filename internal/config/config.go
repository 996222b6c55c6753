// Package config loads hdns command configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/haukened/hdns"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// Token authenticates against the DNS API. It has no default and must be
	// provided via HDNS_TOKEN.
	Token string `koanf:"token" validate:"required"`

	// Endpoint is the base URL of the DNS API.
	Endpoint string `koanf:"endpoint" validate:"required,url"`

	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// Timeout bounds each API call, in seconds, when the caller sets no deadline.
	Timeout int `koanf:"timeout" validate:"required,gte=1,lte=300"`

	// PerPage is the page size requested for paginated listings.
	PerPage int `koanf:"per_page" validate:"required,gte=1,lte=100"`

	// BackupPath is the bolt database file that holds zone snapshots.
	BackupPath string `koanf:"backup_path" validate:"required"`

	// Trace selects span export, either "off" or "console".
	Trace string `koanf:"trace" validate:"required,oneof=off console"`
}

// envLoader is a function that loads environment variables with the prefix "HDNS_".
// It transforms the keys to lowercase and removes the prefix.
// and can be mocked in tests.
var envLoader = func(k *koanf.Koanf) error {
	// Load environment variables with prefix "HDNS_".
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "HDNS_",
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, "HDNS_")), value
		},
	}), nil)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	// Load default values using structs provider.
	k.Load(structs.Provider(AppConfig{
		Endpoint:   hdns.DefaultEndpoint,
		Env:        "prod",
		LogLevel:   "info",
		Timeout:    30,
		PerPage:    100,
		BackupPath: "hdns-backup.db",
		Trace:      "off",
	}, "koanf"), nil)

	// Load environment variables with prefix "HDNS_", using koanf/providers/env/v2 and Opt pattern.
	err := envLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig

	// Unmarshal the loaded configuration into AppConfig struct.
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Validate the configuration.
	validate := validator.New(validator.WithRequiredStructEnabled())

	err = validate.Struct(&cfg)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
