package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultRunAddress    = "localhost:8080"
	defaultMigrationsDir = "internal/db/migrations"
	defaultNotifyWorkers = 5
)

type Config struct {
	RunAddress       string `env:"RUN_ADDRESS"`
	DatabaseDSN      string `env:"DATABASE_URI"`
	MigrationsDir    string `env:"MIGRATIONS_DIR"`
	NotifyWebhookURL string `env:"NOTIFY_WEBHOOK_URL"`
	NotifyWorkers    uint   `env:"NOTIFY_WORKERS"`
}

// LoadConfig собирает конфигурацию из .env файла (если есть), переменных окружения и флагов args.
// Переменные окружения имеют приоритет над флагами.
func LoadConfig(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %s", err.Error())
	}

	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	if flagsErr := loadFlags(&flagsConfig, args); flagsErr != nil {
		return nil, flagsErr
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	return conf, nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return config
}

func loadFlags(flagConfig *Config, args []string) error {
	fset := flag.NewFlagSet("settle", flag.ContinueOnError)
	fset.StringVar(&flagConfig.RunAddress, "a", defaultRunAddress, "Run address in format host:port")
	fset.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	fset.StringVar(&flagConfig.MigrationsDir, "m", defaultMigrationsDir, "Database migrations directory")
	fset.StringVar(&flagConfig.NotifyWebhookURL, "n", "", "Commission notification webhook URL")
	fset.UintVar(&flagConfig.NotifyWorkers, "w", defaultNotifyWorkers, "Commission notification workers")

	if err := fset.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %s", err.Error())
	}
	return nil
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	workers := flagsConfig.NotifyWorkers
	if envConfig.NotifyWorkers > 0 {
		workers = envConfig.NotifyWorkers
	}
	return &Config{
		RunAddress:       defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress),
		DatabaseDSN:      defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		MigrationsDir:    defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir),
		NotifyWebhookURL: defaultIfBlank(envConfig.NotifyWebhookURL, flagsConfig.NotifyWebhookURL),
		NotifyWorkers:    workers,
	}
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
