package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	defaultConfigPath = "config/config.yaml"
	defaultAddress    = ":4001"
	defaultDriver     = "mysql"
	defaultChannel    = "catalog:categories"
	defaultBusinessID = "550e8400-e29b-41d4-a716-446655440000"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Database struct {
		Driver  string `yaml:"driver"`
		URL     string `yaml:"url"`
		Migrate bool   `yaml:"migrate"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Channel  string `yaml:"channel"`
	} `yaml:"redis"`
	Catalog struct {
		DefaultAttributes []string `yaml:"default_attributes"`
		MaxAttributes     int      `yaml:"max_attributes"`
	} `yaml:"catalog"`
	Inventory struct {
		BusinessID string `yaml:"business_id"`
	} `yaml:"inventory"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

// LoadConfig reads the YAML file named by CONFIG_PATH (or the default path),
// applies environment overrides and validates the result. A missing file is
// not an error when the environment supplies everything.
func LoadConfig() (Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("unmarshal %s: %w", path, err)
		}
	case os.IsNotExist(err) && os.Getenv("CONFIG_PATH") == "":
	default:
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Address = ":" + strings.TrimPrefix(v, ":")
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("DB_MIGRATE"); v != "" {
		migrate, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse DB_MIGRATE: %w", err)
		}
		c.Database.Migrate = migrate
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse REDIS_DB: %w", err)
		}
		c.Redis.DB = db
	}
	if v := os.Getenv("BUSINESS_ID"); v != "" {
		c.Inventory.BusinessID = v
	}
	if v := os.Getenv("DEFAULT_ATTRIBUTES"); v != "" {
		c.Catalog.DefaultAttributes = splitList(v)
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.CORS.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = defaultAddress
	}
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if c.Database.Driver == "" {
		c.Database.Driver = defaultDriver
	}
	if c.Redis.Channel == "" {
		c.Redis.Channel = defaultChannel
	}
	if c.Inventory.BusinessID == "" {
		c.Inventory.BusinessID = defaultBusinessID
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "pgx", "sqlite":
	default:
		return fmt.Errorf("database driver %q is not supported (use mysql, pgx or sqlite)", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.URL) == "" {
		return fmt.Errorf("database url is required (DATABASE_URL)")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("redis db must not be negative")
	}
	if c.Catalog.MaxAttributes < 0 {
		return fmt.Errorf("catalog max_attributes must not be negative")
	}
	if c.Catalog.MaxAttributes > 0 && len(c.Catalog.DefaultAttributes) > c.Catalog.MaxAttributes {
		return fmt.Errorf("catalog max_attributes must leave room for the default attributes")
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
