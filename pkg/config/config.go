// Package config loads service settings from an optional YAML file, a .env
// file and TOURIST_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"touristplaces/pkg/trend"
)

type Config struct {
	Server        Server        `yaml:"server"`
	Data          Data          `yaml:"data"`
	Elasticsearch Elasticsearch `yaml:"elasticsearch"`
	Auth          Auth          `yaml:"auth"`
	Log           Log           `yaml:"log"`
}

type Server struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `yaml:"cors_origins"`
}

type Data struct {
	Path     string `yaml:"path"`
	PageSize int    `yaml:"page_size"`
	Horizon  int    `yaml:"horizon"`
}

// Elasticsearch is optional. With no addresses the in-memory store serves
// paging and nearby queries.
type Elasticsearch struct {
	Addresses     []string      `yaml:"addresses"`
	Index         string        `yaml:"index"`
	Workers       int           `yaml:"workers"`
	FlushBytes    int           `yaml:"flush_bytes"`
	FlushInterval time.Duration `yaml:"flush_interval"`
}

func (e Elasticsearch) Enabled() bool {
	return len(e.Addresses) > 0
}

type Auth struct {
	JWTKey   string        `yaml:"jwt_key"`
	TokenTTL time.Duration `yaml:"token_ttl"`
	Issuer   string        `yaml:"issuer"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func Default() Config {
	return Config{
		Server: Server{
			Addr:         ":8888",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			CORSOrigins:  []string{"*"},
		},
		Data: Data{
			Path:     "data/top_indian_places.csv",
			PageSize: 10,
			Horizon:  6,
		},
		Elasticsearch: Elasticsearch{
			Index:         "places",
			Workers:       runtime.NumCPU(),
			FlushBytes:    5e+6,
			FlushInterval: 30 * time.Second,
		},
		Auth: Auth{
			TokenTTL: 5 * time.Minute,
			Issuer:   "touristplaces",
		},
		Log: Log{Level: "info"},
	}
}

// Load builds the configuration. path may be empty.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.parseFile(path); err != nil {
			return nil, err
		}
	}

	// a missing .env is fine, the process environment is used as is
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) parseFile(path string) error {
	configFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer configFile.Close()

	decoder := yaml.NewDecoder(configFile)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v, ok := os.LookupEnv(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}

	setString("TOURIST_ADDR", &c.Server.Addr)
	setString("TOURIST_DATA_PATH", &c.Data.Path)
	setString("TOURIST_ES_INDEX", &c.Elasticsearch.Index)
	setString("TOURIST_JWT_KEY", &c.Auth.JWTKey)
	setString("TOURIST_LOG_LEVEL", &c.Log.Level)
	if v, ok := os.LookupEnv("TOURIST_ES_ADDRESSES"); ok {
		c.Elasticsearch.Addresses = splitList(v)
	}
	if v, ok := os.LookupEnv("TOURIST_CORS_ORIGINS"); ok {
		c.Server.CORSOrigins = splitList(v)
	}
	if err := setInt("TOURIST_PAGE_SIZE", &c.Data.PageSize); err != nil {
		return err
	}
	if err := setInt("TOURIST_HORIZON", &c.Data.Horizon); err != nil {
		return err
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

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}
	if c.Data.Path == "" {
		return fmt.Errorf("data.path cannot be empty")
	}
	if c.Data.PageSize < 1 {
		return fmt.Errorf("data.page_size must be greater than 0")
	}
	if c.Data.Horizon < 1 || c.Data.Horizon > trend.MaxHorizon {
		return fmt.Errorf("data.horizon must be between 1 and %d", trend.MaxHorizon)
	}
	if c.Auth.JWTKey == "" {
		return fmt.Errorf("auth.jwt_key cannot be empty, set it in the config file or TOURIST_JWT_KEY")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}
	if c.Elasticsearch.Enabled() {
		if c.Elasticsearch.Index == "" {
			return fmt.Errorf("elasticsearch.index cannot be empty")
		}
		if c.Elasticsearch.Workers < 1 {
			return fmt.Errorf("elasticsearch.workers must be greater than 0")
		}
	}
	return nil
}
