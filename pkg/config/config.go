package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/betbot/gorh/pkg/logger"
	"github.com/betbot/gorh/pkg/secretstore"
	"github.com/betbot/gorh/rhcrypto/client"
	"github.com/betbot/gorh/rhcrypto/types"
)

// APIConfig credentials and transport of the trading API client.
type APIConfig struct {
	APIKey     string
	PrivateKey string
	PublicKey  string
	BaseURL    string
	Timeout    time.Duration
	ProxyURL   string
	UserAgent  string
}

// LogConfig logging options, see logger.Config.
type LogConfig struct {
	Level      string
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
	JSON       bool
}

// SecretStoreConfig optional badger store credentials fall back to.
type SecretStoreConfig struct {
	Path string
	Key  string // 32 bytes, hex or base64
}

// GatewayConfig local HTTP gateway.
type GatewayConfig struct {
	Listen      string
	MetricsAddr string // empty disables the metrics server
}

// WatcherConfig quote watcher TUI.
type WatcherConfig struct {
	Symbols  []string
	Interval time.Duration
}

// Config application configuration.
type Config struct {
	API         APIConfig
	Log         LogConfig
	SecretStore SecretStoreConfig
	Gateway     GatewayConfig
	Watcher     WatcherConfig
}

// ConfigFile YAML layout of the config file.
type ConfigFile struct {
	API struct {
		APIKey     string `yaml:"api_key"`
		PrivateKey string `yaml:"private_key"`
		PublicKey  string `yaml:"public_key"`
		BaseURL    string `yaml:"base_url"`
		Timeout    string `yaml:"timeout"`
		ProxyURL   string `yaml:"proxy_url"`
		UserAgent  string `yaml:"user_agent"`
	} `yaml:"api"`
	Log struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSize    int    `yaml:"max_size"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAge     int    `yaml:"max_age"`
		Compress   *bool  `yaml:"compress"`
		JSON       bool   `yaml:"json"`
	} `yaml:"log"`
	SecretStore struct {
		Path string `yaml:"path"`
		Key  string `yaml:"key"`
	} `yaml:"secret_store"`
	Gateway struct {
		Listen      string `yaml:"listen"`
		MetricsAddr string `yaml:"metrics_addr"`
	} `yaml:"gateway"`
	Watcher struct {
		Symbols  []string `yaml:"symbols"`
		Interval string   `yaml:"interval"`
	} `yaml:"watcher"`
}

const (
	defaultTimeout  = 30 * time.Second
	defaultListen   = "127.0.0.1:8080"
	defaultInterval = 5 * time.Second
)

// Load configuration from the environment only.
func Load() (*Config, error) {
	return LoadFromFile("")
}

// LoadFromFile builds the configuration. Priority: environment > file >
// secret store (credentials only) > defaults. An empty path skips the file.
func LoadFromFile(filePath string) (*Config, error) {
	var cf *ConfigFile
	if filePath != "" {
		var err error
		cf, err = loadConfigFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("load config file %s: %w", filePath, err)
		}
	}
	if cf == nil {
		cf = &ConfigFile{}
	}

	timeout, err := parseDuration(getEnv("RH_TIMEOUT", cf.API.Timeout), defaultTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeout, err)
	}
	interval, err := parseDuration(getEnv("RH_WATCH_INTERVAL", cf.Watcher.Interval), defaultInterval)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	compress := true
	if cf.Log.Compress != nil {
		compress = *cf.Log.Compress
	}

	symbols := cf.Watcher.Symbols
	if env := getEnv("RH_WATCH_SYMBOLS", ""); env != "" {
		symbols = parseList(env)
	}
	if len(symbols) == 0 {
		symbols = []string{"BTC-USD", "ETH-USD"}
	}

	cfg := &Config{
		API: APIConfig{
			APIKey:     getEnv("RH_API_KEY", cf.API.APIKey),
			PrivateKey: getEnv("RH_PRIVATE_KEY", cf.API.PrivateKey),
			PublicKey:  getEnv("RH_PUBLIC_KEY", cf.API.PublicKey),
			BaseURL:    getEnv("RH_BASE_URL", valueOr(cf.API.BaseURL, client.DefaultBaseURL)),
			Timeout:    timeout,
			ProxyURL:   getEnv("RH_PROXY_URL", cf.API.ProxyURL),
			UserAgent:  cf.API.UserAgent,
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", valueOr(cf.Log.Level, "info")),
			File:       getEnv("LOG_FILE", cf.Log.File),
			MaxSize:    intOr(cf.Log.MaxSize, 100),
			MaxBackups: intOr(cf.Log.MaxBackups, 3),
			MaxAge:     intOr(cf.Log.MaxAge, 7),
			Compress:   compress,
			JSON:       cf.Log.JSON,
		},
		SecretStore: SecretStoreConfig{
			Path: getEnv("RH_SECRET_STORE_PATH", cf.SecretStore.Path),
			Key:  getEnv("RH_SECRET_STORE_KEY", cf.SecretStore.Key),
		},
		Gateway: GatewayConfig{
			Listen:      getEnv("RH_GATEWAY_LISTEN", valueOr(cf.Gateway.Listen, defaultListen)),
			MetricsAddr: getEnv("RH_METRICS_ADDR", cf.Gateway.MetricsAddr),
		},
		Watcher: WatcherConfig{
			Symbols:  symbols,
			Interval: interval,
		},
	}

	if err := cfg.fillFromSecretStore(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillFromSecretStore reads missing credentials from the secret store, if one
// is configured.
func (c *Config) fillFromSecretStore() error {
	if c.SecretStore.Path == "" || (c.API.APIKey != "" && c.API.PrivateKey != "") {
		return nil
	}
	key, err := secretstore.ParseKey(c.SecretStore.Key)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSecretStoreKey, err)
	}
	store, err := secretstore.Open(secretstore.OpenOptions{Path: c.SecretStore.Path, EncryptionKey: key})
	if err != nil {
		return err
	}
	defer store.Close()

	creds, err := store.LoadCredentials()
	if err != nil {
		return fmt.Errorf("read secret store: %w", err)
	}
	c.API.APIKey = valueOr(c.API.APIKey, creds.APIKey)
	c.API.PrivateKey = valueOr(c.API.PrivateKey, creds.PrivateKey)
	c.API.PublicKey = valueOr(c.API.PublicKey, creds.PublicKey)
	return nil
}

func loadConfigFile(filePath string) (*ConfigFile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var cf ConfigFile
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &cf); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(filePath))
	}
	return &cf, nil
}

// Validate checks the fields every command needs.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if strings.TrimSpace(c.API.PrivateKey) == "" {
		return ErrMissingPrivateKey
	}
	if c.API.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Watcher.Interval <= 0 {
		return ErrInvalidInterval
	}
	return nil
}

// Credentials API credentials of c.
func (c *Config) Credentials() types.Credentials {
	return types.Credentials{
		APIKey:     c.API.APIKey,
		PrivateKey: c.API.PrivateKey,
		PublicKey:  c.API.PublicKey,
	}
}

// ClientConfig client options of c, logging through pkg/logger.
func (c *Config) ClientConfig() client.Config {
	return client.Config{
		BaseURL:   c.API.BaseURL,
		Timeout:   c.API.Timeout,
		ProxyURL:  c.API.ProxyURL,
		UserAgent: c.API.UserAgent,
		Logger:    logger.Entry(),
	}
}

// LoggerConfig logger options of c.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.Log.Level,
		OutputFile: c.Log.File,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
		Compress:   c.Log.Compress,
		JSON:       c.Log.JSON,
	}
}

func getEnv(key, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultValue
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func intOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	return time.ParseDuration(raw)
}

// parseList splits a comma separated list, dropping blanks.
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
