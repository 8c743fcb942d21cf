package config

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/konseloradiksi/soapgen/internal/errors"
)

type Config struct {
	Language               string `json:"language"`
	Model                  string `json:"model"`
	Endpoint               string `json:"endpoint"`
	ListenAddr             string `json:"listen_addr"`
	AttemptTimeoutSeconds  int    `json:"attempt_timeout_seconds"`
	ShutdownTimeoutSeconds int    `json:"shutdown_timeout_seconds"`

	PathFile string `json:"-"`
}

const (
	configDirName  = ".soapgen"
	configFileName = "config.json"

	defaultLang                   = LangID
	defaultModel                  = ModelGeminiV25Flash
	defaultEndpoint               = "https://generativelanguage.googleapis.com/v1beta"
	defaultListenAddr             = "127.0.0.1:8080"
	defaultAttemptTimeoutSeconds  = 30
	defaultShutdownTimeoutSeconds = 10
)

// Environment variables that override the file values.
const (
	EnvLang     = "SOAPGEN_LANG"
	EnvModel    = "SOAPGEN_MODEL"
	EnvEndpoint = "SOAPGEN_ENDPOINT"
	EnvAddr     = "SOAPGEN_ADDR"

	// EnvAPIKey is read by the commands only. The key is never stored in Config.
	EnvAPIKey = "GEMINI_API_KEY"
)

// DefaultPath returns ~/.soapgen/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error resolving home directory: %w", err)
	}
	if home == "" {
		return "", fmt.Errorf("home directory is not set")
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// LoadConfig reads the configuration at path. A path ending in .json is used
// as is, anything else is treated as the directory that holds .soapgen.
// A missing file is created with the defaults.
func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configPath = filepath.Join(path, configDirName, configFileName)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return CreateDefaultConfig(configPath)
	} else if err != nil {
		return nil, fmt.Errorf("error checking configuration file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading configuration file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, domainErrors.ErrConfigInvalid.WithError(err).WithContext("path", configPath)
	}
	config.PathFile = configPath
	config.fillDefaults()

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func Default() *Config {
	return &Config{
		Language:               defaultLang,
		Model:                  string(defaultModel),
		Endpoint:               defaultEndpoint,
		ListenAddr:             defaultListenAddr,
		AttemptTimeoutSeconds:  defaultAttemptTimeoutSeconds,
		ShutdownTimeoutSeconds: defaultShutdownTimeoutSeconds,
	}
}

func CreateDefaultConfig(path string) (*Config, error) {
	config := Default()
	config.PathFile = path

	if err := write(config); err != nil {
		return nil, fmt.Errorf("error saving default configuration: %w", err)
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return err
	}

	if config.PathFile == "" {
		return domainErrors.ErrConfigInvalid.WithError(fmt.Errorf("configuration path is not set"))
	}

	return write(config)
}

func write(config *Config) error {
	if err := os.MkdirAll(filepath.Dir(config.PathFile), 0755); err != nil {
		return fmt.Errorf("error creating configuration directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding configuration: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0644); err != nil {
		return fmt.Errorf("error writing configuration: %w", err)
	}
	return nil
}

// fillDefaults completes files written by older versions.
func (c *Config) fillDefaults() {
	d := Default()
	if c.Language == "" {
		c.Language = d.Language
	}
	if c.Model == "" {
		c.Model = d.Model
	}
	if c.Endpoint == "" {
		c.Endpoint = d.Endpoint
	}
	if c.ListenAddr == "" {
		c.ListenAddr = d.ListenAddr
	}
	if c.AttemptTimeoutSeconds == 0 {
		c.AttemptTimeoutSeconds = d.AttemptTimeoutSeconds
	}
	if c.ShutdownTimeoutSeconds == 0 {
		c.ShutdownTimeoutSeconds = d.ShutdownTimeoutSeconds
	}
}

// WithEnvOverrides returns a copy of c with the SOAPGEN_* variables applied.
// lookup is usually os.LookupEnv.
func (c *Config) WithEnvOverrides(lookup func(string) (string, bool)) *Config {
	out := *c
	if v, ok := lookup(EnvLang); ok && v != "" {
		out.Language = v
	}
	if v, ok := lookup(EnvModel); ok && v != "" {
		out.Model = v
	}
	if v, ok := lookup(EnvEndpoint); ok && v != "" {
		out.Endpoint = v
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		out.ListenAddr = v
	}
	return &out
}

func (c *Config) AttemptTimeout() time.Duration {
	return time.Duration(c.AttemptTimeoutSeconds) * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// Set assigns value to the field named by key. Accepted keys are lang,
// model, endpoint and addr, plus their JSON names.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	updated := *c

	switch strings.ToLower(key) {
	case "lang", "language":
		updated.Language = value
	case "model":
		updated.Model = value
	case "endpoint":
		updated.Endpoint = strings.TrimRight(value, "/")
	case "addr", "listen_addr":
		updated.ListenAddr = value
	case "attempt_timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return domainErrors.ErrConfigInvalid.WithError(err).WithContext("key", key)
		}
		updated.AttemptTimeoutSeconds = n
	case "shutdown_timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return domainErrors.ErrConfigInvalid.WithError(err).WithContext("key", key)
		}
		updated.ShutdownTimeoutSeconds = n
	default:
		return domainErrors.ErrUnknownConfigKey.WithContext("key", key)
	}

	if err := validateConfig(&updated); err != nil {
		return err
	}
	*c = updated
	return nil
}

func validateConfig(config *Config) error {
	invalid := func(format string, args ...any) error {
		return domainErrors.ErrConfigInvalid.WithError(fmt.Errorf(format, args...))
	}

	if !IsSupportedLanguage(config.Language) {
		return invalid("unsupported language %q", config.Language)
	}
	if config.Model == "" {
		return invalid("model must not be empty")
	}
	if config.Endpoint == "" {
		return invalid("endpoint must not be empty")
	}
	u, err := url.Parse(config.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid("endpoint %q is not an http(s) URL", config.Endpoint)
	}
	if _, _, err := net.SplitHostPort(config.ListenAddr); err != nil {
		return invalid("listen address %q: %v", config.ListenAddr, err)
	}
	if config.AttemptTimeoutSeconds <= 0 {
		return invalid("attempt_timeout_seconds must be greater than 0")
	}
	if config.ShutdownTimeoutSeconds <= 0 {
		return invalid("shutdown_timeout_seconds must be greater than 0")
	}
	return nil
}
