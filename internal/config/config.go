package config

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"compcat/internal/logging"
	"compcat/internal/source"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const AppName = "compcat" // application name used for config directory

// Environment overrides, applied after the config file.
const (
	EnvConfigPath    = "COMPCAT_CONFIG_PATH"
	EnvComponentsDir = "COMPCAT_COMPONENTS_DIR"
	EnvDocsDir       = "COMPCAT_DOCS_DIR"
	EnvGitRemote     = "COMPCAT_GIT_REMOTE"
	EnvHTTPPort      = "MCP_HTTP_PORT"
)

const (
	currentVersion  = "1"
	defaultHTTPHost = "0.0.0.0"
	defaultHTTPPort = 8080
	defaultEndpoint = "/mcp"
)

// Config holds user configuration for compcat.
type Config struct {
	Version string `yaml:"version"`

	// ComponentsDir is the catalog root. With neither it nor Git set the
	// built-in sample catalog is served.
	ComponentsDir string `yaml:"components_dir,omitempty"`

	// DocsDir is an optional directory of Markdown documentation topics.
	DocsDir string `yaml:"docs_dir,omitempty"`

	// MaxFileSize bounds every catalog file read; 0 uses the loader default.
	MaxFileSize int64 `yaml:"max_file_size,omitempty" validate:"gte=0"`

	Git  source.GitOptions `yaml:"git,omitempty"`
	HTTP HTTPConfig        `yaml:"http"`
}

// HTTPConfig configures the streamable HTTP transport.
type HTTPConfig struct {
	// Enabled selects HTTP instead of stdio.
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host" validate:"omitempty,hostname|ip"`
	Port     int    `yaml:"port" validate:"gte=1,lte=65535"`
	Endpoint string `yaml:"endpoint" validate:"startswith=/"`
}

// Addr returns host:port for net/http.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// DefaultConfig returns a Config that serves the sample catalog over stdio.
func DefaultConfig() Config {
	return Config{
		Version: currentVersion,
		HTTP: HTTPConfig{
			Host:     defaultHTTPHost,
			Port:     defaultHTTPPort,
			Endpoint: defaultEndpoint,
		},
	}
}

// UsesSamples reports whether no catalog location is configured.
func (c *Config) UsesSamples() bool {
	return strings.TrimSpace(c.ComponentsDir) == "" && !c.Git.Enabled()
}

// ConfigPath returns the config file location: $COMPCAT_CONFIG_PATH, or
// config.yaml under the XDG config home.
func ConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	path := filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
	logging.Debug("Determined config path", "path", path)
	return path
}

// Load reads the config from ConfigPath. See LoadPath.
func Load() (*Config, error) {
	return LoadPath(ConfigPath())
}

// LoadPath reads the config at path, falling back to DefaultConfig when the
// file does not exist, then applies environment overrides and validates.
func LoadPath(path string) (*Config, error) {
	cfg, err := LoadFrom(path)
	if errors.Is(err, os.ErrNotExist) {
		logging.Debug("No config file, using defaults", "path", path)
		def := DefaultConfig()
		cfg, err = &def, nil
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFrom decodes the file at path over DefaultConfig. Unknown keys are
// rejected. A missing file returns an error wrapping os.ErrNotExist.
func LoadFrom(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	logging.Debug("Loaded config file", "path", path)
	return &cfg, nil
}

// ApplyEnv overrides fields from the environment. Setting MCP_HTTP_PORT
// also enables the HTTP transport.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvComponentsDir)); v != "" {
		c.ComponentsDir = v
	}
	if v := strings.TrimSpace(getenv(EnvDocsDir)); v != "" {
		c.DocsDir = v
	}
	if v := strings.TrimSpace(getenv(EnvGitRemote)); v != "" {
		c.Git.RemoteURL = v
	}
	if v := strings.TrimSpace(getenv(EnvHTTPPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvHTTPPort, v, err)
		}
		c.HTTP.Port = port
		c.HTTP.Enabled = true
	}
	return nil
}

// Validate checks field constraints and reports the first failing field by
// its YAML name.
func (c *Config) Validate() error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("invalid config: %s fails %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
	}
	return fmt.Errorf("invalid config: %w", err)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Save writes the config to ConfigPath.
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes the config to path with 0600 permissions.
func (c *Config) SaveTo(path string) error {
	if c.Version == "" {
		c.Version = currentVersion
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	logging.Info("Configuration saved", "path", path)
	return nil
}
