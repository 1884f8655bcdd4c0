package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// BaseConfig is a named base URI, with the AWS settings to use when it
// points at S3.
type BaseConfig struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Region   string `yaml:"region,omitempty"`
	Profile  string `yaml:"profile,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"`
}

type HTTPConfig struct {
	MaxRetries    int           `yaml:"max_retries"`
	MaxRetryDelay time.Duration `yaml:"max_retry_delay"`
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent,omitempty"`
}

// LogConfig controls the global logger. Output is "stderr", "stdout" or a
// file path; files are rotated by size.
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	Output     string `yaml:"output"`
	MaxSize    int    `yaml:"max_size,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAge     int    `yaml:"max_age,omitempty"`
	Compress   bool   `yaml:"compress,omitempty"`
}

type ServeConfig struct {
	Addr string `yaml:"addr"`
}

type Config struct {
	DefaultBase string       `yaml:"default_base,omitempty"`
	Bases       []BaseConfig `yaml:"bases,omitempty"`
	Region      string       `yaml:"region,omitempty"`
	Profile     string       `yaml:"profile,omitempty"`

	HTTP  HTTPConfig  `yaml:"http"`
	Log   LogConfig   `yaml:"log"`
	Serve ServeConfig `yaml:"serve"`

	path string `yaml:"-"`
}

func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "yuri", "config.yaml")
}

// Default returns the configuration used for keys the file leaves out.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			MaxRetries:    3,
			MaxRetryDelay: 10 * time.Second,
			Timeout:       10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		Serve: ServeConfig{
			Addr: ":8080",
		},
	}
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.path = path
	return cfg, nil
}

func (c *Config) Path() string {
	return c.path
}

func (c *Config) Save() error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(c.path, data, 0o644)
}

// AddBase adds a named base, or updates it if the name is taken.
func (c *Config) AddBase(b BaseConfig) {
	for i := range c.Bases {
		if c.Bases[i].Name == b.Name {
			c.Bases[i] = b
			return
		}
	}
	c.Bases = append(c.Bases, b)
}

func (c *Config) RemoveBase(name string) bool {
	for i, b := range c.Bases {
		if b.Name == name {
			c.Bases = append(c.Bases[:i], c.Bases[i+1:]...)
			if c.DefaultBase == name {
				c.DefaultBase = ""
			}
			return true
		}
	}
	return false
}

func (c *Config) SetDefault(name string) error {
	if c.GetBase(name) == nil {
		return fmt.Errorf("base %q not configured; add it first with: yuri bases add %s <uri>", name, name)
	}
	c.DefaultBase = name
	return nil
}

// GetBase looks a base up by name, then by URL.
func (c *Config) GetBase(nameOrURL string) *BaseConfig {
	if nameOrURL == "" {
		return nil
	}
	for i := range c.Bases {
		if c.Bases[i].Name == nameOrURL {
			return &c.Bases[i]
		}
	}
	for i := range c.Bases {
		if c.Bases[i].URL == nameOrURL {
			return &c.Bases[i]
		}
	}
	return nil
}

// Match returns the configured base with the longest URL that uri starts
// with, or nil.
func (c *Config) Match(uri string) *BaseConfig {
	var best *BaseConfig
	for i := range c.Bases {
		b := &c.Bases[i]
		if b.URL == "" || !strings.HasPrefix(uri, b.URL) {
			continue
		}
		if rest := uri[len(b.URL):]; rest != "" && !strings.HasSuffix(b.URL, "/") && !strings.ContainsAny(rest[:1], "/?#") {
			continue
		}
		if best == nil || len(b.URL) > len(best.URL) {
			best = b
		}
	}
	return best
}

// ResolveBase returns the base URI to work against. override may be a
// configured name or a URI of its own.
func (c *Config) ResolveBase(override string) (string, error) {
	if override != "" {
		if b := c.GetBase(override); b != nil {
			return b.URL, nil
		}
		return override, nil
	}
	if b := c.GetBase(c.DefaultBase); b != nil {
		return b.URL, nil
	}
	if len(c.Bases) == 1 {
		return c.Bases[0].URL, nil
	}
	return "", fmt.Errorf("no base URI; use --base, yuri cd <uri>, or set a default with: yuri bases default <name>")
}

func (c *Config) ResolveRegion(override, base string) string {
	if override != "" {
		return override
	}
	if b := c.GetBase(base); b != nil && b.Region != "" {
		return b.Region
	}
	return c.Region
}

func (c *Config) ResolveProfile(override, base string) string {
	if override != "" {
		return override
	}
	if b := c.GetBase(base); b != nil && b.Profile != "" {
		return b.Profile
	}
	return c.Profile
}
