package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/obentoo/ltscheck/internal/common/version"
	"github.com/obentoo/ltscheck/internal/lts"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported config file format: use .toml, .yaml or .yml")
	ErrRecordPathNotSet  = errors.New("record path is not configured")
	ErrReportPathNotSet  = errors.New("report path is not configured")
	ErrNoPythonFeeds     = errors.New("no python feed urls configured")
)

// Default file locations, relative to the repository root
const (
	DefaultRecordPath = "versions.json"
	DefaultReportPath = ".github/lts-report.md"
)

// FileNames are the config file names looked up in the working directory, in priority order
var FileNames = []string{"ltscheck.toml", "ltscheck.yaml", "ltscheck.yml"}

// Config represents the application configuration
type Config struct {
	Files FilesConfig `toml:"files" yaml:"files"`
	Feeds FeedsConfig `toml:"feeds" yaml:"feeds"`
	HTTP  HTTPConfig  `toml:"http" yaml:"http"`
}

// FilesConfig holds the record and report locations
type FilesConfig struct {
	Record string `toml:"record" yaml:"record"`
	Report string `toml:"report" yaml:"report"`
}

// FeedsConfig holds the upstream endpoints
type FeedsConfig struct {
	DotnetIndexURL string   `toml:"dotnet_index_url" yaml:"dotnet_index_url"`
	PythonURLs     []string `toml:"python_urls" yaml:"python_urls"` // Tried in order
}

// HTTPConfig holds request settings
type HTTPConfig struct {
	UserAgent string `toml:"user_agent" yaml:"user_agent"`
	Timeout   string `toml:"timeout,omitempty" yaml:"timeout,omitempty"` // Go duration, empty for none
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{
		Files: FilesConfig{
			Record: DefaultRecordPath,
			Report: DefaultReportPath,
		},
		Feeds: FeedsConfig{
			DotnetIndexURL: lts.DefaultDotnetIndexURL,
			PythonURLs:     append([]string(nil), lts.DefaultPythonFeedURLs...),
		},
		HTTP: HTTPConfig{
			UserAgent: version.UserAgent(),
		},
	}
}

// FindConfigPath returns the first existing config file in dir,
// or an empty string if there is none
func FindConfigPath(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads configuration from an explicit path, or from the first config
// file found in the working directory. Without either, defaults are returned.
func Load(explicit string) (*Config, error) {
	path := explicit
	if path == "" {
		path = FindConfigPath(".")
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from a specific file path.
// Fields left empty in the file take their default values.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	switch FormatOf(path) {
	case "toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// SaveTo writes configuration to a specific file path, choosing the
// format from the extension
func (c *Config) SaveTo(path string) error {
	var data []byte
	switch FormatOf(path) {
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return err
		}
		data = buf.Bytes()
	case "yaml":
		out, err := yaml.Marshal(c)
		if err != nil {
			return err
		}
		data = out
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Timeout returns the parsed request timeout, zero when unset
func (c *Config) Timeout() (time.Duration, error) {
	if c.HTTP.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.HTTP.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid http timeout %q: %w", c.HTTP.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid http timeout %q: must not be negative", c.HTTP.Timeout)
	}
	return d, nil
}

// Validate checks that the configuration can drive a check run
func (c *Config) Validate() error {
	if c.Files.Record == "" {
		return ErrRecordPathNotSet
	}
	if c.Files.Report == "" {
		return ErrReportPathNotSet
	}
	if len(c.Feeds.PythonURLs) == 0 {
		return ErrNoPythonFeeds
	}
	_, err := c.Timeout()
	return err
}

// ClientConfig returns the feed client settings
func (c *Config) ClientConfig() (lts.ClientConfig, error) {
	timeout, err := c.Timeout()
	if err != nil {
		return lts.ClientConfig{}, err
	}
	return lts.ClientConfig{
		UserAgent: c.HTTP.UserAgent,
		Timeout:   timeout,
	}, nil
}

// applyDefaults fills empty fields from Default
func (c *Config) applyDefaults() {
	def := Default()
	if c.Files.Record == "" {
		c.Files.Record = def.Files.Record
	}
	if c.Files.Report == "" {
		c.Files.Report = def.Files.Report
	}
	if c.Feeds.DotnetIndexURL == "" {
		c.Feeds.DotnetIndexURL = def.Feeds.DotnetIndexURL
	}
	if len(c.Feeds.PythonURLs) == 0 {
		c.Feeds.PythonURLs = def.Feeds.PythonURLs
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = def.HTTP.UserAgent
	}
}

// FormatOf maps a file extension to a config format: "toml", "yaml" or ""
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}
