package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/bbzsolar/solar-roof-map/internal/config"
	"github.com/bbzsolar/solar-roof-map/pkg/constants"
	"gopkg.in/yaml.v3"
)

// DefaultShutdownTimeout bounds graceful shutdown when none is configured.
const DefaultShutdownTimeout = 10 * time.Second

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address         string               `yaml:"address"`
	MaxRequestSize  string               `yaml:"maxRequestSize"`
	ShutdownTimeout string               `yaml:"shutdownTimeout"`
	ConfigFile      string               `yaml:"configFile"`
	Logging         config.LoggingConfig `yaml:"logging"`
	requestSize     int64
	shutdownTimeout time.Duration
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:         constants.DefaultServerAddress,
		MaxRequestSize:  fmt.Sprintf("%d", constants.DefaultMaxUploadSizeBytes),
		ShutdownTimeout: DefaultShutdownTimeout.String(),
		ConfigFile:      constants.DefaultConfigFile,
		Logging:         config.LoggingConfig{},
		requestSize:     constants.DefaultMaxUploadSizeBytes,
		shutdownTimeout: DefaultShutdownTimeout,
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RequestSizeBytes returns the configured request body limit in bytes.
func (c *Config) RequestSizeBytes() int64 {
	return c.requestSize
}

// SetRequestSizeBytes overrides the configured request body limit.
func (c *Config) SetRequestSizeBytes(size int64) {
	if size > 0 {
		c.requestSize = size
		c.MaxRequestSize = fmt.Sprintf("%d", size)
	}
}

// ShutdownTimeoutDuration returns how long in-flight requests get on shutdown.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	return c.shutdownTimeout
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.ConfigFile == "" {
		c.ConfigFile = constants.DefaultConfigFile
	}

	c.shutdownTimeout = DefaultShutdownTimeout
	if timeout := strings.TrimSpace(c.ShutdownTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid shutdown timeout %q: %w", c.ShutdownTimeout, err)
		}
		if d > 0 {
			c.shutdownTimeout = d
		}
	}

	sizeStr := strings.TrimSpace(c.MaxRequestSize)
	if sizeStr == "" {
		c.requestSize = constants.DefaultMaxUploadSizeBytes
		c.MaxRequestSize = fmt.Sprintf("%d", constants.DefaultMaxUploadSizeBytes)
		return nil
	}

	bytes, err := ParseSize(sizeStr)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxUploadSizeBytes
	}
	c.requestSize = bytes
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
