// Package config resolves all runtime configuration once at process start.
// Values come from environment variables with defaults; a missing credential
// or an unusable transcoding engine is a startup error, never a per-request
// surprise.
package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

const (
	DefaultPort     = 8080
	DefaultLogLevel = "info"

	EnvPort     = "MOMENTO_PORT"
	EnvLogLevel = "MOMENTO_LOG_LEVEL"
	EnvDataDir  = "MOMENTO_DATA_DIR"
	EnvFFmpeg   = "MOMENTO_FFMPEG"

	EnvAPIKey  = "ELEVENLABS_API_KEY"
	EnvModelID = "ELEVENLABS_MODEL_ID"
	EnvBaseURL = "ELEVENLABS_BASE_URL"

	// localFFmpegFallback is checked last, for deployments that ship the
	// binary next to the service.
	localFFmpegFallback = "bin/ffmpeg"
)

type Config struct {
	port       int
	logLevel   string
	dataDir    string
	ffmpegPath string
	apiKey     string
	modelID    string
	baseURL    string
}

func New() (*Config, error) {
	cfg := &Config{
		port:     DefaultPort,
		logLevel: DefaultLogLevel,
		dataDir:  defaultDataDir(),
		apiKey:   os.Getenv(EnvAPIKey),
		modelID:  os.Getenv(EnvModelID),
		baseURL:  os.Getenv(EnvBaseURL),
	}

	if p := os.Getenv(EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid %s: port must be between 1 and 65535", EnvPort)
		}
		cfg.port = port
	}
	if ll := os.Getenv(EnvLogLevel); ll != "" {
		cfg.logLevel = ll
	}
	if dd := os.Getenv(EnvDataDir); dd != "" {
		cfg.dataDir = dd
	}

	if cfg.apiKey == "" {
		return nil, fmt.Errorf("%s is required (set it in the environment or .env)", EnvAPIKey)
	}

	ffmpegPath, err := ResolveFFmpeg()
	if err != nil {
		return nil, err
	}
	cfg.ffmpegPath = ffmpegPath

	return cfg, nil
}

func (c *Config) Port() int          { return c.port }
func (c *Config) LogLevel() string   { return c.logLevel }
func (c *Config) DataDir() string    { return c.dataDir }
func (c *Config) FFmpegPath() string { return c.ffmpegPath }
func (c *Config) APIKey() string     { return c.apiKey }
func (c *Config) ModelID() string    { return c.modelID }
func (c *Config) BaseURL() string    { return c.baseURL }

// ResolveFFmpeg picks the transcoding engine binary: explicit override, then
// PATH, then a local fallback. An override that does not exist is an error
// rather than a silent fall-through.
func ResolveFFmpeg() (string, error) {
	if p := os.Getenv(EnvFFmpeg); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("%s points to an unusable binary %q: %w", EnvFFmpeg, p, err)
		}
		return p, nil
	}
	if p, err := exec.LookPath("ffmpeg"); err == nil {
		return p, nil
	}
	if _, err := os.Stat(localFFmpegFallback); err == nil {
		return localFFmpegFallback, nil
	}
	return "", fmt.Errorf("no usable ffmpeg found: set %s, install ffmpeg on PATH, or place it at %s", EnvFFmpeg, localFFmpegFallback)
}

func defaultDataDir() string {
	return filepath.Join(os.TempDir(), "momento")
}

// Version is set at build time via ldflags.
var Version = "0.1.0"
