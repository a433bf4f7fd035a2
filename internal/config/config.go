// Package config provides configuration management for clipd.
// Configuration is loaded from an optional TOML file, with environment
// variable overrides and sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	// Default values
	DefaultPort        = 8089
	DefaultLogLevel    = "info"
	DefaultWorkDirName = ".clipd"
	DefaultYtDlpPath   = "yt-dlp"
	DefaultFFmpegPath  = "ffmpeg"

	// Environment variable names
	EnvPort             = "CLIPD_PORT"
	EnvLogLevel         = "CLIPD_LOG_LEVEL"
	EnvWorkDir          = "CLIPD_WORK_DIR"
	EnvYtDlpPath        = "CLIPD_YTDLP_PATH"
	EnvFFmpegPath       = "CLIPD_FFMPEG_PATH"
	EnvFetchTimeout     = "CLIPD_FETCH_TIMEOUT_S"
	EnvTranscodeTimeout = "CLIPD_TRANSCODE_TIMEOUT_S"
	EnvSweepMaxAge      = "CLIPD_SWEEP_MAX_AGE_S"
	EnvConfigFile       = "CLIPD_CONFIG"

	// Timeout defaults in seconds; 0 disables the bound.
	DefaultFetchTimeout     = 600
	DefaultTranscodeTimeout = 300

	// Scratch entries older than this are swept at startup; 0 disables.
	DefaultSweepMaxAge = 86400
)

// Config defines the application configuration interface
type Config interface {
	Port() int
	LogLevel() string
	WorkDir() string
	YtDlpPath() string
	FFmpegPath() string
	FetchTimeout() time.Duration
	TranscodeTimeout() time.Duration
	SweepMaxAge() time.Duration
}

// fileConfig mirrors the optional TOML configuration file. The seconds
// fields are pointers so an explicit 0 (disable) is distinguishable
// from an absent key.
type fileConfig struct {
	Port              int    `toml:"port"`
	LogLevel          string `toml:"log_level"`
	WorkDir           string `toml:"work_dir"`
	YtDlpPath         string `toml:"ytdlp_path"`
	FFmpegPath        string `toml:"ffmpeg_path"`
	FetchTimeoutS     *int   `toml:"fetch_timeout_s"`
	TranscodeTimeoutS *int   `toml:"transcode_timeout_s"`
	SweepMaxAgeS      *int   `toml:"sweep_max_age_s"`
}

// EnvConfig reads configuration from an optional TOML file plus
// environment variable overrides.
type EnvConfig struct {
	port              int
	logLevel          string
	workDir           string
	ytDlpPath         string
	ffmpegPath        string
	fetchTimeoutS     int
	transcodeTimeoutS int
	sweepMaxAgeS      int
}

// New creates a new EnvConfig with defaults, optional TOML file values,
// and environment variable overrides, in that precedence order.
func New() (*EnvConfig, error) {
	cfg := &EnvConfig{
		port:              DefaultPort,
		logLevel:          DefaultLogLevel,
		workDir:           defaultWorkDir(),
		ytDlpPath:         DefaultYtDlpPath,
		ffmpegPath:        DefaultFFmpegPath,
		fetchTimeoutS:     DefaultFetchTimeout,
		transcodeTimeoutS: DefaultTranscodeTimeout,
		sweepMaxAgeS:      DefaultSweepMaxAge,
	}

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *EnvConfig) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("cannot parse config file %s: %w", path, err)
	}

	if fc.Port != 0 {
		c.port = fc.Port
	}
	if fc.LogLevel != "" {
		c.logLevel = fc.LogLevel
	}
	if fc.WorkDir != "" {
		c.workDir = fc.WorkDir
	}
	if fc.YtDlpPath != "" {
		c.ytDlpPath = fc.YtDlpPath
	}
	if fc.FFmpegPath != "" {
		c.ffmpegPath = fc.FFmpegPath
	}
	for _, tv := range []struct {
		key   string
		value *int
		dest  *int
	}{
		{"fetch_timeout_s", fc.FetchTimeoutS, &c.fetchTimeoutS},
		{"transcode_timeout_s", fc.TranscodeTimeoutS, &c.transcodeTimeoutS},
		{"sweep_max_age_s", fc.SweepMaxAgeS, &c.sweepMaxAgeS},
	} {
		if tv.value == nil {
			continue
		}
		if *tv.value < 0 {
			return fmt.Errorf("invalid %s in %s: must be a non-negative integer of seconds", tv.key, path)
		}
		*tv.dest = *tv.value
	}

	return nil
}

func (c *EnvConfig) applyEnv() error {
	if p := os.Getenv(EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid %s: port must be between 1 and 65535", EnvPort)
		}
		c.port = port
	}

	if ll := os.Getenv(EnvLogLevel); ll != "" {
		c.logLevel = ll
	}
	if wd := os.Getenv(EnvWorkDir); wd != "" {
		c.workDir = wd
	}
	if p := os.Getenv(EnvYtDlpPath); p != "" {
		c.ytDlpPath = p
	}
	if p := os.Getenv(EnvFFmpegPath); p != "" {
		c.ffmpegPath = p
	}

	for _, tv := range []struct {
		env  string
		dest *int
	}{
		{EnvFetchTimeout, &c.fetchTimeoutS},
		{EnvTranscodeTimeout, &c.transcodeTimeoutS},
		{EnvSweepMaxAge, &c.sweepMaxAgeS},
	} {
		v := os.Getenv(tv.env)
		if v == "" {
			continue
		}
		secs, err := strconv.Atoi(v)
		if err != nil || secs < 0 {
			return fmt.Errorf("invalid %s: must be a non-negative integer of seconds", tv.env)
		}
		*tv.dest = secs
	}

	return nil
}

// Port returns the HTTP server port
func (c *EnvConfig) Port() int {
	return c.port
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *EnvConfig) LogLevel() string {
	return c.logLevel
}

// WorkDir returns the scratch directory used for per-job artifacts
func (c *EnvConfig) WorkDir() string {
	return c.workDir
}

// YtDlpPath returns the configured yt-dlp binary name or path
func (c *EnvConfig) YtDlpPath() string {
	return c.ytDlpPath
}

// FFmpegPath returns the configured ffmpeg binary name or path
func (c *EnvConfig) FFmpegPath() string {
	return c.ffmpegPath
}

// FetchTimeout returns the per-request bound on the fetch tool; 0 means none
func (c *EnvConfig) FetchTimeout() time.Duration {
	return time.Duration(c.fetchTimeoutS) * time.Second
}

// TranscodeTimeout returns the per-request bound on the transcode tool; 0 means none
func (c *EnvConfig) TranscodeTimeout() time.Duration {
	return time.Duration(c.transcodeTimeoutS) * time.Second
}

// SweepMaxAge returns the startup-sweep age threshold; 0 disables the sweep
func (c *EnvConfig) SweepMaxAge() time.Duration {
	return time.Duration(c.sweepMaxAgeS) * time.Second
}

// defaultWorkDir returns the default scratch directory path
func defaultWorkDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home is not available
		return filepath.Join(DefaultWorkDirName, "tmp")
	}
	return filepath.Join(home, DefaultWorkDirName, "tmp")
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
