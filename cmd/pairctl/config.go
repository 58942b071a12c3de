package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	pairedproc "github.com/wagiedev/paired-process-go"
)

// fileConfig is the optional TOML configuration for pairctl.
type fileConfig struct {
	StopTimeout     string            `toml:"stop_timeout"`
	ListenerTimeout string            `toml:"listener_timeout"`
	Linger          string            `toml:"linger"`
	ReadBufferSize  int               `toml:"read_buffer_size"`
	LogLevel        string            `toml:"log_level"`
	Dir             string            `toml:"dir"`
	Env             map[string]string `toml:"env"`
}

// settings are the resolved values used to launch the subordinate.
type settings struct {
	stopTimeout     time.Duration
	listenerTimeout time.Duration
	linger          time.Duration
	readBufferSize  int
	logLevel        slog.Level
	dir             string
	env             map[string]string
}

// loadConfig reads path. A missing file yields an empty configuration only
// when the path was not given explicitly.
func loadConfig(path string, explicit bool) (*fileConfig, error) {
	var cfg fileConfig

	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return &cfg, nil
		}

		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}

// resolve validates the file values into settings.
func (c *fileConfig) resolve() (*settings, error) {
	s := &settings{
		readBufferSize: c.ReadBufferSize,
		dir:            c.Dir,
		env:            c.Env,
	}

	var err error

	if s.stopTimeout, err = parseDuration("stop_timeout", c.StopTimeout); err != nil {
		return nil, err
	}

	if s.listenerTimeout, err = parseDuration("listener_timeout", c.ListenerTimeout); err != nil {
		return nil, err
	}

	if s.linger, err = parseDuration("linger", c.Linger); err != nil {
		return nil, err
	}

	if c.ReadBufferSize < 0 {
		return nil, fmt.Errorf("read_buffer_size must not be negative, got %d", c.ReadBufferSize)
	}

	if c.LogLevel != "" {
		if err := s.logLevel.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
			return nil, fmt.Errorf("log_level: %w", err)
		}
	} else {
		s.logLevel = slog.LevelWarn
	}

	return s, nil
}

func parseDuration(key, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}

	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", key, value)
	}

	return d, nil
}

// options converts settings into launch options.
func (s *settings) options(log *slog.Logger) []pairedproc.Option {
	return []pairedproc.Option{
		pairedproc.WithLogger(log),
		pairedproc.WithStopTimeout(s.stopTimeout),
		pairedproc.WithListenerTimeout(s.listenerTimeout),
		pairedproc.WithReadBufferSize(s.readBufferSize),
		pairedproc.WithDir(s.dir),
		pairedproc.WithEnv(s.env),
	}
}
