package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Loader reads the YAML config and merges defaults <- file.
type Loader struct {
	path string

	mu    sync.RWMutex
	cache *Config
}

// NewLoader creates a config loader for path. An empty path or a missing
// file yields the built-in defaults.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Path returns the watched file path.
func (l *Loader) Path() string { return l.path }

// Load returns the merged, validated config, reading the file only when
// the cache is empty.
func (l *Loader) Load() (Config, error) {
	l.mu.RLock()
	if l.cache != nil {
		cfg := *l.cache
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	cfg, err := LoadFile(l.path)
	if err != nil {
		return Config{}, err
	}

	l.mu.Lock()
	l.cache = &cfg
	l.mu.Unlock()
	return cfg, nil
}

// Invalidate clears the cache. Call after the watcher detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = nil
}

// LoadFile reads, merges and validates a config file without caching.
func LoadFile(path string) (Config, error) {
	var fileCfg RawConfig
	if path != "" {
		var err error
		fileCfg, err = readYAML(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	merged := mergeRaw(Defaults(), fileCfg)
	if err := ValidateRaw(merged); err != nil {
		return Config{}, err
	}
	return normalize(merged), nil
}

// Parse merges YAML bytes over the defaults and validates the result.
func Parse(b []byte) (Config, error) {
	var raw RawConfig
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	merged := mergeRaw(Defaults(), raw)
	if err := ValidateRaw(merged); err != nil {
		return Config{}, err
	}
	return normalize(merged), nil
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw overrides 'a' with every field 'b' sets.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a
	if b.Version != "" {
		out.Version = b.Version
	}

	// server
	switch {
	case out.Server == nil && b.Server != nil:
		c := *b.Server
		out.Server = &c
	case out.Server != nil && b.Server != nil:
		c := *out.Server
		if b.Server.HTTPAddr != "" {
			c.HTTPAddr = b.Server.HTTPAddr
		}
		if b.Server.GRPCAddr != "" {
			c.GRPCAddr = b.Server.GRPCAddr
		}
		out.Server = &c
	}

	// trials
	switch {
	case out.Trials == nil && b.Trials != nil:
		c := *b.Trials
		out.Trials = &c
	case out.Trials != nil && b.Trials != nil:
		c := *out.Trials
		if b.Trials.Default != nil {
			c.Default = b.Trials.Default
		}
		if b.Trials.Min != nil {
			c.Min = b.Trials.Min
		}
		if b.Trials.Max != nil {
			c.Max = b.Trials.Max
		}
		out.Trials = &c
	}

	// labels
	switch {
	case out.Labels == nil && b.Labels != nil:
		c := *b.Labels
		out.Labels = &c
	case out.Labels != nil && b.Labels != nil:
		c := *out.Labels
		if b.Labels.Title != "" {
			c.Title = b.Labels.Title
		}
		if b.Labels.Hits != "" {
			c.Hits = b.Labels.Hits
		}
		if b.Labels.RankGroup != "" {
			c.RankGroup = b.Labels.RankGroup
		}
		if b.Labels.RateGroup != "" {
			c.RateGroup = b.Labels.RateGroup
		}
		out.Labels = &c
	}

	// log
	switch {
	case out.Log == nil && b.Log != nil:
		c := *b.Log
		out.Log = &c
	case out.Log != nil && b.Log != nil:
		c := *out.Log
		if b.Log.Level != "" {
			c.Level = b.Log.Level
		}
		if b.Log.ConsoleFormat != "" {
			c.ConsoleFormat = b.Log.ConsoleFormat
		}
		if b.Log.FileEnabled != nil {
			c.FileEnabled = b.Log.FileEnabled
		}
		if b.Log.FileFormat != "" {
			c.FileFormat = b.Log.FileFormat
		}
		if b.Log.FilePath != "" {
			c.FilePath = b.Log.FilePath
		}
		if b.Log.FileMaxSizeMB != nil {
			c.FileMaxSizeMB = b.Log.FileMaxSizeMB
		}
		if b.Log.FileMaxBackups != nil {
			c.FileMaxBackups = b.Log.FileMaxBackups
		}
		if b.Log.FileMaxAgeDays != nil {
			c.FileMaxAgeDays = b.Log.FileMaxAgeDays
		}
		out.Log = &c
	}

	return out
}

// normalize flattens a merged RawConfig. It expects every section of
// Defaults() to be present.
func normalize(raw RawConfig) Config {
	return Config{
		Version:       raw.Version,
		HTTPAddr:      raw.Server.HTTPAddr,
		GRPCAddr:      raw.Server.GRPCAddr,
		DefaultTrials: *raw.Trials.Default,
		MinTrials:     *raw.Trials.Min,
		MaxTrials:     *raw.Trials.Max,
		Labels: Labels{
			Title:     raw.Labels.Title,
			Hits:      raw.Labels.Hits,
			RankGroup: raw.Labels.RankGroup,
			RateGroup: raw.Labels.RateGroup,
		},
		Log: logConfig(raw.Log),
	}
}
