// types.go
package config

import "github.com/xtding233/particle-odds/internal/logger"

// RawConfig is loaded from YAML; every field is optional and falls back
// to Defaults().
type RawConfig struct {
	Version string        `yaml:"version"`
	Server  *ServerConfig `yaml:"server,omitempty"`
	Trials  *TrialsConfig `yaml:"trials,omitempty"`
	Labels  *LabelsConfig `yaml:"labels,omitempty"`
	Log     *LogConfig    `yaml:"log,omitempty"`
}

type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
	GRPCAddr string `yaml:"grpc_addr"`
}

// TrialsConfig bounds the hit-count control. The odds table itself accepts
// any positive count; these limits belong to the collaborator.
type TrialsConfig struct {
	Default *int `yaml:"default"`
	Min     *int `yaml:"min"`
	Max     *int `yaml:"max"`
}

// LabelsConfig holds literal header strings, passed through as-is.
type LabelsConfig struct {
	Title     string `yaml:"title"`
	Hits      string `yaml:"hits"`
	RankGroup string `yaml:"rank_group"`
	RateGroup string `yaml:"rate_group"`
}

type LogConfig struct {
	Level          string `yaml:"level"`
	ConsoleFormat  string `yaml:"console_format"`
	FileEnabled    *bool  `yaml:"file_enabled"`
	FileFormat     string `yaml:"file_format"`
	FilePath       string `yaml:"file_path"`
	FileMaxSizeMB  *int   `yaml:"file_max_size_mb"`
	FileMaxBackups *int   `yaml:"file_max_backups"`
	FileMaxAgeDays *int   `yaml:"file_max_age_days"`
}

// Config is the normalized configuration used by the servers and CLI.
type Config struct {
	Version       string
	HTTPAddr      string
	GRPCAddr      string
	DefaultTrials int
	MinTrials     int
	MaxTrials     int
	Labels        Labels
	Log           logger.Config
}

type Labels struct {
	Title     string
	Hits      string
	RankGroup string
	RateGroup string
}

// InRange reports whether a hit count is inside the configured control range.
func (c Config) InRange(trials int) bool {
	return trials >= c.MinTrials && trials <= c.MaxTrials
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

// Defaults returns the built-in configuration: hits 1..20 starting at 1.
func Defaults() RawConfig {
	return RawConfig{
		Version: "1",
		Server:  &ServerConfig{HTTPAddr: ":8080", GRPCAddr: ":9090"},
		Trials:  &TrialsConfig{Default: intPtr(1), Min: intPtr(1), Max: intPtr(20)},
		Labels: &LabelsConfig{
			Title:     "Favonius particle odds",
			Hits:      "hits",
			RankGroup: "精錬ランク",
			RateGroup: "会心率",
		},
		Log: &LogConfig{
			Level:          "INFO",
			ConsoleFormat:  "text",
			FileEnabled:    boolPtr(false),
			FileFormat:     "json",
			FilePath:       "logs/particle-odds.log",
			FileMaxSizeMB:  intPtr(10),
			FileMaxBackups: intPtr(3),
			FileMaxAgeDays: intPtr(28),
		},
	}
}

func logConfig(c *LogConfig) logger.Config {
	return logger.Config{
		Level:          c.Level,
		ConsoleFormat:  c.ConsoleFormat,
		FileEnabled:    *c.FileEnabled,
		FileFormat:     c.FileFormat,
		FilePath:       c.FilePath,
		FileMaxSizeMB:  *c.FileMaxSizeMB,
		FileMaxBackups: *c.FileMaxBackups,
		FileMaxAgeDays: *c.FileMaxAgeDays,
	}
}
