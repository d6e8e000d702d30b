package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrInvalidConfig = errors.New("config validation failed")

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	if cfg.Server != nil {
		if cfg.Server.HTTPAddr == "" {
			errs = append(errs, "server.http_addr must not be empty")
		}
		if cfg.Server.GRPCAddr == "" {
			errs = append(errs, "server.grpc_addr must not be empty")
		}
		if cfg.Server.HTTPAddr != "" && cfg.Server.HTTPAddr == cfg.Server.GRPCAddr {
			errs = append(errs, "server.http_addr and server.grpc_addr must differ")
		}
	}

	// trials
	if t := cfg.Trials; t != nil {
		if t.Min != nil && *t.Min < 1 {
			errs = append(errs, "trials.min must be >= 1")
		}
		if t.Min != nil && t.Max != nil && *t.Max < *t.Min {
			errs = append(errs, "trials.max must be >= trials.min")
		}
		if t.Default != nil {
			if *t.Default < 1 {
				errs = append(errs, "trials.default must be >= 1")
			}
			if t.Min != nil && t.Max != nil && (*t.Default < *t.Min || *t.Default > *t.Max) {
				errs = append(errs, "trials.default must satisfy min <= default <= max")
			}
		}
	}

	// log
	if l := cfg.Log; l != nil {
		switch strings.ToUpper(l.Level) {
		case "", "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
		default:
			errs = append(errs, "log.level must be one of: DEBUG, INFO, WARN, ERROR")
		}
		for name, format := range map[string]string{"log.console_format": l.ConsoleFormat, "log.file_format": l.FileFormat} {
			if format != "" && format != "text" && format != "json" {
				errs = append(errs, name+" must be text or json")
			}
		}
		if l.FileEnabled != nil && *l.FileEnabled && l.FilePath == "" {
			errs = append(errs, "log.file_path is required when log.file_enabled is true")
		}
		for name, v := range map[string]*int{
			"log.file_max_size_mb":  l.FileMaxSizeMB,
			"log.file_max_backups":  l.FileMaxBackups,
			"log.file_max_age_days": l.FileMaxAgeDays,
		} {
			if v != nil && *v < 0 {
				errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
			}
		}
	}

	if len(errs) > 0 {
		// map iteration above is unordered
		slices.Sort(errs)
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}
