// Package config loads plume settings from plume.yml, PLUME_* environment
// variables (optionally seeded from a .env file) and command-line flags.
//
// Precedence, highest first: flags, environment, config file, defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/simonhull/firebird-suite/plume/internal/logger"
)

// Config keys
const (
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
	KeySeed            = "generate.seed"
	KeyTemplates       = "generate.templates"
	KeyOutputDir       = "output.dir"
	KeyExtract         = "output.extract"
	KeyForce           = "output.force"
	KeyAddress         = "server.address"
	KeyPort            = "server.port"
	KeyRateLimit       = "server.rate_limit"
	KeyRateBurst       = "server.rate_burst"
	KeyReadTimeout     = "server.read_timeout"
	KeyWriteTimeout    = "server.write_timeout"
	KeyShutdownTimeout = "server.shutdown_timeout"
	KeyMaxBodyBytes    = "server.max_body_bytes"
)

// EnvPrefix is prepended to every environment variable, e.g. PLUME_SERVER_PORT
const EnvPrefix = "PLUME"

// Config holds all settings
type Config struct {
	Log      LogConfig
	Generate GenerateConfig
	Output   OutputConfig
	Server   ServerConfig

	// File is the config file that was read, empty if none
	File string
}

// LogConfig configures logging
type LogConfig struct {
	Level  string
	Format string
}

// GenerateConfig configures generation
type GenerateConfig struct {
	// Seed makes skill levels reproducible when set
	Seed *uint64
	// Templates is a directory of template overrides
	Templates string
}

// OutputConfig configures where results go
type OutputConfig struct {
	Dir     string
	Extract bool
	Force   bool
}

// ServerConfig configures the HTTP service
type ServerConfig struct {
	Address string
	Port    int

	// Rate limiting configuration
	RateLimit float64 // requests per second
	RateBurst int

	// Timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Request limits
	MaxBodyBytes int64
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Address, s.Port)
}

// LoadOptions controls where settings come from
type LoadOptions struct {
	// File is an explicit config file. When empty, plume.yml is searched
	// in the working directory and in $HOME/.config/plume.
	File string
	// EnvFile is loaded into the environment first. Defaults to ".env";
	// a missing file is not an error.
	EnvFile string
	// Flags maps config keys to command-line flags
	Flags map[string]*pflag.Flag
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, logger.FormatConsole)
	v.SetDefault(KeyTemplates, "")
	v.SetDefault(KeyOutputDir, ".")
	v.SetDefault(KeyExtract, false)
	v.SetDefault(KeyForce, false)
	v.SetDefault(KeyAddress, "")
	v.SetDefault(KeyPort, 8080)
	v.SetDefault(KeyRateLimit, 10.0)
	v.SetDefault(KeyRateBurst, 20)
	v.SetDefault(KeyReadTimeout, 10*time.Second)
	v.SetDefault(KeyWriteTimeout, 30*time.Second)
	v.SetDefault(KeyShutdownTimeout, 15*time.Second)
	v.SetDefault(KeyMaxBodyBytes, int64(8<<20))
}

// Load reads and validates the configuration
func Load(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	// Enable environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", opts.File, err)
		}
	} else {
		v.SetConfigName("plume")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "plume"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read plume.yml: %w", err)
			}
		}
	}

	for key, flag := range opts.Flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("failed to bind flag --%s: %w", flag.Name, err)
		}
	}

	cfg := &Config{
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		Generate: GenerateConfig{
			Templates: v.GetString(KeyTemplates),
		},
		Output: OutputConfig{
			Dir:     v.GetString(KeyOutputDir),
			Extract: v.GetBool(KeyExtract),
			Force:   v.GetBool(KeyForce),
		},
		Server: ServerConfig{
			Address:         v.GetString(KeyAddress),
			Port:            v.GetInt(KeyPort),
			RateLimit:       v.GetFloat64(KeyRateLimit),
			RateBurst:       v.GetInt(KeyRateBurst),
			ReadTimeout:     v.GetDuration(KeyReadTimeout),
			WriteTimeout:    v.GetDuration(KeyWriteTimeout),
			ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
			MaxBodyBytes:    v.GetInt64(KeyMaxBodyBytes),
		},
		File: v.ConfigFileUsed(),
	}

	if v.IsSet(KeySeed) {
		seed := v.GetUint64(KeySeed)
		cfg.Generate.Seed = &seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	var errs []error

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyLogLevel, err))
	}
	if c.Log.Format != logger.FormatConsole && c.Log.Format != logger.FormatJSON {
		errs = append(errs, fmt.Errorf("%s: unknown format %q (use console or json)", KeyLogFormat, c.Log.Format))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("%s: %d is out of range", KeyPort, c.Server.Port))
	}
	if c.Server.RateLimit <= 0 {
		errs = append(errs, fmt.Errorf("%s: must be positive", KeyRateLimit))
	}
	if c.Server.RateBurst < 1 {
		errs = append(errs, fmt.Errorf("%s: must be at least 1", KeyRateBurst))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("%s: must be positive", KeyMaxBodyBytes))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// LogLevel returns the parsed log level
func (c *Config) LogLevel() logger.Level {
	level, _ := logger.ParseLevel(c.Log.Level)
	return level
}
