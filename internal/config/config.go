// Package config loads jl2csv settings from flags, environment variables
// and an optional YAML file through viper.
//
// Precedence, highest first: command-line flags, JL2CSV_* environment
// variables, the config file, built-in defaults.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vegasq/jl2csv/internal/convert"
	"github.com/vegasq/jl2csv/internal/logging"
	"github.com/vegasq/jl2csv/internal/output"
	"github.com/vegasq/jl2csv/internal/reader"
)

// EnvPrefix prefixes every environment variable read by viper.
const EnvPrefix = "JL2CSV"

// Config keys. Flags use the same names with dashes.
const (
	KeyInput       = "input"
	KeyOutput      = "output"
	KeyFormat      = "format"
	KeyInputFormat = "input_format"
	KeyCRLF        = "crlf"
	KeySanitize    = "sanitize"
	KeyMaxWidth    = "max_width"
	KeyLogLevel    = "log_level"
)

// Config holds the settings for one run.
type Config struct {
	// Input is the path of the record file to read.
	Input string `json:"input" yaml:"input"`

	// Output is the path of the table file to write.
	Output string `json:"output" yaml:"output"`

	// Format is the output format: csv, jsonl, yaml or table.
	Format string `json:"format" yaml:"format"`

	// InputFormat is auto, jsonl or parquet.
	InputFormat string `json:"input_format" yaml:"input_format"`

	// CRLF terminates CSV lines with \r\n. Defaults to true on Windows.
	CRLF bool `json:"crlf" yaml:"crlf"`

	// Sanitize guards string cells against spreadsheet formula evaluation.
	Sanitize bool `json:"sanitize" yaml:"sanitize"`

	// MaxWidth truncates table cells; zero disables truncation.
	MaxWidth int `json:"max_width" yaml:"max_width"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyInput, convert.DefaultInput)
	v.SetDefault(KeyOutput, convert.DefaultOutput)
	v.SetDefault(KeyFormat, "csv")
	v.SetDefault(KeyInputFormat, reader.FormatAuto)
	v.SetDefault(KeyCRLF, runtime.GOOS == "windows")
	v.SetDefault(KeySanitize, false)
	v.SetDefault(KeyMaxWidth, 0)
	v.SetDefault(KeyLogLevel, "warn")
}

// BindFlags binds every flag in flags whose dashed name matches a config key.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if !isKey(key) {
			return
		}
		if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = errors.Wrapf(err, "failed to bind flag --%s", f.Name)
		}
	})
	return bindErr
}

// ReadFile points v at the config file and reads it.
//
// An explicit cfgFile must exist. Otherwise jl2csv.yaml is looked up in the
// working directory and in ~/.config/jl2csv, and a missing file is not an
// error. The path of the file used is returned, or "" when none was read.
func ReadFile(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("jl2csv")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "jl2csv"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", errors.Wrap(err, "failed to read config file")
	}
	return v.ConfigFileUsed(), nil
}

// Load reads the resolved settings out of v and validates them.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Input:       strings.TrimSpace(v.GetString(KeyInput)),
		Output:      strings.TrimSpace(v.GetString(KeyOutput)),
		Format:      strings.ToLower(strings.TrimSpace(v.GetString(KeyFormat))),
		InputFormat: strings.ToLower(strings.TrimSpace(v.GetString(KeyInputFormat))),
		CRLF:        v.GetBool(KeyCRLF),
		Sanitize:    v.GetBool(KeySanitize),
		MaxWidth:    v.GetInt(KeyMaxWidth),
		LogLevel:    strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every setting holds an accepted value.
func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input path must not be empty")
	}
	if c.Output == "" {
		return errors.New("output path must not be empty")
	}
	if !slices.Contains(output.Formats, c.Format) {
		return errors.Errorf("unsupported format %q (supported: %s)", c.Format, strings.Join(output.Formats, ", "))
	}
	if _, err := reader.DetectFormat(c.Input, c.InputFormat); err != nil {
		return err
	}
	if c.MaxWidth < 0 {
		return errors.Errorf("max_width must be non-negative, got %d", c.MaxWidth)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// OutputOptions returns the formatter options carried by c.
func (c Config) OutputOptions() output.Options {
	return output.Options{
		UseCRLF:  c.CRLF,
		Sanitize: c.Sanitize,
		MaxWidth: c.MaxWidth,
	}
}

// Converter builds a converter for c that logs through the given logger.
func (c Config) Converter(logger *slog.Logger) *convert.Converter {
	return &convert.Converter{
		InputFormat:  c.InputFormat,
		OutputFormat: c.Format,
		Options:      c.OutputOptions(),
		Logger:       logger,
	}
}

func isKey(key string) bool {
	switch key {
	case KeyInput, KeyOutput, KeyFormat, KeyInputFormat, KeyCRLF, KeySanitize, KeyMaxWidth, KeyLogLevel:
		return true
	}
	return false
}
