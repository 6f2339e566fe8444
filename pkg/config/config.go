// Package config loads sbolgen settings from defaults, an optional YAML
// file, SBOLGEN_* environment variables and bound command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/dd0wney/sbolgraph/pkg/artifact"
	"github.com/dd0wney/sbolgraph/pkg/logging"
	"github.com/dd0wney/sbolgraph/pkg/masking"
	"github.com/dd0wney/sbolgraph/pkg/metrics"
	"github.com/dd0wney/sbolgraph/pkg/validation"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g.
// SBOLGEN_NAMESPACE or SBOLGEN_S3_BUCKET.
const EnvPrefix = "SBOLGEN"

// MaxWorkers bounds Config.Workers.
const MaxWorkers = 256

// Formats accepted by Config.Format.
var Formats = []string{"rdfxml", "json", "yaml"}

// Config holds all sbolgen settings.
type Config struct {
	Namespace string            `mapstructure:"namespace" yaml:"namespace"`
	Version   string            `mapstructure:"version" yaml:"version"`
	Output    string            `mapstructure:"output" yaml:"output"`
	Format    string            `mapstructure:"format" yaml:"format"`
	Compress  bool              `mapstructure:"compress" yaml:"compress"`
	LogLevel  string            `mapstructure:"log_level" yaml:"log_level"`
	Journal   string            `mapstructure:"journal" yaml:"journal"` // audit journal path, empty to disable
	Workers   int               `mapstructure:"workers" yaml:"workers"` // constraints checked concurrently
	S3        artifact.S3Config `mapstructure:"s3" yaml:"s3"`
}

// Defaults reproduces the settings of the reference CRISPR build.
func Defaults() Config {
	return Config{
		Namespace: "http://sbols.org/CRISPR_Example/",
		Version:   "1.0.0",
		Output:    "RepressionModel.rdf",
		Format:    "rdfxml",
		LogLevel:  "info",
		Workers:   min(runtime.NumCPU(), MaxWorkers),
		S3: artifact.S3Config{
			Region: "us-east-1",
		},
	}
}

// New returns a viper instance with defaults and environment binding in
// place. Callers bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault("namespace", d.Namespace)
	v.SetDefault("version", d.Version)
	v.SetDefault("output", d.Output)
	v.SetDefault("format", d.Format)
	v.SetDefault("compress", d.Compress)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("journal", d.Journal)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("s3.region", d.S3.Region)
	v.SetDefault("s3.bucket", d.S3.Bucket)
	v.SetDefault("s3.endpoint", d.S3.Endpoint)
	v.SetDefault("s3.path_style", d.S3.PathStyle)
	v.SetDefault("s3.access_key_id", d.S3.AccessKeyID)
	v.SetDefault("s3.secret_access_key", d.S3.SecretAccessKey)
	v.SetDefault("s3.session_token", d.S3.SessionToken)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (if non-empty) into v and returns the merged, validated
// configuration. A missing explicit path is an error; an empty path means
// defaults, environment and flags only.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = New()
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	cv := validation.NewConfigValidator("Config").
		Required("namespace", c.Namespace).
		Namespace("namespace", c.Namespace).
		Required("version", c.Version).
		Version("version", c.Version).
		Required("output", c.Output).
		OneOf("format", c.Format, Formats).
		Custom("log_level", func() error {
			_, err := logging.ParseLevelStrict(c.LogLevel)
			return err
		}).
		Custom("workers", func() error {
			if c.Workers < 1 || c.Workers > MaxWorkers {
				return fmt.Errorf("must be between 1 and %d, got %d", MaxWorkers, c.Workers)
			}
			return nil
		})
	cv.When(strings.HasPrefix(c.Output, "s3://"), func(cv *validation.ConfigValidator) {
		cv.Required("s3.region", c.S3.Region).
			Custom("output", func() error {
				_, _, err := artifact.ParseS3URL(c.Output)
				return err
			})
	})
	cv.When(c.S3.AccessKeyID != "", func(cv *validation.ConfigValidator) {
		cv.Required("s3.secret_access_key", c.S3.SecretAccessKey)
	})
	return cv.Validate()
}

// Level returns the parsed log level.
func (c Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// ArtifactOptions maps the output settings onto artifact sink options.
func (c Config) ArtifactOptions(logger logging.Logger, reg *metrics.Registry) artifact.Options {
	return artifact.Options{
		Compress: c.Compress,
		S3:       c.S3,
		Logger:   logger,
		Metrics:  reg,
	}
}

// Redacted returns a copy with credentials masked.
func (c Config) Redacted() Config {
	c.S3.AccessKeyID = masking.Secret(c.S3.AccessKeyID)
	c.S3.SecretAccessKey = masking.Secret(c.S3.SecretAccessKey)
	c.S3.SessionToken = masking.Secret(c.S3.SessionToken)
	return c
}

// WriteYAML writes the configuration, credentials masked, as YAML.
func (c Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c.Redacted()); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// LogFields summarizes the configuration for a startup log line.
func (c Config) LogFields() []logging.Field {
	return []logging.Field{
		logging.String("namespace", c.Namespace),
		logging.String("version", c.Version),
		logging.Path(c.Output),
		logging.Format(c.Format),
		logging.Bool("compress", c.Compress),
		logging.Int("workers", c.Workers),
	}
}
