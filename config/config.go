// Package config loads runtime settings for the christofides command from a
// YAML file, an optional .env file and CHRISTOFIDES_* environment variables,
// in increasing order of precedence, and validates the merged result.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/christofides/planner"
	"github.com/katalvlaran/christofides/tsp"
)

// ErrInvalidConfig indicates a setting that could not be read or validated.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CHRISTOFIDES_"

// Config is the merged runtime configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Solver  SolverConfig  `yaml:"solver"`
	Fuel    planner.Fuel  `yaml:"fuel"`
	History HistoryConfig `yaml:"history"`
	// Timeout bounds a single solve; zero disables it.
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

// LogConfig selects logrus level and formatter.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// SolverConfig mirrors the tsp options.
type SolverConfig struct {
	Start          int    `yaml:"start" validate:"gte=0"`
	Matching       string `yaml:"matching" validate:"oneof=greedy exact"`
	TwoOpt         bool   `yaml:"two_opt"`
	TwoOptMaxIters int    `yaml:"two_opt_max_iters" validate:"gte=0"`
}

// HistoryConfig controls the run store.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"required_if=Enabled true"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		Solver: SolverConfig{Matching: tsp.MatchGreedy.String()},
		Fuel:   planner.Fuel{ConsumptionL100: 7.5, PricePerLitre: 1.9},
		History: HistoryConfig{
			Path: filepath.Join(xdg.DataHome, "christofides", "history.db"),
		},
	}
}

// LoadOption configures Load.
type LoadOption func(*loader)

type loader struct {
	envFiles []string
	optional bool
	lookup   func(string) (string, bool)
}

// WithEnvFiles reads the given dotenv files instead of ./.env. Listed files
// must exist.
func WithEnvFiles(files ...string) LoadOption {
	return func(l *loader) {
		l.envFiles = files
		l.optional = false
	}
}

// WithLookup replaces os.LookupEnv.
func WithLookup(fn func(string) (string, bool)) LoadOption {
	return func(l *loader) { l.lookup = fn }
}

// Load merges Default, the YAML file at path (skipped when empty), dotenv
// files and the process environment, then validates the result.
// Process variables win over dotenv values.
func Load(path string, opts ...LoadOption) (*Config, error) {
	l := loader{envFiles: []string{".env"}, optional: true, lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(&l)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidConfig, "read %s: %v", path, err)
		}
		if err = decodeYAML(data, &cfg); err != nil {
			return nil, errors.Wrapf(ErrInvalidConfig, "%s: %v", path, err)
		}
	}

	dotenv, err := l.readEnvFiles()
	if err != nil {
		return nil, err
	}
	env := func(key string) (string, bool) {
		if v, ok := l.lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err = cfg.applyEnv(env); err != nil {
		return nil, err
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func (l loader) readEnvFiles() (map[string]string, error) {
	out := map[string]string{}
	for _, f := range l.envFiles {
		m, err := godotenv.Read(f)
		if err != nil {
			if l.optional && os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(ErrInvalidConfig, "env file %s: %v", f, err)
		}
		for k, v := range m {
			if _, seen := out[k]; !seen {
				out[k] = v
			}
		}
	}

	return out, nil
}

func (c *Config) applyEnv(env func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := env(EnvPrefix + name); ok {
			*dst = v
		}
	}
	var err error
	num := func(name string, dst *int) {
		if v, ok := env(EnvPrefix + name); ok && err == nil {
			if *dst, err = strconv.Atoi(v); err != nil {
				err = errors.Wrapf(ErrInvalidConfig, "%s%s=%q is not an integer", EnvPrefix, name, v)
			}
		}
	}
	flt := func(name string, dst *float64) {
		if v, ok := env(EnvPrefix + name); ok && err == nil {
			if *dst, err = strconv.ParseFloat(v, 64); err != nil {
				err = errors.Wrapf(ErrInvalidConfig, "%s%s=%q is not a number", EnvPrefix, name, v)
			}
		}
	}
	flag := func(name string, dst *bool) {
		if v, ok := env(EnvPrefix + name); ok && err == nil {
			if *dst, err = strconv.ParseBool(v); err != nil {
				err = errors.Wrapf(ErrInvalidConfig, "%s%s=%q is not a boolean", EnvPrefix, name, v)
			}
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := env(EnvPrefix + name); ok && err == nil {
			if *dst, err = time.ParseDuration(v); err != nil {
				err = errors.Wrapf(ErrInvalidConfig, "%s%s=%q is not a duration", EnvPrefix, name, v)
			}
		}
	}

	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	num("START", &c.Solver.Start)
	str("MATCHING", &c.Solver.Matching)
	flag("TWO_OPT", &c.Solver.TwoOpt)
	num("TWO_OPT_MAX_ITERS", &c.Solver.TwoOptMaxIters)
	flt("FUEL_CONSUMPTION", &c.Fuel.ConsumptionL100)
	flt("FUEL_PRICE", &c.Fuel.PricePerLitre)
	flag("HISTORY", &c.History.Enabled)
	str("HISTORY_PATH", &c.History.Path)
	dur("TIMEOUT", &c.Timeout)

	return err
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return v
}

// Validate checks every field constraint.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	return nil
}

// SolveOptions translates the solver section into tsp options.
func (c *Config) SolveOptions() ([]tsp.Option, error) {
	mode, err := tsp.ParseMatchingMode(c.Solver.Matching)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "matching: %v", err)
	}
	opts := []tsp.Option{tsp.WithStart(c.Solver.Start), tsp.WithMatching(mode)}
	if c.Solver.TwoOpt {
		opts = append(opts, tsp.WithTwoOpt(c.Solver.TwoOptMaxIters))
	}

	return opts, nil
}
