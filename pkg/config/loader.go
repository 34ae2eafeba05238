package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// noDefaultsTag disables envDefault handling on the second env pass so only
// variables that are actually set override values read from the file.
const noDefaultsTag = "envDefaultDisabled"

type options struct {
	file     string
	envFiles []string
	prefix   string
}

// Option configures Load.
type Option func(*options)

// WithFile reads a YAML file between defaults and the environment.
// An empty path is ignored.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// WithEnvFiles loads the given .env files instead of the optional ./.env.
// Unlike the default file, these must exist.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) { o.envFiles = append(o.envFiles, paths...) }
}

// WithPrefix prepends prefix to every env variable name.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// Load fills v from, in increasing precedence: envDefault tags, the YAML file
// given with WithFile, and environment variables (including .env files).
//
// Example:
//
//	type Config struct {
//		Addr    string        `env:"ADDR" envDefault:":8080" yaml:"addr"`
//		Timeout time.Duration `env:"TIMEOUT" envDefault:"5s" yaml:"timeout"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg, config.WithFile("incognitod.yaml")); err != nil {
//		// handle error
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if len(o.envFiles) > 0 {
		if err := godotenv.Load(o.envFiles...); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	} else {
		// ./.env is optional.
		_ = godotenv.Load()
	}

	if err := env.ParseWithOptions(v, env.Options{Prefix: o.prefix}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	if o.file == "" {
		return nil
	}

	if err := decodeFile(o.file, v); err != nil {
		return err
	}

	if err := env.ParseWithOptions(v, env.Options{
		Prefix:              o.prefix,
		DefaultValueTagName: noDefaultsTag,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrReadingFile, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(ErrParsingFile, fmt.Errorf("%s: %w", path, err))
	}
	return nil
}
