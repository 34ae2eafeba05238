// Package config loads configuration structs from struct-tag defaults, an
// optional YAML file and the environment.
//
// It wraps github.com/caarlos0/env/v11 for environment parsing,
// github.com/joho/godotenv for .env files and gopkg.in/yaml.v3 for the file
// layer. Precedence, lowest first:
//
//  1. `envDefault` tags
//  2. the YAML file passed with WithFile (unknown keys are rejected)
//  3. environment variables, including those loaded from .env files
//
// # Usage
//
//	type Config struct {
//		Incognito incognito.Config `yaml:"incognito"`
//		HTTP      httpserver.Config `yaml:"http"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg, config.WithFile(path)); err != nil {
//		return err
//	}
//
// # Error Handling
//
// Errors wrap ErrParsingConfig, ErrLoadingEnvFile, ErrReadingFile or
// ErrParsingFile; match them with errors.Is.
package config
