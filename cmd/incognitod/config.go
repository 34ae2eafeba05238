package main

import (
	"github.com/aluminumlabs/incognito/pkg/config"
	"github.com/aluminumlabs/incognito/pkg/fetcher"
	"github.com/aluminumlabs/incognito/pkg/httpserver"
	"github.com/aluminumlabs/incognito/pkg/incognito"
	"github.com/aluminumlabs/incognito/pkg/logger"
	"github.com/aluminumlabs/incognito/pkg/ratelimiter"
)

type appConfig struct {
	Environment string             `env:"APP_ENV" envDefault:"production" yaml:"environment"`
	Log         logger.Config      `yaml:"log"`
	HTTP        httpserver.Config  `yaml:"http"`
	Fetcher     fetcher.Config     `yaml:"fetcher"`
	Incognito   incognito.Config   `yaml:"incognito"`
	RateLimit   ratelimiter.Config `yaml:"rate_limit"`
}

type globalFlags struct {
	configFile string
	envFiles   []string
}

func loadConfig(f globalFlags) (appConfig, error) {
	var cfg appConfig
	opts := []config.Option{config.WithEnvFiles(f.envFiles...)}
	if f.configFile != "" {
		opts = append(opts, config.WithFile(f.configFile))
	}
	if err := config.Load(&cfg, opts...); err != nil {
		return appConfig{}, err
	}
	if err := cfg.Incognito.Validate(); err != nil {
		return appConfig{}, err
	}
	if cfg.RateLimit.Enabled {
		if err := cfg.RateLimit.Validate(); err != nil {
			return appConfig{}, err
		}
	}
	return cfg, nil
}
