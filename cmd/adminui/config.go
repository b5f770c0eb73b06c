package main

import (
	"flag"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nikmy/adminui/internal/api"
	"github.com/nikmy/adminui/internal/dashboard"
	"github.com/nikmy/adminui/internal/source"
	"github.com/nikmy/adminui/internal/telegram"
	"github.com/nikmy/adminui/pkg/environment"
	"github.com/nikmy/adminui/pkg/errors"
)

type Config struct {
	Environment environment.Env  `yaml:"Environment"`
	Source      source.Config    `yaml:"Source"`
	Dashboard   dashboard.Config `yaml:"Dashboard"`
	API         api.Config       `yaml:"API"`
	Telegram    telegram.Config  `yaml:"Telegram"`
}

func loadConfig() (*Config, error) {
	configPath := flag.String("config", "config.yaml", "path to config file")
	env := flag.String("env", "", "environment (dev, prod)")
	flag.Parse()

	path, err := filepath.Abs(*configPath)
	if err != nil {
		return nil, errors.WrapFail(err, "build path to config")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFailf(err, "read %q", path)
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return nil, err
	}

	if *env != "" {
		cfg.Environment = environment.FromString(*env)
	}

	return cfg, nil
}

func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, errors.WrapFail(err, "parse yaml")
	}

	if cfg.API.HTTP.Addr == "" {
		cfg.API.HTTP.Addr = ":8080"
	}

	return &cfg, nil
}
