// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/moov-io/base/http/bind"

	"github.com/go-kit/kit/log"
	"github.com/spf13/viper"
)

type Config struct {
	Logger  log.Logger `yaml:"-" json:"-"`
	Logging Logging

	Admin    Admin
	Database Database

	Beneficiario Beneficiario
	Pastas       Pastas
	Retorno      Retorno
}

type Logging struct {
	Format string
	Level  string
}

type Admin struct {
	BindAddress           string `yaml:"bind_address" json:"bind_address" mapstructure:"bind_address"`
	DisableConfigEndpoint bool   `yaml:"disable_config_endpoint" json:"disable_config_endpoint" mapstructure:"disable_config_endpoint"`
}

func Empty() *Config {
	return &Config{
		Logger: log.NewNopLogger(),
		Admin: Admin{
			BindAddress: bind.Admin("cobranca"),
		},
		Database: Database{
			// Set the default path inside this path if no other database is defined.
			SQLite: &SQLite{
				Path: "cobranca.db",
			},
		},
		Pastas: Pastas{
			Saida:   "remessas",
			Retorno: "retornos",
		},
		Retorno: Retorno{
			Intervalo: "@every 10m",
		},
	}
}

func FromFile(path string) (*Config, error) {
	cfg := Empty()
	if path != "" {
		bs, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %v", path, err)
		}
		return Read(bs)
	}
	cfg = setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Read(data []byte) (*Config, error) {
	vip := viper.New()
	vip.SetConfigType("yaml")
	if err := vip.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("problem reading config: %v", err)
	}

	cfg := Empty()
	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("problem unmarshaling config: %v", err)
	}

	cfg = setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(cfg *Config) *Config {
	if strings.EqualFold(cfg.Logging.Format, "json") {
		cfg.Logger = log.NewJSONLogger(os.Stderr)
	} else {
		cfg.Logger = log.NewLogfmtLogger(os.Stderr)
	}

	cfg.Logger = log.With(cfg.Logger, "ts", log.DefaultTimestampUTC)
	cfg.Logger = log.With(cfg.Logger, "caller", log.DefaultCaller)

	return cfg
}

// OverrideLogFormat re-creates the logger from a -log.format flag
// value, which wins over the file's logging section.
func (cfg *Config) OverrideLogFormat(format string) {
	if format != "" {
		cfg.Logging.Format = format
		setupLogger(cfg)
	}
}

// Validate checks a Config fields and performs various confirmations
// their values conform to expectations.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.New("missing Config")
	}

	if err := cfg.Beneficiario.Validate(); err != nil {
		return fmt.Errorf("beneficiario: %v", err)
	}
	if err := cfg.Pastas.Validate(); err != nil {
		return fmt.Errorf("pastas: %v", err)
	}
	if err := cfg.Retorno.Validate(); err != nil {
		return fmt.Errorf("retorno: %v", err)
	}

	return nil
}
