// Copyright (c) 2014 Canonical Ltd.
// Licensed under the GPLv3, see the COPYING file for details.

package signup

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/signal-golang/signup/config"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var validate = validator.New()

// ReadConfig reads a YAML config file
func ReadConfig(fileName string) (*config.Config, error) {
	b, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{}
	err = yaml.Unmarshal(b, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteConfig saves a config to a file
func WriteConfig(filename string, cfg *config.Config) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0600)
}

// LoadConfig reads the config file when one is given, applies SIGNUP_*
// environment overrides, makes sure that for unset values sane defaults are
// used and validates the result.
func LoadConfig(fileName string) (*config.Config, error) {
	log.Debugln("[signup] loading config")
	cfg := &config.Config{}
	if fileName != "" {
		var err error
		cfg, err = ReadConfig(fileName)
		if err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)
	applyDefaults(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateConfig checks the config against its validate tags.
func ValidateConfig(cfg *config.Config) error {
	if err := validate.Struct(cfg); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
	}
	return nil
}

func applyDefaults(cfg *config.Config) {
	if cfg.Server == "" {
		cfg.Server = config.DefaultServer
	}
	cfg.Server = strings.TrimRight(cfg.Server, "/")

	if cfg.VerificationType == "" {
		cfg.VerificationType = config.DefaultVerificationType
	}
	cfg.VerificationType = strings.ToLower(cfg.VerificationType)

	if cfg.ClientType == "" {
		cfg.ClientType = config.DefaultClientType
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = config.DefaultUserAgent
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = config.DefaultTimeout
	}
}

func applyEnv(cfg *config.Config) {
	if v := os.Getenv("SIGNUP_SERVER"); v != "" {
		cfg.Server = v
	}
	if v := os.Getenv("SIGNUP_TEL"); v != "" {
		cfg.Tel = v
	}
	if v := os.Getenv("SIGNUP_ROOT_CA"); v != "" {
		cfg.RootCA = v
	}
	if v := os.Getenv("SIGNUP_PROXY"); v != "" {
		cfg.ProxyServer = v
	}
	if v := os.Getenv("SIGNUP_VERIFICATION_TYPE"); v != "" {
		cfg.VerificationType = v
	}
	if v := os.Getenv("SIGNUP_LOGLEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SIGNUP_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("SIGNUP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		} else {
			log.Errorln("[signup] ignoring SIGNUP_TIMEOUT", err)
		}
	}
	if v := os.Getenv("SIGNUP_REQUEST_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestInterval = d
		} else {
			log.Errorln("[signup] ignoring SIGNUP_REQUEST_INTERVAL", err)
		}
	}
}
