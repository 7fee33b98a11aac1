// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"os"
	"strings"
	"time"

	"github.com/GermanBionicSystems/envsense/bme280"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration of bme280mon.
type Config struct {
	Log struct {
		Level  string `yaml:"level"`  // zerolog level, e.g. info
		Pretty bool   `yaml:"pretty"` // human readable output on stderr
	} `yaml:"log"`

	Sensor struct {
		Bus         string        `yaml:"bus"`         // i2creg name, "" for the first bus
		Address     string        `yaml:"address"`     // "low" (0x76) or "high" (0x77)
		Humidity    string        `yaml:"humidity"`    // skip, 1x, 2x, 4x, 8x or 16x
		Temperature string        `yaml:"temperature"` // same as humidity
		Pressure    string        `yaml:"pressure"`    // same as humidity
		Interval    time.Duration `yaml:"interval"`    // e.g. 60s
	} `yaml:"sensor"`

	Console struct {
		Enabled    bool `yaml:"enabled"`
		Fahrenheit bool `yaml:"fahrenheit"`
		NoColor    bool `yaml:"no_color"`
	} `yaml:"console"`

	Metrics struct {
		Addr string `yaml:"addr"` // e.g. :9100, "" disables
	} `yaml:"metrics"`

	Publish struct {
		Backend string `yaml:"backend"` // "none", "zmq" or "nats"

		ZMQ struct {
			Endpoint string `yaml:"endpoint"` // e.g. tcp://127.0.0.1:5555
			Topic    string `yaml:"topic"`    // first frame of every message
		} `yaml:"zmq"`

		NATS struct {
			URL     string `yaml:"url"`     // e.g. nats://127.0.0.1:4222
			Subject string `yaml:"subject"` // e.g. bme280.readings
		} `yaml:"nats"`
	} `yaml:"publish"`
}

// LoadConfig reads the file at path and applies defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return &cfg, nil
}

func (cfg *Config) setDefaults() {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Sensor.Address == "" {
		cfg.Sensor.Address = "low"
	}
	if cfg.Sensor.Humidity == "" {
		cfg.Sensor.Humidity = "16x"
	}
	if cfg.Sensor.Temperature == "" {
		cfg.Sensor.Temperature = "16x"
	}
	if cfg.Sensor.Pressure == "" {
		cfg.Sensor.Pressure = "16x"
	}
	if cfg.Sensor.Interval == 0 {
		cfg.Sensor.Interval = time.Minute
	}
	if cfg.Publish.Backend == "" {
		cfg.Publish.Backend = "none"
	}
	if cfg.Publish.ZMQ.Endpoint == "" {
		cfg.Publish.ZMQ.Endpoint = "tcp://127.0.0.1:5555"
	}
	if cfg.Publish.ZMQ.Topic == "" {
		cfg.Publish.ZMQ.Topic = "bme280"
	}
	if cfg.Publish.NATS.URL == "" {
		cfg.Publish.NATS.URL = "nats://127.0.0.1:4222"
	}
	if cfg.Publish.NATS.Subject == "" {
		cfg.Publish.NATS.Subject = "bme280.readings"
	}
}

func (cfg *Config) validate() error {
	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return err
	}
	if _, err := cfg.address(); err != nil {
		return err
	}
	h, t, p, err := cfg.oversampling()
	if err != nil {
		return err
	}
	// Pressure and humidity compensation use t_fine from the temperature.
	if t == bme280.Skip && (h != bme280.Skip || p != bme280.Skip) {
		return errors.New("temperature cannot be skipped while pressure or humidity is enabled")
	}
	if cfg.Sensor.Interval < 0 {
		return errors.Errorf("negative interval %s", cfg.Sensor.Interval)
	}
	switch cfg.Publish.Backend {
	case "none", "zmq", "nats":
	default:
		return errors.Errorf("unknown backend: %s", cfg.Publish.Backend)
	}
	return nil
}

func (cfg *Config) address() (uint16, error) {
	switch strings.ToLower(cfg.Sensor.Address) {
	case "low", "0x76":
		return bme280.AddressLow, nil
	case "high", "0x77":
		return bme280.AddressHigh, nil
	default:
		return 0, errors.Errorf("unknown sensor address %q", cfg.Sensor.Address)
	}
}

// oversampling returns the humidity, temperature and pressure settings.
func (cfg *Config) oversampling() (h, t, p bme280.Oversampling, err error) {
	if h, err = parseOversampling(cfg.Sensor.Humidity); err != nil {
		return
	}
	if t, err = parseOversampling(cfg.Sensor.Temperature); err != nil {
		return
	}
	p, err = parseOversampling(cfg.Sensor.Pressure)
	return
}

func parseOversampling(s string) (bme280.Oversampling, error) {
	switch strings.ToLower(s) {
	case "skip", "off":
		return bme280.Skip, nil
	case "1x":
		return bme280.O1x, nil
	case "2x":
		return bme280.O2x, nil
	case "4x":
		return bme280.O4x, nil
	case "8x":
		return bme280.O8x, nil
	case "16x":
		return bme280.O16x, nil
	default:
		return 0, errors.Errorf("unknown oversampling %q", s)
	}
}
