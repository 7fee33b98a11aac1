// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// bme280mon polls a BME280 and exposes its readings as Prometheus metrics,
// as binary messages on ZeroMQ or NATS, and optionally on the terminal.
//
// Each published message is 20 bytes, big endian: the unix time in
// nanoseconds, then the temperature in 0.01 °C, the pressure in Q24.8 Pa and
// the relative humidity in Q22.10 %.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GermanBionicSystems/envsense/bme280"
	"github.com/GermanBionicSystems/envsense/console"
	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file; defaults apply when empty")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bme280mon: %v\n", err)
		os.Exit(1)
	}
	setupLogging(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigCh
		log.Info().Str("signal", s.String()).Msg("shutdown requested")
		cancel()
	}()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("bme280mon failed")
	}
}

func setupLogging(cfg *Config) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	// Validated by LoadConfig.
	level, _ := zerolog.ParseLevel(cfg.Log.Level)
	zerolog.SetGlobalLevel(level)
	if cfg.Log.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func run(ctx context.Context, cfg *Config) error {
	if _, err := host.Init(); err != nil {
		return errors.Wrap(err, "periph host init")
	}
	bus, err := i2creg.Open(cfg.Sensor.Bus)
	if err != nil {
		return errors.Wrapf(err, "open I²C bus %q", cfg.Sensor.Bus)
	}
	defer bus.Close()

	addr, _ := cfg.address()
	dev, err := openSensor(bus, addr)
	if err != nil {
		return err
	}
	logger := log.With().Str("sensor", dev.String()).Logger()

	if err := prepare(ctx, dev, cfg, logger); err != nil {
		return err
	}
	defer func() {
		if err := dev.Halt(); err != nil {
			logger.Error().Err(err).Msg("halt failed")
		}
	}()

	pub, err := NewPublisher(ctx, cfg)
	if err != nil {
		return err
	}
	if pub != nil {
		defer pub.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewBuildInfoCollector())
	m := &monitor{
		sensor:  dev,
		metrics: newMetrics(reg, fmt.Sprintf("0x%02x", addr)),
		pub:     pub,
		log:     logger,
		now:     time.Now,
	}
	if cfg.Metrics.Addr != "" {
		serveMetrics(ctx, cfg.Metrics.Addr, reg)
	}
	if cfg.Console.Enabled {
		m.out = console.New(&console.Opts{Fahrenheit: cfg.Console.Fahrenheit, NoColor: cfg.Console.NoColor})
		defer m.out.Halt()
	}

	if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		logger.Warn().Err(err).Msg("systemd notify failed")
	}
	go watchdog(ctx)

	logger.Info().
		Str("backend", cfg.Publish.Backend).
		Dur("interval", cfg.Sensor.Interval).
		Msg("bme280 monitor started")

	m.run(ctx, cfg.Sensor.Interval)

	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
	logger.Info().Msg("shutting down monitor")
	return nil
}

func openSensor(bus i2c.Bus, addr uint16) (*bme280.Dev, error) {
	var dev *bme280.Dev
	var err error
	if addr == bme280.AddressHigh {
		dev, err = bme280.NewI2CHigh(bus)
	} else {
		dev, err = bme280.NewI2CLow(bus)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "init bme280 at 0x%02x", addr)
	}
	return dev, nil
}

// prepare resets the sensor, waits for the NVM copy to complete and applies
// the configured oversampling in Normal mode.
func prepare(ctx context.Context, dev *bme280.Dev, cfg *Config, logger zerolog.Logger) error {
	id, err := dev.ID()
	if err != nil {
		return errors.Wrap(err, "read chip id")
	}
	if id != bme280.ChipID {
		logger.Warn().Str("id", fmt.Sprintf("0x%02x", id)).Msg("unexpected chip id")
	}
	if err := dev.Reset(); err != nil {
		return errors.Wrap(err, "reset")
	}
	if err := waitUpdated(ctx, dev); err != nil {
		return err
	}
	h, t, p, _ := cfg.oversampling()
	if err := dev.Configure(h, t, p, bme280.Normal); err != nil {
		return errors.Wrap(err, "configure")
	}
	// Let the first conversion complete.
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(100 * time.Millisecond):
	}
	logger.Info().
		Stringer("humidity", h).
		Stringer("temperature", t).
		Stringer("pressure", p).
		Msg("sensor configured")
	return nil
}

type statusReader interface {
	Status() (bme280.Status, error)
}

// waitUpdated polls the status register until the calibration copy is done.
func waitUpdated(ctx context.Context, dev statusReader) error {
	for i := 0; i < 50; i++ {
		s, err := dev.Status()
		if err != nil {
			return errors.Wrap(err, "read status")
		}
		if !s.Updating {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Millisecond):
		}
	}
	return errors.New("sensor stuck copying NVM data")
}

// watchdog pings systemd at half the configured watchdog interval, if any.
func watchdog(ctx context.Context) {
	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil || interval == 0 {
		return
	}
	t := time.NewTicker(interval / 2)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_, _ = daemon.SdNotify(false, daemon.SdNotifyWatchdog)
		}
	}
}
