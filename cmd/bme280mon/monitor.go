// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"time"

	"github.com/GermanBionicSystems/envsense/bme280"
	"github.com/GermanBionicSystems/envsense/console"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type reader interface {
	Read() (bme280.Reading, error)
}

// monitor polls a sensor and fans each reading out to the configured sinks.
// pub and out are optional.
type monitor struct {
	sensor  reader
	metrics *metrics
	pub     Publisher
	out     *console.Dev
	log     zerolog.Logger
	now     func() time.Time
}

// poll takes one reading.
func (m *monitor) poll() error {
	r, err := m.sensor.Read()
	if err != nil {
		m.metrics.readErrors.Inc()
		return errors.Wrap(err, "sensor read")
	}
	m.metrics.observe(r)
	m.log.Debug().
		Stringer("temperature", r.Temperature).
		Stringer("pressure", r.Pressure).
		Stringer("humidity", r.Humidity).
		Msg("reading")

	if m.out != nil {
		if err := m.out.Write(r); err != nil {
			return errors.Wrap(err, "console")
		}
	}
	if m.pub != nil {
		if err := m.pub.Publish(encodePayload(m.now(), r)); err != nil {
			m.metrics.publishErrors.Inc()
			return errors.Wrap(err, "publish")
		}
	}
	return nil
}

// run polls every interval until ctx is canceled. Errors are logged and do
// not stop the loop.
func (m *monitor) run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		if err := m.poll(); err != nil {
			m.log.Error().Err(err).Msg("poll failed")
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
