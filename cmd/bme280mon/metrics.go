// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/GermanBionicSystems/envsense/bme280"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// metrics holds the gauges of one sensor, labeled with its I²C address.
type metrics struct {
	temperature   prometheus.Gauge
	pressure      prometheus.Gauge
	humidity      prometheus.Gauge
	readErrors    prometheus.Counter
	publishErrors prometheus.Counter
}

func newMetrics(reg prometheus.Registerer, address string) *metrics {
	gauge := func(name, help string) *prometheus.GaugeVec {
		g := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, []string{"address"})
		reg.MustRegister(g)
		return g
	}
	counter := func(name, help string) *prometheus.CounterVec {
		c := prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, []string{"address"})
		reg.MustRegister(c)
		return c
	}
	return &metrics{
		temperature:   gauge("bme280_temperature_celsius", "Temperature from BME280 (units: degrees Celsius)").WithLabelValues(address),
		pressure:      gauge("bme280_pressure_hpa", "Pressure from BME280 (units: hPa)").WithLabelValues(address),
		humidity:      gauge("bme280_humidity_percent", "Humidity from BME280 (units: % of relative humidity)").WithLabelValues(address),
		readErrors:    counter("bme280_read_errors_total", "Failed sensor reads").WithLabelValues(address),
		publishErrors: counter("bme280_publish_errors_total", "Failed publications").WithLabelValues(address),
	}
}

func (m *metrics) observe(r bme280.Reading) {
	m.temperature.Set(float64(r.Temperature) / 100)
	m.pressure.Set(float64(r.Pressure) / 25600)
	m.humidity.Set(float64(r.Humidity) / 1024)
}

// serveMetrics exposes g on addr until ctx is canceled.
func serveMetrics(ctx context.Context, addr string, g prometheus.Gatherer) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Str("addr", addr).Msg("metrics server failed")
		}
	}()
}
