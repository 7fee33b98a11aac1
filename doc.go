// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package envsense is a container for the BME280 environment sensor driver
// and its tooling.
//
// The driver lives in bme280, terminal output in console and the monitoring
// daemon in cmd/bme280mon.
package envsense
