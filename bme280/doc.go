// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bme280 controls a Bosch BME280 temperature, pressure and humidity
// sensor over I²C.
//
// The driver keeps the datasheet's fixed-point arithmetic: temperatures are
// returned in hundredths of a degree Celsius, pressure in 1/256 Pa (Q24.8)
// and humidity in 1/1024 %RH (Q22.10). The Temperature, Pressure and Humidity
// types split those values into integer and fractional parts for display, or
// convert them to periph's physic units.
//
// # Measurement order
//
// Temperature compensation produces an intermediate value (t_fine) that both
// pressure and humidity compensation consume. Call Dev.Temperature before
// Dev.Pressure or Dev.Humidity after every new conversion, or use Dev.Read and
// Dev.Sense which do it in the right order.
//
// # Reset
//
// Dev.Reset only writes the reset trigger. The device needs about 2ms to copy
// its NVM calibration again; poll Dev.Status until Updating is false before
// issuing other commands.
//
// # Datasheet
//
// https://www.bosch-sensortec.com/media/boschsensortec/downloads/datasheets/bst-bme280-ds002.pdf
package bme280
