// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

import (
	"periph.io/x/conn/v3/i2c"
)

// calibration holds the trimming coefficients burned into the device NVM.
type calibration struct {
	t1     uint16
	t2, t3 int16

	p1                             uint16
	p2, p3, p4, p5, p6, p7, p8, p9 int16

	h1     uint8
	h2     int16
	h3     uint8
	h4, h5 int16
	h6     int8
}

// loadCalibration reads the 18 coefficients, one positioned read each. On
// failure the first bus error is returned along with a zero calibration.
func loadCalibration(d *i2c.Dev) (calibration, error) {
	var c calibration
	var err error
	if c.t1, err = readU16(d, regDigT1); err != nil {
		return calibration{}, err
	}
	if c.t2, err = readI16(d, regDigT2); err != nil {
		return calibration{}, err
	}
	if c.t3, err = readI16(d, regDigT3); err != nil {
		return calibration{}, err
	}
	if c.p1, err = readU16(d, regDigP1); err != nil {
		return calibration{}, err
	}
	if c.p2, err = readI16(d, regDigP2); err != nil {
		return calibration{}, err
	}
	if c.p3, err = readI16(d, regDigP3); err != nil {
		return calibration{}, err
	}
	if c.p4, err = readI16(d, regDigP4); err != nil {
		return calibration{}, err
	}
	if c.p5, err = readI16(d, regDigP5); err != nil {
		return calibration{}, err
	}
	if c.p6, err = readI16(d, regDigP6); err != nil {
		return calibration{}, err
	}
	if c.p7, err = readI16(d, regDigP7); err != nil {
		return calibration{}, err
	}
	if c.p8, err = readI16(d, regDigP8); err != nil {
		return calibration{}, err
	}
	if c.p9, err = readI16(d, regDigP9); err != nil {
		return calibration{}, err
	}
	if c.h1, err = readU8(d, regDigH1); err != nil {
		return calibration{}, err
	}
	if c.h2, err = readI16(d, regDigH2); err != nil {
		return calibration{}, err
	}
	if c.h3, err = readU8(d, regDigH3); err != nil {
		return calibration{}, err
	}
	if c.h4, err = readH4(d); err != nil {
		return calibration{}, err
	}
	if c.h5, err = readH5(d); err != nil {
		return calibration{}, err
	}
	if c.h6, err = readI8(d, regDigH6); err != nil {
		return calibration{}, err
	}
	return c, nil
}

// readH4 assembles dig_H4 from 0xE4 (bits 11:4) and the low nibble of 0xE5.
func readH4(d *i2c.Dev) (int16, error) {
	var b [2]byte
	if err := readReg(d, regDigH4, b[:]); err != nil {
		return 0, err
	}
	return int16(b[0])<<4 | int16(b[1]&0x0F), nil
}

// readH5 assembles dig_H5 from the high nibble of 0xE5 and 0xE6.
func readH5(d *i2c.Dev) (int16, error) {
	var b [2]byte
	if err := readReg(d, regDigH5, b[:]); err != nil {
		return 0, err
	}
	return int16(b[0]&0xF0)<<4 | int16(b[1]), nil
}
