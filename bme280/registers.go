// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

import (
	"encoding/binary"

	"periph.io/x/conn/v3/i2c"
)

// Register map.
const (
	regDigT1 byte = 0x88
	regDigT2 byte = 0x8A
	regDigT3 byte = 0x8C
	regDigP1 byte = 0x8E
	regDigP2 byte = 0x90
	regDigP3 byte = 0x92
	regDigP4 byte = 0x94
	regDigP5 byte = 0x96
	regDigP6 byte = 0x98
	regDigP7 byte = 0x9A
	regDigP8 byte = 0x9C
	regDigP9 byte = 0x9E
	regDigH1 byte = 0xA1
	regDigH2 byte = 0xE1
	regDigH3 byte = 0xE3
	regDigH4 byte = 0xE4
	regDigH5 byte = 0xE5
	regDigH6 byte = 0xE7

	regID          byte = 0xD0
	regReset       byte = 0xE0
	regCtrlHum     byte = 0xF2
	regStatus      byte = 0xF3
	regCtrlMeas    byte = 0xF4
	regPressure    byte = 0xF7
	regTemperature byte = 0xFA
	regHumidity    byte = 0xFD
)

const (
	resetValue byte = 0xB6

	statusMeasuring byte = 1 << 3
	statusUpdating  byte = 1 << 0
)

// readReg reads len(b) bytes starting at reg in a single write-then-read
// transaction.
func readReg(d *i2c.Dev, reg byte, b []byte) error {
	if err := d.Tx([]byte{reg}, b); err != nil {
		return &TransportError{Op: "read", Reg: reg, Err: err}
	}
	return nil
}

// writeReg writes a single byte value to reg.
func writeReg(d *i2c.Dev, reg, v byte) error {
	if err := d.Tx([]byte{reg, v}, nil); err != nil {
		return &TransportError{Op: "write", Reg: reg, Err: err}
	}
	return nil
}

func readU8(d *i2c.Dev, reg byte) (uint8, error) {
	var b [1]byte
	if err := readReg(d, reg, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func readI8(d *i2c.Dev, reg byte) (int8, error) {
	v, err := readU8(d, reg)
	return int8(v), err
}

func readU16(d *i2c.Dev, reg byte) (uint16, error) {
	var b [2]byte
	if err := readReg(d, reg, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func readI16(d *i2c.Dev, reg byte) (int16, error) {
	v, err := readU16(d, reg)
	return int16(v), err
}

// readRaw20 reads a 20 bit ADC value (msb, lsb, xlsb[7:4]).
func readRaw20(d *i2c.Dev, reg byte) (int32, error) {
	var b [3]byte
	if err := readReg(d, reg, b[:]); err != nil {
		return 0, err
	}
	return int32(b[0])<<12 | int32(b[1])<<4 | int32(b[2])>>4, nil
}

// readRaw16 reads a 16 bit big endian ADC value.
func readRaw16(d *i2c.Dev, reg byte) (int32, error) {
	var b [2]byte
	if err := readReg(d, reg, b[:]); err != nil {
		return 0, err
	}
	return int32(b[0])<<8 | int32(b[1]), nil
}
