// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

import "strconv"

// Oversampling is the oversampling applied to one measurement channel.
//
// More oversampling reduces noise at the cost of conversion time and power.
type Oversampling uint8

// Possible oversampling values. Skip disables the channel; its readings then
// compensate to 0.
const (
	Skip Oversampling = iota
	O1x
	O2x
	O4x
	O8x
	O16x
)

const oversamplingName = "SkipO1xO2xO4xO8xO16x"

var oversamplingIndex = [...]uint8{0, 4, 7, 10, 13, 16, 20}

func (o Oversampling) String() string {
	if o >= Oversampling(len(oversamplingIndex)-1) {
		return "Oversampling(" + strconv.Itoa(int(o)) + ")"
	}
	return oversamplingName[oversamplingIndex[o]:oversamplingIndex[o+1]]
}

// Mode is the power mode written to ctrl_meas.
type Mode uint8

// Power modes.
const (
	// Sleep stops conversions. This is the state after power on or reset.
	Sleep Mode = iota
	// Forced runs one conversion then returns to Sleep.
	Forced
	// Normal converts continuously.
	Normal
)

func (m Mode) String() string {
	switch m {
	case Sleep:
		return "Sleep"
	case Forced:
		return "Forced"
	case Normal:
		return "Normal"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Bit patterns of each setting in its control register. ctrl_hum uses bits
// [2:0]; ctrl_meas holds temperature in [7:5], pressure in [4:2] and the
// mode in [1:0].
var (
	humidityBits = [...]byte{
		Skip: 0b000_00_000,
		O1x:  0b000_00_001,
		O2x:  0b000_00_010,
		O4x:  0b000_00_011,
		O8x:  0b000_00_100,
		O16x: 0b000_00_101,
	}
	temperatureBits = [...]byte{
		Skip: 0b000_000_00,
		O1x:  0b001_000_00,
		O2x:  0b010_000_00,
		O4x:  0b011_000_00,
		O8x:  0b100_000_00,
		O16x: 0b101_000_00,
	}
	pressureBits = [...]byte{
		Skip: 0b000_000_00,
		O1x:  0b000_001_00,
		O2x:  0b000_010_00,
		O4x:  0b000_011_00,
		O8x:  0b000_100_00,
		O16x: 0b000_101_00,
	}
	modeBits = [...]byte{
		Sleep:  0b000_000_00,
		Forced: 0b000_000_01,
		Normal: 0b000_000_11,
	}
)

const modeMask byte = 0b11

// encodeCtrlHum returns the ctrl_hum register value.
func encodeCtrlHum(h Oversampling) (byte, error) {
	if int(h) >= len(humidityBits) {
		return 0, ErrInvalidSetting
	}
	return humidityBits[h], nil
}

// encodeCtrlMeas returns the ctrl_meas register value.
func encodeCtrlMeas(t, p Oversampling, m Mode) (byte, error) {
	if int(t) >= len(temperatureBits) || int(p) >= len(pressureBits) || int(m) >= len(modeBits) {
		return 0, ErrInvalidSetting
	}
	return temperatureBits[t] | pressureBits[p] | modeBits[m], nil
}
