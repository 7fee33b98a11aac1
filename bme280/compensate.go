// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

// Raw values reported by the ADC when the channel is skipped.
const (
	skipped20 int32 = 0x80000
	skipped16 int32 = 0x8000
)

// humidityMax is 100 %RH in Q22.10 before the final shift by 12.
const humidityMax int32 = 419430400

// compensateTemp returns temperature in °C, resolution is 0.01 °C.
// Output value of 5123 equals 51.23 C. The second value is t_fine.
//
// raw has 20 bits of resolution. Go's shift operators share precedence with
// multiplication, hence the explicit parentheses everywhere below.
func (c *calibration) compensateTemp(raw int32) (int32, int32) {
	t1 := int32(c.t1)
	var1 := ((((raw >> 3) - (t1 << 1)) * int32(c.t2)) >> 11)
	var2 := (((((raw >> 4) - t1) * ((raw >> 4) - t1)) >> 12) * int32(c.t3)) >> 14
	tFine := var1 + var2
	return ((tFine * 5) + 128) >> 8, tFine
}

// compensatePressure returns pressure in Pa in Q24.8 format (24 integer bits
// and 8 fractional bits). Output value of 24674867 represents
// 24674867/256 = 96386.2 Pa = 963.862 hPa.
//
// raw has 20 bits of resolution. It returns 0 when the intermediate divisor
// is zero.
func (c *calibration) compensatePressure(raw, tFine int32) uint32 {
	var1 := int64(tFine) - 128000
	var2 := var1 * var1 * int64(c.p6)
	var2 += (var1 * int64(c.p5)) << 17
	var2 += int64(c.p4) << 35
	var1 = ((var1 * var1 * int64(c.p3)) >> 8) + ((var1 * int64(c.p2)) << 12)
	var1 = (((int64(1) << 47) + var1) * int64(c.p1)) >> 33
	if var1 == 0 {
		return 0
	}

	p := 1048576 - int64(raw)
	p = (((p << 31) - var2) * 3125) / var1
	var1 = (int64(c.p9) * (p >> 13) * (p >> 13)) >> 25
	var2 = (int64(c.p8) * p) >> 19
	p = ((p + var1 + var2) >> 8) + (int64(c.p7) << 4)
	return uint32(p)
}

// compensateHumidity returns humidity in %RH in Q22.10 format (22 integer
// and 10 fractional bits). Output value of 47445 represents 47445/1024 =
// 46.333%
//
// raw has 16 bits of resolution.
func (c *calibration) compensateHumidity(raw, tFine int32) uint32 {
	x := tFine - 76800
	x1 := (((raw << 14) - (int32(c.h4) << 20) - (int32(c.h5) * x)) + 16384) >> 15
	x2 := (((((x * int32(c.h6)) >> 10) * (((x * int32(c.h3)) >> 11) + 32768)) >> 10) + 2097152)
	x2 = ((x2 * int32(c.h2)) + 8192) >> 14
	x = x1 * x2
	x -= ((((x >> 15) * (x >> 15)) >> 7) * int32(c.h1)) >> 4
	if x < 0 {
		x = 0
	}
	if x > humidityMax {
		x = humidityMax
	}
	return uint32(x >> 12)
}
