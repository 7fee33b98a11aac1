// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
)

// Temperature is a compensated temperature in hundredths of a degree
// Celsius. 5123 is 51.23 °C.
type Temperature int32

// Pressure is a compensated pressure in 1/256 Pa (Q24.8).
type Pressure uint32

// Humidity is a compensated relative humidity in 1/1024 % (Q22.10).
type Humidity uint32

// Fixed-point scales. The mmHg scale approximates 256 * 133.322 Pa; it is
// kept as is so displayed values match existing firmware output.
const (
	centiDegrees     = 100
	pascalScale      = 256
	hectopascalScale = 25_600
	mmHgScale        = 34_130
	percentScale     = 1024
)

// Reading is a full set of compensated measurements.
type Reading struct {
	Temperature Temperature
	Pressure    Pressure
	Humidity    Humidity
}

// Celsius returns the integer degrees and the hundredths. The sign is carried
// by the integer part only.
func (t Temperature) Celsius() (int16, uint8) {
	return splitCenti(int32(t))
}

// Fahrenheit converts to hundredths of a degree Fahrenheit with integer
// arithmetic and splits like Celsius.
func (t Temperature) Fahrenheit() (int16, uint8) {
	return splitCenti(int32(t)*9/5 + 3200)
}

func splitCenti(v int32) (int16, uint8) {
	r := v % centiDegrees
	if r < 0 {
		r = -r
	}
	return int16(v / centiDegrees), uint8(r)
}

// Physic converts to periph's Temperature (nano Kelvin).
func (t Temperature) Physic() physic.Temperature {
	return physic.Temperature(t)*10*physic.MilliCelsius + physic.ZeroCelsius
}

func (t Temperature) String() string {
	i, f := t.Celsius()
	if t < 0 && i == 0 {
		return fmt.Sprintf("-0.%02d°C", f)
	}
	return fmt.Sprintf("%d.%02d°C", i, f)
}

// Pascal returns the integer Pa and the hundredths.
func (p Pressure) Pascal() (uint32, uint8) {
	v := uint32(p)
	return v / pascalScale, uint8(100 * (v % pascalScale) / pascalScale)
}

// Hectopascal returns the integer hPa and the thousandths.
func (p Pressure) Hectopascal() (uint16, uint16) {
	v := uint32(p)
	return uint16(v / hectopascalScale), uint16(1000 * (v % hectopascalScale) / hectopascalScale)
}

// MillimetreMercury returns the integer mmHg and the tenths.
func (p Pressure) MillimetreMercury() (uint16, uint8) {
	v := uint32(p)
	return uint16(v / mmHgScale), uint8(10 * (v % mmHgScale) / mmHgScale)
}

// Physic converts to periph's Pressure (nano Pascal).
func (p Pressure) Physic() physic.Pressure {
	// 1/256 Pa is 15625/4 µPa.
	return physic.Pressure(p) * 15625 * physic.MicroPascal / 4
}

func (p Pressure) String() string {
	i, f := p.Hectopascal()
	return fmt.Sprintf("%d.%03dhPa", i, f)
}

// Percent returns the integer %RH and the thousandths.
func (h Humidity) Percent() (uint8, uint16) {
	v := uint32(h)
	return uint8(v / percentScale), uint16(1000 * (v % percentScale) / percentScale)
}

// Physic converts to periph's RelativeHumidity.
func (h Humidity) Physic() physic.RelativeHumidity {
	// Convert base 1024 to base 1000.
	return physic.RelativeHumidity(h) * 10000 / 1024 * physic.MicroRH
}

func (h Humidity) String() string {
	i, f := h.Percent()
	return fmt.Sprintf("%d.%03d%%rH", i, f)
}
