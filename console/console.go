// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package console prints bme280 readings to a terminal, one line per
// reading, prefixed by a color swatch of the temperature using ANSI color
// codes.
//
// Each line looks like:
//
//	T: 25.08 C, P: 754.9 mmHg, H: 39.032%
package console

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/envsense/bme280"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
)

// Opts represents the options available for this console.
type Opts struct {
	Palette *ansi256.Palette
	// Cold and Hot are the temperatures mapped to full blue and full red.
	// Both zero means 0 °C and 40 °C.
	Cold, Hot bme280.Temperature
	// Fahrenheit prints the temperature in °F.
	Fahrenheit bool
	// NoColor disables the swatch.
	NoColor bool

	_ struct{}
}

// Dev writes readings to a terminal.
type Dev struct {
	w          io.Writer
	palette    ansi256.Palette
	cold, hot  bme280.Temperature
	fahrenheit bool
	noColor    bool

	buf bytes.Buffer
}

// New returns a Dev that prints to stdout, with ANSI support on Windows too.
func New(opts *Opts) *Dev {
	return NewWriter(colorable.NewColorableStdout(), opts)
}

// NewWriter returns a Dev that prints to w.
func NewWriter(w io.Writer, opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	d := &Dev{
		w:          w,
		palette:    *p,
		cold:       opts.Cold,
		hot:        opts.Hot,
		fahrenheit: opts.Fahrenheit,
		noColor:    opts.NoColor,
	}
	if d.cold == 0 && d.hot == 0 {
		d.hot = 4000
	}
	return d
}

func (d *Dev) String() string {
	return "Console"
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes.
func (d *Dev) Halt() error {
	if d.noColor {
		return nil
	}
	_, err := io.WriteString(d.w, "\033[0m")
	return err
}

// Write prints one reading.
func (d *Dev) Write(r bme280.Reading) error {
	d.buf.Reset()
	if !d.noColor {
		_, _ = d.buf.WriteString("\033[0m")
		_, _ = io.WriteString(&d.buf, d.palette.Block(d.swatch(r.Temperature)))
		_, _ = d.buf.WriteString("\033[0m ")
	}
	_, _ = d.buf.WriteString(Format(r, d.fahrenheit))
	_ = d.buf.WriteByte('\n')
	_, err := d.buf.WriteTo(d.w)
	return err
}

// Format returns the text of a reading without color codes.
func Format(r bme280.Reading, fahrenheit bool) string {
	v := int32(r.Temperature)
	ti, tf := r.Temperature.Celsius()
	unit := "C"
	if fahrenheit {
		v = v*9/5 + 3200
		ti, tf = r.Temperature.Fahrenheit()
		unit = "F"
	}
	// The integer part carries the sign; it is lost between -1 and 0.
	sign := ""
	if ti == 0 && v < 0 {
		sign = "-"
	}
	pi, pf := r.Pressure.MillimetreMercury()
	hi, hf := r.Humidity.Percent()
	return fmt.Sprintf("T: %s%d.%02d %s, P: %d.%01d mmHg, H: %d.%03d%%", sign, ti, tf, unit, pi, pf, hi, hf)
}

// swatch interpolates from blue (cold) to red (hot).
func (d *Dev) swatch(t bme280.Temperature) color.NRGBA {
	span := int32(d.hot - d.cold)
	if span <= 0 {
		span = 1
	}
	x := int32(t-d.cold) * 255 / span
	if x < 0 {
		x = 0
	} else if x > 255 {
		x = 255
	}
	return color.NRGBA{R: uint8(x), G: 0, B: uint8(255 - x), A: 255}
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}
