// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package console

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/envsense/bme280"
	"github.com/google/go-cmp/cmp"
)

var reading = bme280.Reading{Temperature: 2508, Pressure: 25767233, Humidity: 39969}

func TestFormat(t *testing.T) {
	for _, tc := range []struct {
		name       string
		r          bme280.Reading
		fahrenheit bool
		want       string
	}{
		{"celsius", reading, false, "T: 25.08 C, P: 754.9 mmHg, H: 39.032%"},
		{"fahrenheit", reading, true, "T: 77.14 F, P: 754.9 mmHg, H: 39.032%"},
		{"negative", bme280.Reading{Temperature: -5123}, false, "T: -51.23 C, P: 0.0 mmHg, H: 0.000%"},
		{"just below zero", bme280.Reading{Temperature: -50}, false, "T: -0.50 C, P: 0.0 mmHg, H: 0.000%"},
		{"fahrenheit below zero", bme280.Reading{Temperature: -1800}, true, "T: -0.40 F, P: 0.0 mmHg, H: 0.000%"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(Format(tc.r, tc.fahrenheit), tc.want); diff != "" {
				t.Fatalf("Format() mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	d := NewWriter(&buf, &Opts{NoColor: true})
	if err := d.Write(reading); err != nil {
		t.Fatal(err)
	}
	if err := d.Write(bme280.Reading{}); err != nil {
		t.Fatal(err)
	}
	want := "T: 25.08 C, P: 754.9 mmHg, H: 39.032%\nT: 0.00 C, P: 0.0 mmHg, H: 0.000%\n"
	if diff := cmp.Diff(buf.String(), want); diff != "" {
		t.Fatalf("output mismatch (-got +want):\n%s", diff)
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != want {
		t.Fatal("Halt wrote with colors disabled")
	}
}

func TestWrite_color(t *testing.T) {
	var buf bytes.Buffer
	d := NewWriter(&buf, nil)
	if err := d.Write(reading); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\033[0m") || !strings.HasSuffix(out, "\033[0m T: 25.08 C, P: 754.9 mmHg, H: 39.032%\n") {
		t.Fatalf("unexpected output %q", out)
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "\033[0m") {
		t.Fatal("Halt did not reset attributes")
	}
	if d.String() != "Console" {
		t.Fatal(d.String())
	}
}

func TestSwatch(t *testing.T) {
	d := NewWriter(&bytes.Buffer{}, &Opts{Cold: -1000, Hot: 3000})
	for _, tc := range []struct {
		t    bme280.Temperature
		want color.NRGBA
	}{
		{-4000, color.NRGBA{B: 255, A: 255}},
		{-1000, color.NRGBA{B: 255, A: 255}},
		{1000, color.NRGBA{R: 127, B: 128, A: 255}},
		{3000, color.NRGBA{R: 255, A: 255}},
		{8500, color.NRGBA{R: 255, A: 255}},
	} {
		if diff := cmp.Diff(d.swatch(tc.t), tc.want); diff != "" {
			t.Errorf("swatch(%d) mismatch (-got +want):\n%s", tc.t, diff)
		}
	}
}
