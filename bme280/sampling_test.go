// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

import (
	"errors"
	"testing"
)

func TestEncodeCtrlHum(t *testing.T) {
	for o, want := range map[Oversampling]byte{Skip: 0, O1x: 1, O2x: 2, O4x: 3, O8x: 4, O16x: 5} {
		got, err := encodeCtrlHum(o)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("encodeCtrlHum(%s) = %#08b, want %#08b", o, got, want)
		}
	}
	if _, err := encodeCtrlHum(O16x + 1); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestEncodeCtrlMeas(t *testing.T) {
	for _, test := range []struct {
		t, p Oversampling
		m    Mode
		want byte
	}{
		{Skip, Skip, Sleep, 0b000_000_00},
		{O1x, Skip, Forced, 0b001_000_01},
		{Skip, O1x, Normal, 0b000_001_11},
		{O2x, O4x, Forced, 0b010_011_01},
		{O8x, O16x, Sleep, 0b100_101_00},
		{O16x, O16x, Normal, 0b101_101_11},
	} {
		got, err := encodeCtrlMeas(test.t, test.p, test.m)
		if err != nil {
			t.Fatal(err)
		}
		if got != test.want {
			t.Errorf("encodeCtrlMeas(%s, %s, %s) = %#08b, want %#08b", test.t, test.p, test.m, got, test.want)
		}
	}
	for _, test := range []struct {
		t, p Oversampling
		m    Mode
	}{
		{Oversampling(6), O1x, Normal},
		{O1x, Oversampling(255), Normal},
		{O1x, O1x, Mode(3)},
	} {
		if _, err := encodeCtrlMeas(test.t, test.p, test.m); !errors.Is(err, ErrInvalidSetting) {
			t.Errorf("encodeCtrlMeas(%s, %s, %s): unexpected error %v", test.t, test.p, test.m, err)
		}
	}
}

func TestString(t *testing.T) {
	for o, want := range map[Oversampling]string{
		Skip: "Skip", O1x: "O1x", O2x: "O2x", O4x: "O4x", O8x: "O8x", O16x: "O16x", 9: "Oversampling(9)",
	} {
		if got := o.String(); got != want {
			t.Errorf("%q != %q", got, want)
		}
	}
	for m, want := range map[Mode]string{Sleep: "Sleep", Forced: "Forced", Normal: "Normal", 5: "Mode(5)"} {
		if got := m.String(); got != want {
			t.Errorf("%q != %q", got, want)
		}
	}
}
