// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestLoadCalibration(t *testing.T) {
	for _, test := range []struct {
		name      string
		ops       []i2ctest.IO
		want      calibration
		expectErr bool
	}{
		{
			name: "datasheet",
			ops:  calibrationOps(AddressLow),
			want: refCalibration,
		},
		{
			name: "nibble packing",
			ops: func() []i2ctest.IO {
				ops := calibrationOps(AddressLow)
				// 0xE4=0xAB, 0xE5=0xCD, 0xE6=0xEF.
				ops[15].R = []byte{0xAB, 0xCD}
				ops[16].R = []byte{0xCD, 0xEF}
				return ops
			}(),
			want: func() calibration {
				c := refCalibration
				c.h4 = 0xABD
				c.h5 = 0xCEF
				return c
			}(),
		},
		{
			name: "signed",
			ops: func() []i2ctest.IO {
				ops := calibrationOps(AddressLow)
				ops[1].R = []byte{0xFF, 0xFF}
				ops[13].R = []byte{0x00, 0x80}
				ops[17].R = []byte{0x80}
				return ops
			}(),
			want: func() calibration {
				c := refCalibration
				c.t2 = -1
				c.h2 = -32768
				c.h6 = -128
				return c
			}(),
		},
		{
			name:      "short read",
			ops:       calibrationOps(AddressLow)[:17],
			expectErr: true,
		},
		{
			name:      "no bytes received",
			ops:       []i2ctest.IO{{Addr: AddressLow, W: []byte{regDigT1}, R: []byte{}}},
			expectErr: true,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			b := i2ctest.Playback{Ops: test.ops, DontPanic: true}
			defer b.Close()

			got, err := loadCalibration(&i2c.Dev{Bus: &b, Addr: AddressLow})
			if test.expectErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if got != (calibration{}) {
					t.Fatalf("partial calibration returned: %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(got, test.want, cmp.AllowUnexported(calibration{})); diff != "" {
				t.Fatalf("calibration mismatch (-got +want):\n%s", diff)
			}
		})
	}
}
