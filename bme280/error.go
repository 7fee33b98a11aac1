// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

import (
	"errors"
	"fmt"
)

// ErrInvalidSetting is returned by Configure when an oversampling or mode
// value is outside of its enumeration. Nothing is written to the device.
var ErrInvalidSetting = errors.New("bme280: invalid sampling setting")

var errAlreadySensing = errors.New("bme280: SenseContinuous already running")

// TransportError is returned when the underlying bus transaction fails. Err
// is the bus implementation's own error, reachable with errors.Is and
// errors.As.
type TransportError struct {
	// Op is "read" or "write".
	Op string
	// Reg is the register the transaction addressed.
	Reg byte
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("bme280: %s register 0x%02X: %v", e.Op, e.Reg, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
