// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"encoding/binary"
	"time"

	"github.com/GermanBionicSystems/envsense/bme280"
)

// payloadSize is the length of a published message.
//
//	offset size  content
//	0      8     unix time, nanoseconds
//	8      4     temperature, int32, 0.01 °C
//	12     4     pressure, uint32, Q24.8 Pa
//	16     4     humidity, uint32, Q22.10 %rH
//
// All fields are big endian.
const payloadSize = 20

func encodePayload(ts time.Time, r bme280.Reading) []byte {
	b := make([]byte, payloadSize)
	binary.BigEndian.PutUint64(b[0:], uint64(ts.UnixNano()))
	binary.BigEndian.PutUint32(b[8:], uint32(r.Temperature))
	binary.BigEndian.PutUint32(b[12:], uint32(r.Pressure))
	binary.BigEndian.PutUint32(b[16:], uint32(r.Humidity))
	return b
}
