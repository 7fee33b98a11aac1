// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

const (
	// AddressLow is the I²C address with SDO tied to GND.
	AddressLow uint16 = 0x76
	// AddressHigh is the I²C address with SDO tied to VDDIO.
	AddressHigh uint16 = 0x77

	// ChipID is the value of the id register for a BME280.
	ChipID byte = 0x60
)

// Status is the content of the status register.
//
// Both flags are true while the corresponding bit is set, as in the
// datasheet. Some firmware drivers report them inverted, with true meaning
// the bit is clear.
type Status struct {
	// Measuring is set while a conversion is running.
	Measuring bool
	// Updating is set while NVM data is copied to image registers, at power
	// on and after a reset.
	Updating bool
}

// Dev is a handle to an initialized BME280.
//
// Pressure and Humidity depend on the t_fine value computed by the last call
// to Temperature.
type Dev struct {
	d   *i2c.Dev
	cal calibration

	mu       sync.Mutex
	tFine    int32
	ctrlMeas byte
	stop     chan struct{}
	wg       sync.WaitGroup
}

// NewI2CLow returns a Dev for the sensor at AddressLow. The id register is
// read once as a bus sanity check before the calibration is loaded.
func NewI2CLow(b i2c.Bus) (*Dev, error) {
	d := &Dev{d: &i2c.Dev{Bus: b, Addr: AddressLow}}
	if _, err := readU8(d.d, regID); err != nil {
		return nil, errors.Join(errors.New("bme280: could not read id"), err)
	}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

// NewI2CHigh returns a Dev for the sensor at AddressHigh. Unlike NewI2CLow it
// goes straight to loading the calibration.
func NewI2CHigh(b i2c.Bus) (*Dev, error) {
	d := &Dev{d: &i2c.Dev{Bus: b, Addr: AddressHigh}}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) init() error {
	c, err := loadCalibration(d.d)
	if err != nil {
		return errors.Join(errors.New("bme280: could not load calibration"), err)
	}
	d.cal = c
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("bme280{%s}", d.d)
}

// ID returns the content of the id register, uninterpreted. A BME280 reports
// ChipID.
func (d *Dev) ID() (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return readU8(d.d, regID)
}

// Reset triggers a soft reset. The device runs its power on sequence; wait
// for Status().Updating to clear before using it again.
func (d *Dev) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return writeReg(d.d, regReset, resetValue)
}

// Status reads the status register.
func (d *Dev) Status() (Status, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := readU8(d.d, regStatus)
	if err != nil {
		return Status{}, err
	}
	return Status{Measuring: v&statusMeasuring != 0, Updating: v&statusUpdating != 0}, nil
}

// Configure sets the oversampling of each channel and the power mode.
//
// ctrl_hum only takes effect after ctrl_meas is written, so both registers
// are always written, in that order.
func (d *Dev) Configure(humidity, temperature, pressure Oversampling, mode Mode) error {
	hum, err := encodeCtrlHum(humidity)
	if err != nil {
		return err
	}
	meas, err := encodeCtrlMeas(temperature, pressure, mode)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := writeReg(d.d, regCtrlHum, hum); err != nil {
		return err
	}
	if err := writeReg(d.d, regCtrlMeas, meas); err != nil {
		return err
	}
	d.ctrlMeas = meas
	return nil
}

// Temperature reads and compensates the temperature. It also updates the
// t_fine value used by Pressure and Humidity. A skipped channel returns 0
// and leaves t_fine untouched.
func (d *Dev) Temperature() (Temperature, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, _, err := d.temperature()
	return t, err
}

// Pressure reads and compensates the pressure. A skipped channel returns 0.
func (d *Dev) Pressure() (Pressure, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, _, err := d.pressure()
	return p, err
}

// Humidity reads and compensates the humidity. A skipped channel returns 0.
func (d *Dev) Humidity() (Humidity, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	h, _, err := d.humidity()
	return h, err
}

// Read returns temperature, pressure and humidity, in that order.
//
// When the temperature channel is skipped there is no t_fine for this
// conversion; pressure and humidity are not read and the Reading is all 0.
func (d *Dev) Read() (Reading, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var r Reading
	var ok bool
	var err error
	if r.Temperature, ok, err = d.temperature(); err != nil || !ok {
		return Reading{}, err
	}
	if r.Pressure, _, err = d.pressure(); err != nil {
		return Reading{}, err
	}
	if r.Humidity, _, err = d.humidity(); err != nil {
		return Reading{}, err
	}
	return r, nil
}

// Sense implements physic.SenseEnv. Skipped channels leave their field to 0.
// A skipped temperature leaves all three fields to 0.
func (d *Dev) Sense(e *physic.Env) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	e.Temperature = 0
	e.Pressure = 0
	e.Humidity = 0

	t, ok, err := d.temperature()
	if err != nil || !ok {
		return err
	}
	e.Temperature = t.Physic()
	p, ok, err := d.pressure()
	if err != nil {
		return err
	}
	if ok {
		e.Pressure = p.Physic()
	}
	h, ok, err := d.humidity()
	if err != nil {
		return err
	}
	if ok {
		e.Humidity = h.Physic()
	}
	return nil
}

// SenseContinuous implements physic.SenseEnv. The sensor should be
// configured in Normal mode with a conversion time shorter than interval.
// Call Halt to stop.
//
// A failed read is logged and ends the loop; the channel is then closed.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return nil, errAlreadySensing
	}
	d.stop = make(chan struct{})
	sensing := make(chan physic.Env)
	d.wg.Add(1)
	go func(stop chan struct{}) {
		defer d.wg.Done()
		defer close(sensing)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				var e physic.Env
				if err := d.Sense(&e); err != nil {
					log.Printf("bme280: SenseContinuous stopped: %v", err)
					d.mu.Lock()
					if d.stop == stop {
						d.stop = nil
					}
					d.mu.Unlock()
					return
				}
				select {
				case sensing <- e:
				case <-stop:
					return
				}
			}
		}
	}(d.stop)
	return sensing, nil
}

// Precision implements physic.SenseEnv.
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = 10 * physic.MilliKelvin
	e.Pressure = 15625 * physic.MicroPascal / 4
	e.Humidity = 97 * physic.TenthMicroRH
}

// Halt stops a SenseContinuous loop and puts the sensor to sleep, keeping
// the oversampling settings. Implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	if d.stop != nil {
		close(d.stop)
		d.stop = nil
		d.mu.Unlock()
		d.wg.Wait()
		d.mu.Lock()
	}
	defer d.mu.Unlock()
	d.ctrlMeas &^= modeMask
	return writeReg(d.d, regCtrlMeas, d.ctrlMeas|modeBits[Sleep])
}

// temperature must be called with d.mu held. ok is false for a skipped
// channel.
func (d *Dev) temperature() (Temperature, bool, error) {
	raw, err := readRaw20(d.d, regTemperature)
	if err != nil || raw == skipped20 {
		return 0, false, err
	}
	t, tFine := d.cal.compensateTemp(raw)
	d.tFine = tFine
	return Temperature(t), true, nil
}

// pressure must be called with d.mu held.
func (d *Dev) pressure() (Pressure, bool, error) {
	raw, err := readRaw20(d.d, regPressure)
	if err != nil || raw == skipped20 {
		return 0, false, err
	}
	return Pressure(d.cal.compensatePressure(raw, d.tFine)), true, nil
}

// humidity must be called with d.mu held.
func (d *Dev) humidity() (Humidity, bool, error) {
	raw, err := readRaw16(d.d, regHumidity)
	if err != nil || raw == skipped16 {
		return 0, false, err
	}
	return Humidity(d.cal.compensateHumidity(raw, d.tFine)), true, nil
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
