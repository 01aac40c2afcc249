// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl355

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Axis selects one of the three acceleration axes.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

var axes = [...]Axis{X, Y, Z}

func (a Axis) String() string {
	switch a {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// register returns the address of the most significant data byte.
func (a Axis) register() (byte, error) {
	switch a {
	case X:
		return XData3, nil
	case Y:
		return YData3, nil
	case Z:
		return ZData3, nil
	default:
		return 0, fmt.Errorf("adxl355: invalid axis %d", int(a))
	}
}

// State is the lifecycle state of a Dev.
type State int

const (
	Uninitialized State = iota
	// Ready is a configured device that passed its self-test.
	Ready
	// Disabled is a device that failed its self-test. Its bus is released.
	Disabled
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Ready:
		return "Ready"
	case Disabled:
		return "Disabled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrNotReady is returned by every read on a device that is not Ready.
var ErrNotReady = errors.New("adxl355: device not ready")

// Sample is one acceleration reading on the three axes, in g.
type Sample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (s Sample) String() string {
	return fmt.Sprintf("X:%.5fg Y:%.5fg Z:%.5fg", s.X, s.Y, s.Z)
}

// Opts holds the configuration applied by New.
type Opts struct {
	Range Range // Measurement range.
	// ExpectedDeviceID is compared to the DevID register. 0 skips the check.
	ExpectedDeviceID byte
	// SelfTest holds the accepted readings, in g, while self-test is forced.
	SelfTest SelfTestWindows
}

var DefaultOpts = Opts{
	Range:            Range2G,
	ExpectedDeviceID: DeviceIDAD,
	SelfTest:         DefaultSelfTestWindows,
}

// Dev is a driver for the ADXL355 accelerometer.
//
// All methods are serialized on the device: a burst read is never split by
// another register access.
type Dev struct {
	mu       sync.Mutex
	b        Bus
	rng      Range
	windows  SelfTestWindows
	state    State
	result   *SelfTestResult
	shutdown chan struct{}
}

// NewSPI connects p at 10MHz in mode 0 and returns a device initialized as
// described in New.
func NewSPI(p spi.Port, o *Opts) (*Dev, error) {
	b, err := NewSPIBus(p)
	if err != nil {
		return nil, err
	}
	return New(b, o)
}

// New configures the device on b and runs its self-test.
//
// The range is written, measurement mode is enabled and the self-test is run.
// Transfer errors are returned. A failing self-test is not an error: the
// device is returned Disabled and SelfTestResult tells which axes failed.
func New(b Bus, o *Opts) (*Dev, error) {
	if o == nil {
		o = &DefaultOpts
	}
	if _, err := o.Range.divisor(); err != nil {
		return nil, err
	}
	d := &Dev{b: b, rng: o.Range, windows: o.SelfTest}
	if o.ExpectedDeviceID != 0 {
		id, err := d.readRegister(DevID)
		if err != nil {
			return nil, err
		}
		if id != o.ExpectedDeviceID {
			return nil, fmt.Errorf("adxl355: wrong device connected, got id %#02x, want %#02x", id, o.ExpectedDeviceID)
		}
	}
	if err := b.WriteRegister(RangeReg, byte(o.Range)); err != nil {
		return nil, err
	}
	if err := b.WriteRegister(PowerCtl, MeasureMode); err != nil {
		return nil, err
	}
	res, err := d.runSelfTest()
	if err != nil {
		return nil, err
	}
	d.result = res
	if res.Passed() {
		d.state = Ready
	} else {
		d.disable()
	}
	return d, nil
}

func (d *Dev) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fmt.Sprintf("ADXL355{Range:%s State:%s}", d.rng, d.state)
}

// Range returns the configured measurement range.
func (d *Dev) Range() Range {
	return d.rng
}

// State returns the lifecycle state.
func (d *Dev) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// SelfTestResult returns the outcome of the last self-test.
func (d *Dev) SelfTestResult() *SelfTestResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.result
}

// Err returns why the device is disabled, or nil.
func (d *Dev) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Disabled || d.result == nil {
		return nil
	}
	return d.result.Err()
}

// ReadAxis reads one axis in g.
func (d *Dev) ReadAxis(a Axis) (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.ready(); err != nil {
		return 0, err
	}
	return d.readAxis(a)
}

// ReadAcceleration reads the three axes in g, one burst per axis.
func (d *Dev) ReadAcceleration() (Sample, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.ready(); err != nil {
		return Sample{}, err
	}
	var v [3]float64
	for i, a := range axes {
		var err error
		if v[i], err = d.readAxis(a); err != nil {
			return Sample{}, err
		}
	}
	return Sample{X: v[0], Y: v[1], Z: v[2]}, nil
}

// ReadTemperature reads the temperature in °C.
func (d *Dev) ReadTemperature() (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.ready(); err != nil {
		return 0, err
	}
	return d.readTemperature()
}

// DeviceID reads the DevID register. It is 0xAD on a genuine part.
func (d *Dev) DeviceID() (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.ready(); err != nil {
		return 0, err
	}
	return d.readRegister(DevID)
}

// Sense reads the device temperature. Implements physic.SenseEnv.
func (d *Dev) Sense(env *physic.Env) error {
	env.Temperature = 0
	env.Pressure = 0
	env.Humidity = 0
	c, err := d.ReadTemperature()
	if err != nil {
		return err
	}
	env.Temperature = physic.ZeroCelsius + physic.Temperature(c*float64(physic.Celsius))
	return nil
}

// SenseContinuous reads the temperature every interval until Halt is called.
// Implements physic.SenseEnv.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.ready(); err != nil {
		return nil, err
	}
	if d.shutdown != nil {
		return nil, errors.New("adxl355: SenseContinuous already running")
	}
	d.shutdown = make(chan struct{})
	ch := make(chan physic.Env, 16)
	go func(shutdown <-chan struct{}) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		defer close(ch)
		for {
			select {
			case <-shutdown:
				return
			case <-ticker.C:
				env := physic.Env{}
				if err := d.Sense(&env); err != nil {
					continue
				}
				select {
				case ch <- env:
				case <-shutdown:
					return
				}
			}
		}
	}(d.shutdown)
	return ch, nil
}

// Precision returns the temperature resolution. Implements physic.SenseEnv.
func (d *Dev) Precision(env *physic.Env) {
	env.Temperature = physic.Temperature(math.Round(float64(physic.Celsius) / -tempSlope))
	env.Pressure = 0
	env.Humidity = 0
}

// Halt stops a SenseContinuous loop. The device stays in measurement mode.
// Implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.shutdown != nil {
		close(d.shutdown)
		d.shutdown = nil
	}
	return nil
}

func (d *Dev) ready() error {
	if d.state != Ready || d.b == nil {
		return ErrNotReady
	}
	return nil
}

// disable releases the bus. There is no way back to Ready.
func (d *Dev) disable() {
	d.b = nil
	d.state = Disabled
}

func (d *Dev) readRegister(reg byte) (byte, error) {
	rx, err := d.b.ReadRegister(reg, 1)
	if err != nil {
		return 0, err
	}
	if len(rx) < 1 {
		return 0, ErrShortRead
	}
	return rx[0], nil
}

func (d *Dev) readAxis(a Axis) (float64, error) {
	reg, err := a.register()
	if err != nil {
		return 0, err
	}
	raw, err := d.b.ReadRegister(reg, 3)
	if err != nil {
		return 0, err
	}
	return DecodeAxis(raw, d.rng)
}

func (d *Dev) readTemperature() (float64, error) {
	high, err := d.readRegister(Temp2)
	if err != nil {
		return 0, err
	}
	low, err := d.readRegister(Temp1)
	if err != nil {
		return 0, err
	}
	return DecodeTemperature(high, low), nil
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
