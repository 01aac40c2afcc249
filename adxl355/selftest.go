// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl355

import (
	"fmt"

	"go.uber.org/multierr"
)

// Window is an inclusive range of accepted readings, in g.
type Window struct {
	Min float64
	Max float64
}

// Contains reports whether v is within [Min, Max].
func (w Window) Contains(v float64) bool {
	return v >= w.Min && v <= w.Max
}

func (w Window) String() string {
	return fmt.Sprintf("[%.5f, %.5f]", w.Min, w.Max)
}

// SelfTestWindows holds one acceptance window per axis.
type SelfTestWindows struct {
	X Window
	Y Window
	Z Window
}

func (w SelfTestWindows) window(a Axis) Window {
	switch a {
	case Y:
		return w.Y
	case Z:
		return w.Z
	default:
		return w.X
	}
}

// DefaultSelfTestWindows are the windows calibrated for a board lying flat.
// Gravity is part of the Z reading.
var DefaultSelfTestWindows = SelfTestWindows{
	X: Window{Min: -0.04, Max: -0.03},
	Y: Window{Min: 0.19, Max: 0.20},
	Z: Window{Min: -1.02, Max: -0.99},
}

// AxisResult is the self-test outcome of one axis.
type AxisResult struct {
	Axis   Axis
	Value  float64 // g
	Window Window
	Passed bool
}

// SelfTestResult holds the per axis outcome of a self-test.
type SelfTestResult struct {
	X, Y, Z AxisResult
}

// Axes returns the results in X, Y, Z order.
func (r *SelfTestResult) Axes() []AxisResult {
	return []AxisResult{r.X, r.Y, r.Z}
}

// Passed reports whether every axis was within its window.
func (r *SelfTestResult) Passed() bool {
	return r.X.Passed && r.Y.Passed && r.Z.Passed
}

// Err returns one *SelfTestError per failing axis, combined with multierr.
// Use multierr.Errors to list them. It is nil when the self-test passed.
func (r *SelfTestResult) Err() error {
	var err error
	for _, a := range r.Axes() {
		if !a.Passed {
			err = multierr.Append(err, &SelfTestError{Axis: a.Axis, Value: a.Value, Window: a.Window})
		}
	}
	return err
}

// SelfTestError reports an axis outside its self-test window.
type SelfTestError struct {
	Axis   Axis
	Value  float64
	Window Window
}

func (e *SelfTestError) Error() string {
	return fmt.Sprintf("adxl355: self-test %s axis read %.5fg, outside %s", e.Axis, e.Value, e.Window)
}

// evaluate checks each axis independently.
func evaluate(values [3]float64, w SelfTestWindows) *SelfTestResult {
	var res [3]AxisResult
	for i, a := range axes {
		win := w.window(a)
		res[i] = AxisResult{Axis: a, Value: values[i], Window: win, Passed: win.Contains(values[i])}
	}
	return &SelfTestResult{X: res[0], Y: res[1], Z: res[2]}
}

// SelfTest forces the electrostatic self-test, reads the three axes and
// compares them to the configured windows. The device is disabled if an axis
// is out of its window.
func (d *Dev) SelfTest() (*SelfTestResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.ready(); err != nil {
		return nil, err
	}
	res, err := d.runSelfTest()
	if err != nil {
		return nil, err
	}
	d.result = res
	if !res.Passed() {
		d.disable()
	}
	return res, nil
}

// runSelfTest always leaves self-test off, even when a read failed.
func (d *Dev) runSelfTest() (res *SelfTestResult, err error) {
	defer func() {
		if offErr := d.b.WriteRegister(SelfTestReg, SelfTestOff); offErr != nil {
			err = multierr.Append(err, offErr)
			res = nil
		}
	}()
	if err := d.b.WriteRegister(SelfTestReg, SelfTestOn); err != nil {
		return nil, err
	}
	var v [3]float64
	for i, a := range axes {
		if v[i], err = d.readAxis(a); err != nil {
			return nil, err
		}
	}
	return evaluate(v, d.windows), nil
}
