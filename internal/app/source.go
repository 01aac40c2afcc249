// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package app holds the loops behind the adxl355 commands.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/GermanBionicSystems/accelerometer/adxl355"
)

// Source is the part of the device the tools read from. *adxl355.Dev
// implements it.
type Source interface {
	ReadAcceleration() (adxl355.Sample, error)
	ReadTemperature() (float64, error)
	DrainFIFO() ([]adxl355.Sample, error)
}

var _ Source = (*adxl355.Dev)(nil)

// Reading is one polled acceleration and temperature reading.
type Reading struct {
	Time        time.Time `json:"time"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Z           float64   `json:"z"`
	Temperature float64   `json:"temperature_c"`
}

// Sample returns the acceleration part of r.
func (r Reading) Sample() adxl355.Sample {
	return adxl355.Sample{X: r.X, Y: r.Y, Z: r.Z}
}

func (r Reading) String() string {
	return fmt.Sprintf("X: %+.5fg  Y: %+.5fg  Z: %+.5fg  TEMP: %.2f°C", r.X, r.Y, r.Z, r.Temperature)
}

// Batch is the content of one FIFO drain.
type Batch struct {
	Time    time.Time        `json:"time"`
	Samples []adxl355.Sample `json:"samples"`
}

// read takes one Reading from src.
func read(src Source, now time.Time) (Reading, error) {
	s, err := src.ReadAcceleration()
	if err != nil {
		return Reading{}, fmt.Errorf("acceleration: %w", err)
	}
	t, err := src.ReadTemperature()
	if err != nil {
		return Reading{}, fmt.Errorf("temperature: %w", err)
	}
	return Reading{Time: now, X: s.X, Y: s.Y, Z: s.Z, Temperature: t}, nil
}

// tick calls fn on every tick until ctx is done. An error from fn ends the
// loop.
func tick(ctx context.Context, interval time.Duration, fn func(time.Time) error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			if err := fn(t); err != nil {
				return err
			}
		}
	}
}
