// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sensor opens the ADXL355 described by the configuration.
package sensor

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/accelerometer/adxl355"
	"github.com/GermanBionicSystems/accelerometer/internal/config"
	"go.uber.org/multierr"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Sensor is an initialized device and the port it owns.
type Sensor struct {
	*adxl355.Dev
	port spi.PortCloser
}

// Open initializes the host drivers, opens cfg.SPIPort and attaches the
// device on it.
func Open(cfg *config.Config) (*Sensor, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	p, err := spireg.Open(cfg.SPIPort)
	if err != nil {
		return nil, fmt.Errorf("SPI open %q: %w", cfg.SPIPort, err)
	}
	d, err := Attach(p, cfg)
	if err != nil {
		return nil, multierr.Append(err, p.Close())
	}
	return &Sensor{Dev: d, port: p}, nil
}

// Attach initializes the device on p and logs the self-test outcome.
// A device that failed its self-test is an error.
func Attach(p spi.Port, cfg *config.Config) (*adxl355.Dev, error) {
	opts, err := cfg.Opts()
	if err != nil {
		return nil, err
	}
	d, err := adxl355.NewSPI(p, &opts)
	if err != nil {
		return nil, fmt.Errorf("adxl355 init: %w", err)
	}
	if res := d.SelfTestResult(); res != nil {
		for _, a := range res.Axes() {
			status := "ok"
			if !a.Passed {
				status = "FAILED"
			}
			log.Printf("self-test %s: %.5fg in %s: %s", a.Axis, a.Value, a.Window, status)
		}
	}
	if d.State() != adxl355.Ready {
		return nil, fmt.Errorf("adxl355 disabled: %w", d.Err())
	}
	log.Printf("%s on %s", d, p)
	return d, nil
}

// Close stops any continuous sensing and releases the port.
func (s *Sensor) Close() error {
	return multierr.Combine(s.Dev.Halt(), s.port.Close())
}
