// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/GermanBionicSystems/accelerometer/adxl355"
	"gopkg.in/yaml.v3"
)

// Window is an inclusive self-test window in g.
type Window struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// SelfTest holds the per axis self-test windows.
type SelfTest struct {
	X Window `yaml:"x"`
	Y Window `yaml:"y"`
	Z Window `yaml:"z"`
}

// MQTT configures the producer's broker connection and topics.
type MQTT struct {
	Broker            string `yaml:"broker"`
	ClientID          string `yaml:"client_id"`
	TopicAcceleration string `yaml:"topic_acceleration"`
	TopicTemperature  string `yaml:"topic_temperature"`
	TopicFIFO         string `yaml:"topic_fifo"`
}

// HTTP configures the producer's metrics, websocket and plot endpoints.
type HTTP struct {
	Addr string `yaml:"addr"`
}

// Console configures the console tool.
type Console struct {
	Bars  bool    `yaml:"bars"`  // render bars instead of numbers
	Scale float64 `yaml:"scale"` // g at full bar length
	Width int     `yaml:"width"` // bar length in cells, per side
}

// Config holds all application configuration values.
type Config struct {
	// Hardware
	SPIPort          string   `yaml:"spi_port"` // spireg name, "" for the first port
	Range            string   `yaml:"range"`    // 2g, 4g or 8g
	ExpectedDeviceID int      `yaml:"expected_device_id"`
	SelfTest         SelfTest `yaml:"self_test"`

	// Timing
	SampleIntervalMS int `yaml:"sample_interval_ms"`
	FIFOIntervalMS   int `yaml:"fifo_interval_ms"`

	MQTT    MQTT    `yaml:"mqtt"`
	HTTP    HTTP    `yaml:"http"`
	Console Console `yaml:"console"`
}

// Package-level state for the process wide configuration. InitGlobal sets it
// once; Get reads it under the read lock.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Default returns the configuration used for keys missing from the file.
func Default() *Config {
	w := adxl355.DefaultSelfTestWindows
	return &Config{
		Range:            "2g",
		ExpectedDeviceID: adxl355.DeviceIDAD,
		SelfTest: SelfTest{
			X: Window{Min: w.X.Min, Max: w.X.Max},
			Y: Window{Min: w.Y.Min, Max: w.Y.Max},
			Z: Window{Min: w.Z.Min, Max: w.Z.Max},
		},
		SampleIntervalMS: 100,
		FIFOIntervalMS:   1000,
		MQTT: MQTT{
			Broker:            "tcp://localhost:1883",
			ClientID:          "adxl355-producer",
			TopicAcceleration: "adxl355/acceleration",
			TopicTemperature:  "adxl355/temperature",
			TopicFIFO:         "adxl355/fifo",
		},
		HTTP: HTTP{Addr: ":8355"},
		Console: Console{
			Scale: 2,
			Width: 30,
		},
	}
}

// Load reads the YAML configuration file and returns a Config struct.
// Keys missing from the file keep their Default value; unknown keys are an
// error.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()
	return parse(file)
}

func parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks that all fields hold usable values.
func (c *Config) validate() error {
	if _, err := adxl355.ParseRange(c.Range); err != nil {
		return fmt.Errorf("range: %w", err)
	}
	if c.ExpectedDeviceID < 0 || c.ExpectedDeviceID > 0xff {
		return fmt.Errorf("expected_device_id must be 0-255, got %d", c.ExpectedDeviceID)
	}
	for name, w := range map[string]Window{"x": c.SelfTest.X, "y": c.SelfTest.Y, "z": c.SelfTest.Z} {
		if w.Min > w.Max {
			return fmt.Errorf("self_test.%s: min %g is above max %g", name, w.Min, w.Max)
		}
	}
	if c.SampleIntervalMS <= 0 {
		return fmt.Errorf("sample_interval_ms must be positive, got %d", c.SampleIntervalMS)
	}
	if c.FIFOIntervalMS <= 0 {
		return fmt.Errorf("fifo_interval_ms must be positive, got %d", c.FIFOIntervalMS)
	}
	if c.Console.Scale <= 0 {
		return fmt.Errorf("console.scale must be positive, got %g", c.Console.Scale)
	}
	if c.Console.Width <= 0 {
		return fmt.Errorf("console.width must be positive, got %d", c.Console.Width)
	}
	return nil
}

// Opts returns the driver options described by the configuration.
func (c *Config) Opts() (adxl355.Opts, error) {
	r, err := adxl355.ParseRange(c.Range)
	if err != nil {
		return adxl355.Opts{}, err
	}
	return adxl355.Opts{
		Range:            r,
		ExpectedDeviceID: byte(c.ExpectedDeviceID),
		SelfTest: adxl355.SelfTestWindows{
			X: adxl355.Window{Min: c.SelfTest.X.Min, Max: c.SelfTest.X.Max},
			Y: adxl355.Window{Min: c.SelfTest.Y.Min, Max: c.SelfTest.Y.Max},
			Z: adxl355.Window{Min: c.SelfTest.Z.Min, Max: c.SelfTest.Z.Max},
		},
	}, nil
}

// SampleInterval returns the polling period of single readings.
func (c *Config) SampleInterval() time.Duration {
	return time.Duration(c.SampleIntervalMS) * time.Millisecond
}

// FIFOInterval returns the period between FIFO drains.
func (c *Config) FIFOInterval() time.Duration {
	return time.Duration(c.FIFOIntervalMS) * time.Millisecond
}

// InitGlobal initializes the global configuration from file.
// Only the first call loads the file.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance, or nil before InitGlobal.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
