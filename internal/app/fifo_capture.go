// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package app

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GermanBionicSystems/accelerometer/adxl355"
	"github.com/GermanBionicSystems/accelerometer/internal/config"
	"github.com/GermanBionicSystems/accelerometer/internal/sensor"
	"github.com/GermanBionicSystems/accelerometer/plot"
	"go.uber.org/multierr"
)

// RunFIFOCapture drains the FIFO n times, one FIFO interval apart, and plots
// the concatenated samples to out. The extension of out selects PNG or JPEG.
func RunFIFOCapture(n int, out string) error {
	cfg := config.Get()
	if cfg == nil {
		return errors.New("configuration not loaded")
	}
	if n <= 0 {
		return fmt.Errorf("need at least one drain, got %d", n)
	}
	f, err := formatFromPath(out)
	if err != nil {
		return err
	}
	s, err := sensor.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	samples, err := captureFIFO(s, n, func() { time.Sleep(cfg.FIFOInterval()) })
	if err != nil {
		return err
	}
	log.Printf("captured %d samples in %d drains", len(samples), n)
	return writePlot(out, samples, f)
}

// captureFIFO drains src n times, calling wait before each drain.
func captureFIFO(src Source, n int, wait func()) ([]adxl355.Sample, error) {
	var all []adxl355.Sample
	for i := 0; i < n; i++ {
		wait()
		batch, err := src.DrainFIFO()
		if err != nil {
			return nil, fmt.Errorf("drain %d: %w", i+1, err)
		}
		all = append(all, batch...)
	}
	return all, nil
}

func formatFromPath(p string) (plot.ImageFormat, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(p)), ".")
	if ext == "" {
		return 0, fmt.Errorf("%q has no extension, use .png or .jpg", p)
	}
	return plot.ParseImageFormat(ext)
}

func writePlot(path string, samples []adxl355.Sample, f plot.ImageFormat) (err error) {
	img, err := plot.Render(samples, nil)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, file.Close())
	}()
	return plot.Encode(file, img, f)
}
