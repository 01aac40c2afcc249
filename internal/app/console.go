// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/GermanBionicSystems/accelerometer/adxl355"
	"github.com/GermanBionicSystems/accelerometer/bargraph"
	"github.com/GermanBionicSystems/accelerometer/internal/config"
	"github.com/GermanBionicSystems/accelerometer/internal/sensor"
)

// RunConsole prints a reading every sample interval until interrupted. With
// bars set, readings are drawn as color bars instead.
func RunConsole(bars bool) error {
	cfg := config.Get()
	if cfg == nil {
		return errors.New("configuration not loaded")
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

	var show func(Reading) error
	if bars || cfg.Console.Bars {
		g, err := bargraph.New(&bargraph.Opts{Width: cfg.Console.Width, Scale: cfg.Console.Scale})
		if err != nil {
			return err
		}
		defer g.Halt()
		show = func(r Reading) error { return g.Show(r.Sample()) }
	} else {
		show = lineWriter(os.Stdout)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	log.Printf("polling every %s, Ctrl-C to stop", cfg.SampleInterval())
	return pollConsole(ctx, s, cfg.SampleInterval(), show)
}

// pollConsole reads src every interval and hands the reading to show. Read
// errors are logged and the loop goes on.
func pollConsole(ctx context.Context, src Source, interval time.Duration, show func(Reading) error) error {
	return tick(ctx, interval, func(t time.Time) error {
		r, err := read(src, t)
		if err != nil {
			if errors.Is(err, adxl355.ErrNotReady) {
				return err
			}
			log.Printf("read error: %v", err)
			return nil
		}
		return show(r)
	})
}

func lineWriter(w io.Writer) func(Reading) error {
	return func(r Reading) error {
		_, err := fmt.Fprintln(w, r)
		return err
	}
}
