// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// adxl355_fifo captures FIFO batches and writes them as a plot.
package main

import (
	"flag"
	"log"

	"github.com/GermanBionicSystems/accelerometer/internal/app"
	"github.com/GermanBionicSystems/accelerometer/internal/config"
)

func main() {
	configPath := flag.String("config", "./adxl355.yaml", "path to configuration file")
	n := flag.Int("n", 5, "number of FIFO drains")
	out := flag.String("o", "fifo.png", "output image, .png or .jpg")
	flag.Parse()

	log.Println("starting adxl355 FIFO capture")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunFIFOCapture(*n, *out); err != nil {
		log.Fatalf("fatal: %v", err)
	}
	log.Printf("wrote %s", *out)
}
