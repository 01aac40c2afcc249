// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// adxl355_producer publishes ADXL355 readings to MQTT and serves them over
// HTTP.
package main

import (
	"flag"
	"log"

	"github.com/GermanBionicSystems/accelerometer/internal/app"
	"github.com/GermanBionicSystems/accelerometer/internal/config"
)

func main() {
	configPath := flag.String("config", "./adxl355.yaml", "path to configuration file")
	flag.Parse()

	log.Println("starting adxl355 producer (ADXL355 → MQTT, HTTP)")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunProducer(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
