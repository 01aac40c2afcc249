// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// adxl355_console prints ADXL355 readings on the terminal.
package main

import (
	"flag"
	"log"

	"github.com/GermanBionicSystems/accelerometer/internal/app"
	"github.com/GermanBionicSystems/accelerometer/internal/config"
)

func main() {
	configPath := flag.String("config", "./adxl355.yaml", "path to configuration file")
	bars := flag.Bool("bars", false, "draw readings as color bars")
	flag.Parse()

	log.Println("starting adxl355 console")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunConsole(*bars); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
