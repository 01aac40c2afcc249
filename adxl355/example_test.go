// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl355_test

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/accelerometer/adxl355"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use spireg SPI port registry to find the first available SPI bus.
	p, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	d, err := adxl355.NewSPI(p, &adxl355.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	if err := d.Err(); err != nil {
		log.Fatalf("self-test failed: %v", err)
	}

	a, err := d.ReadAcceleration()
	if err != nil {
		log.Fatal(err)
	}
	t, err := d.ReadTemperature()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s %.2f°C\n", a, t)
}

func ExampleDev_DrainFIFO() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	p, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	d, err := adxl355.NewSPI(p, &adxl355.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	batch, err := d.DrainFIFO()
	if err != nil {
		log.Fatal(err)
	}
	for _, s := range batch {
		fmt.Println(s)
	}
}
