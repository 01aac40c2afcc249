// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package adxl355 controls an ADXL355 3-axis accelerometer over SPI.
//
// Acceleration samples are 20-bit two's complement values, left-packed into
// three data registers per axis. The device also exposes a 12-bit
// temperature reading and a 96 entry FIFO holding x/y/z samples.
//
// On creation the device is configured for the requested range, put in
// measurement mode and self-tested. A device that fails its self-test is
// returned disabled: every subsequent read fails with ErrNotReady.
//
// # Datasheet
//
// https://www.analog.com/media/en/technical-documentation/data-sheets/adxl354_adxl355.pdf
package adxl355
