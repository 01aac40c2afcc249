// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package accelerometer is a container for the ADXL355 driver and the tools
// built on it.
//
// The driver lives in package adxl355. bargraph and plot render readings on
// a terminal and as images. The commands under cmd/ poll the device, publish
// its readings and capture FIFO batches.
package accelerometer
