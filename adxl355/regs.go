// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl355

// Register addresses.
const (
	DevID = 0x00 // Analog Devices ID, 0xAD

	FIFOEntries = 0x05 // Number of valid entries in the FIFO
	Temp2       = 0x06 // Temperature, bits 11:8
	Temp1       = 0x07 // Temperature, bits 7:0

	XData3 = 0x08 // X-axis data, bits 19:12
	XData2 = 0x09 // X-axis data, bits 11:4
	XData1 = 0x0A // X-axis data, bits 3:0
	YData3 = 0x0B
	YData2 = 0x0C
	YData1 = 0x0D
	ZData3 = 0x0E
	ZData2 = 0x0F
	ZData1 = 0x10

	FIFOData = 0x11 // FIFO read port

	RangeReg    = 0x2C // I2C speed, interrupt polarity and range
	PowerCtl    = 0x2D // Standby, temperature and data ready control
	SelfTestReg = 0x2E // Self-test force enable
)

// Transfer framing and register values.
const (
	ReadBit   = 0x01 // Low bit of the command byte for a read.
	WriteBit  = 0x00 // Low bit of the command byte for a write.
	DummyByte = 0xAA // Filler clocked out while reading.

	// MeasureMode leaves standby with the temperature sensor and data ready
	// pin off: accelerometer only.
	MeasureMode = 0x06

	SelfTestOn  = 0x03 // ST1 | ST2
	SelfTestOff = 0x00

	// DeviceIDAD is the value of the DevID register.
	DeviceIDAD = 0xAD

	// FIFOMaxEntries is the FIFO depth, in axis entries.
	FIFOMaxEntries = 96
)

// readCommand returns the command byte that reads reg.
func readCommand(reg byte) byte {
	return reg<<1 | ReadBit
}

// writeCommand returns the command byte that writes reg.
func writeCommand(reg byte) byte {
	return reg<<1 | WriteBit
}
