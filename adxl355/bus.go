// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl355

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// SPI settings used to connect the port.
var (
	SpiFrequency = 10 * physic.MegaHertz
	SpiMode      = spi.Mode0
	SpiBits      = 8
)

// Bus is the register level transport used by Dev.
//
// Each call is a complete transfer; Dev never issues a call before the
// previous one returned.
type Bus interface {
	// WriteRegister writes value to reg.
	WriteRegister(reg, value byte) error
	// ReadRegister reads n bytes starting at reg. The device auto increments
	// the address for bursts.
	ReadRegister(reg byte, n int) ([]byte, error)
}

// ErrShortRead is returned when a Bus returns fewer bytes than requested.
var ErrShortRead = errors.New("adxl355: short register read")

// BusError is returned when a transfer fails.
type BusError struct {
	Op  string // "read" or "write"
	Reg byte
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("adxl355: %s register %#02x: %v", e.Op, e.Reg, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

// spiBus implements Bus on a 4-wire SPI connection. The first byte of each
// transfer is the shifted register address with the read/write bit.
type spiBus struct {
	c spi.Conn
}

// NewSPIBus connects p with the device's clock and mode and returns a Bus.
func NewSPIBus(p spi.Port) (Bus, error) {
	c, err := p.Connect(SpiFrequency, SpiMode, SpiBits)
	if err != nil {
		return nil, fmt.Errorf("adxl355: connect: %w", err)
	}
	return &spiBus{c: c}, nil
}

func (b *spiBus) WriteRegister(reg, value byte) error {
	if err := b.c.Tx([]byte{writeCommand(reg), value}, nil); err != nil {
		return &BusError{Op: "write", Reg: reg, Err: err}
	}
	return nil
}

func (b *spiBus) ReadRegister(reg byte, n int) ([]byte, error) {
	// The byte clocked in while the command goes out is meaningless.
	tx := make([]byte, n+1)
	tx[0] = readCommand(reg)
	for i := 1; i < len(tx); i++ {
		tx[i] = DummyByte
	}
	rx := make([]byte, len(tx))
	if err := b.c.Tx(tx, rx); err != nil {
		return nil, &BusError{Op: "read", Reg: reg, Err: err}
	}
	return rx[1:], nil
}

func (b *spiBus) String() string {
	return b.c.String()
}
