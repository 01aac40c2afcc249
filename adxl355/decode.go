// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl355

import (
	"errors"
	"fmt"
	"strings"
)

// Range is the measurement range, as written to the range register.
type Range byte

const (
	Range2G Range = 0x01 // ±2.048g
	Range4G Range = 0x02 // ±4.096g
	Range8G Range = 0x03 // ±8.192g
)

// InvalidRangeError is returned when a Range is not one of the supported
// values.
type InvalidRangeError struct {
	Range Range
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("adxl355: invalid range %#02x", byte(e.Range))
}

// ErrShortSample is returned when fewer than 3 bytes are passed to
// DecodeAxis.
var ErrShortSample = errors.New("adxl355: axis sample needs 3 bytes")

// divisor returns the number of LSB per g.
func (r Range) divisor() (float64, error) {
	switch r {
	case Range2G:
		return 256000, nil
	case Range4G:
		return 128000, nil
	case Range8G:
		return 64000, nil
	default:
		return 0, &InvalidRangeError{Range: r}
	}
}

func (r Range) String() string {
	switch r {
	case Range2G:
		return "2g"
	case Range4G:
		return "4g"
	case Range8G:
		return "8g"
	default:
		return fmt.Sprintf("Range(%#02x)", byte(r))
	}
}

// ParseRange parses "2g", "4g" or "8g".
func ParseRange(s string) (Range, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "2g":
		return Range2G, nil
	case "4g":
		return Range4G, nil
	case "8g":
		return Range8G, nil
	}
	return 0, fmt.Errorf("adxl355: unknown range %q, want 2g, 4g or 8g", s)
}

const (
	signBit    = 0x80000  // bit 19 of the 20-bit sample
	sampleSpan = 0x100000 // 1 << 20

	// Temperature calibration: 1852 LSB at 25°C and -9.05 LSB/°C.
	tempInterceptLSB = 1852
	tempInterceptC   = 25.0
	tempSlope        = -9.05
)

// rawAxis reassembles the 20-bit signed count from the DATA3, DATA2 and DATA1
// bytes. The low nibble of DATA1 is not part of the sample.
func rawAxis(raw []byte) int32 {
	v := int32(raw[0])<<12 | int32(raw[1])<<4 | int32(raw[2])>>4
	if v&signBit != 0 {
		v -= sampleSpan
	}
	return v
}

// DecodeAxis converts the three data bytes of one axis to g.
func DecodeAxis(raw []byte, r Range) (float64, error) {
	if len(raw) < 3 {
		return 0, ErrShortSample
	}
	d, err := r.divisor()
	if err != nil {
		return 0, err
	}
	return float64(rawAxis(raw)) / d, nil
}

// EncodeAxis is the inverse of the reassembly done by DecodeAxis. Only the
// low 20 bits of count are kept.
func EncodeAxis(count int32) [3]byte {
	v := uint32(count) & (sampleSpan - 1)
	return [3]byte{byte(v >> 12), byte(v >> 4), byte(v << 4)}
}

// DecodeTemperature converts the TEMP2 and TEMP1 register values to °C.
func DecodeTemperature(high, low byte) float64 {
	raw := int(high&0x0F)<<8 | int(low)
	return float64(raw-tempInterceptLSB)/tempSlope + tempInterceptC
}
