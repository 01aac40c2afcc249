// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl355

// FIFOCount returns the number of axis entries held in the FIFO. Three
// entries make one x/y/z sample.
func (d *Dev) FIFOCount() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.ready(); err != nil {
		return 0, err
	}
	return d.fifoCount()
}

// DrainFIFO reads every complete x/y/z sample from the FIFO, oldest first.
//
// An incomplete trailing sample is left in the FIFO. An empty FIFO returns an
// empty batch. No partial batch is returned on error.
func (d *Dev) DrainFIFO() ([]Sample, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.ready(); err != nil {
		return nil, err
	}
	n, err := d.fifoCount()
	if err != nil {
		return nil, err
	}
	usable := n - n%3
	if usable == 0 {
		return []Sample{}, nil
	}
	buf, err := d.b.ReadRegister(FIFOData, 3*usable)
	if err != nil {
		return nil, err
	}
	return decodeFIFO(buf, d.rng)
}

func (d *Dev) fifoCount() (int, error) {
	n, err := d.readRegister(FIFOEntries)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// decodeFIFO splits buf in 3 byte entries and groups them in x/y/z order.
// Bytes past the last complete sample are ignored.
func decodeFIFO(buf []byte, r Range) ([]Sample, error) {
	out := make([]Sample, 0, len(buf)/9)
	for i := 0; i+9 <= len(buf); i += 9 {
		var v [3]float64
		for j := range v {
			var err error
			if v[j], err = DecodeAxis(buf[i+3*j:i+3*j+3], r); err != nil {
				return nil, err
			}
		}
		out = append(out, Sample{X: v[0], Y: v[1], Z: v[2]})
	}
	return out, nil
}
