// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bargraph

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/accelerometer/adxl355"
	"github.com/google/go-cmp/cmp"
)

func newDev(t *testing.T, buf *bytes.Buffer) *Dev {
	d, err := New(&Opts{Width: 4, Scale: 2, W: buf})
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// row returns the colors of one axis bar.
func row(d *Dev, axis int) []color.NRGBA {
	var out []color.NRGBA
	for i := axis * 2 * d.width; i < (axis+1)*2*d.width; i++ {
		out = append(out, color.NRGBA{d.pixels[3*i], d.pixels[3*i+1], d.pixels[3*i+2], 255})
	}
	return out
}

func TestShow(t *testing.T) {
	var buf bytes.Buffer
	d := newDev(t, &buf)
	if err := d.Show(adxl355.Sample{X: -1, Y: 0, Z: 3}); err != nil {
		t.Fatal(err)
	}
	B, N, P := Background, Negative, Positive
	want := [][]color.NRGBA{
		{B, B, N, N, B, B, B, B},
		{B, B, B, B, B, B, B, B},
		// Clamped to the full width.
		{B, B, B, B, P, P, P, P},
	}
	for axis := range want {
		if diff := cmp.Diff(want[axis], row(d, axis)); diff != "" {
			t.Errorf("axis %d (-want +got):\n%s", axis, diff)
		}
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\r\033[0m") {
		t.Fatalf("line should start with a carriage return: %q", out)
	}
	for _, s := range []string{"X ", "Y ", "Z ", "-1.00000g", "+0.00000g", "+3.00000g"} {
		if !strings.Contains(out, s) {
			t.Errorf("%q missing from %q", s, out)
		}
	}
}

func TestCells(t *testing.T) {
	var buf bytes.Buffer
	d := newDev(t, &buf)
	data := []struct {
		v    float64
		want int
	}{
		{0, 0},
		{0.2, 0},
		{0.3, 1},
		{-1, 2},
		{2, 4},
		{-100, 4},
	}
	for _, line := range data {
		if got := d.cells(line.v); got != line.want {
			t.Errorf("cells(%g) = %d, want %d", line.v, got, line.want)
		}
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(&Opts{Width: 0, Scale: 1}); err == nil {
		t.Fatal("expected error")
	}
	if _, err := New(&Opts{Width: 1, Scale: 0}); err == nil {
		t.Fatal("expected error")
	}
}

func TestDrawer(t *testing.T) {
	var buf bytes.Buffer
	d := newDev(t, &buf)
	if b := d.Bounds(); b != image.Rect(0, 0, 24, 1) {
		t.Fatalf("Bounds() = %v", b)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 24, 1))
	img.Set(3, 0, Positive)
	if err := d.Draw(d.Bounds(), img, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if got := row(d, 0)[3]; got != Positive {
		t.Fatalf("pixel 3 = %v", got)
	}
	if _, err := d.Write([]byte{1, 2}); err == nil {
		t.Fatal("expected error")
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "\n\033[0m") {
		t.Fatalf("Halt should reset the terminal: %q", buf.String())
	}
	if s := d.String(); s != "BarGraph{8 cells, ±2g}" {
		t.Fatalf("String() = %q", s)
	}
}
