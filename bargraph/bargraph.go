// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bargraph shows acceleration samples as signed color bars on a
// terminal using ANSI color codes.
//
// Each axis gets a bar centered on 0g: negative readings grow to the left,
// positive readings to the right.
package bargraph

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/GermanBionicSystems/accelerometer/adxl355"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

// Colors of the bar cells.
var (
	Negative   = color.NRGBA{R: 255, G: 60, B: 60, A: 255}
	Positive   = color.NRGBA{R: 60, G: 220, B: 60, A: 255}
	Background = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
)

// Opts represents the options available for this display.
type Opts struct {
	Width   int     // Cells on each side of 0g.
	Scale   float64 // Reading in g drawn as a full bar.
	Palette *ansi256.Palette
	// W receives the output. Defaults to a color capable stdout.
	W io.Writer

	_ struct{}
}

// Dev renders samples on a single terminal line.
type Dev struct {
	w       io.Writer
	width   int
	scale   float64
	palette ansi256.Palette

	last   adxl355.Sample
	pixels []byte // RGB, 2*width cells per axis
	buf    bytes.Buffer
}

// New returns a Dev that writes to opts.W.
func New(opts *Opts) (*Dev, error) {
	if opts.Width <= 0 {
		return nil, errors.New("bargraph: width must be positive")
	}
	if opts.Scale <= 0 {
		return nil, errors.New("bargraph: scale must be positive")
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	d := &Dev{
		w:       w,
		width:   opts.Width,
		scale:   opts.Scale,
		palette: *p,
		pixels:  make([]byte, 3*3*2*opts.Width),
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("BarGraph{%d cells, ±%gg}", 2*d.width, d.scale)
}

// Halt implements conn.Resource.
//
// It moves to the next line and resets the colors.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Show draws s and writes the line.
func (d *Dev) Show(s adxl355.Sample) error {
	d.last = s
	for i, v := range []float64{s.X, s.Y, s.Z} {
		d.fill(i, v)
	}
	_, err := d.refresh()
	return err
}

// cells returns how many cells v covers, clamped to the bar width.
func (d *Dev) cells(v float64) int {
	n := int(math.Round(math.Abs(v) / d.scale * float64(d.width)))
	if n > d.width {
		n = d.width
	}
	return n
}

func (d *Dev) fill(axis int, v float64) {
	start := axis * 2 * d.width
	center := start + d.width
	n := d.cells(v)
	for i := start; i < start+2*d.width; i++ {
		c := Background
		switch {
		case v < 0 && i >= center-n && i < center:
			c = Negative
		case v > 0 && i >= center && i < center+n:
			c = Positive
		}
		d.pixels[3*i] = c.R
		d.pixels[3*i+1] = c.G
		d.pixels[3*i+2] = c.B
	}
}

// Write accepts a stream of raw RGB pixels and writes it to the console.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels)%3 != 0 {
		return 0, errors.New("bargraph: invalid RGB stream length")
	}
	copy(d.pixels, pixels)
	return d.refresh()
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rectangle{Max: image.Point{X: len(d.pixels) / 3, Y: 1}}
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.Bounds())
	srcR := src.Bounds()
	srcR.Min = srcR.Min.Add(sp)
	if dX := r.Dx(); dX < srcR.Dx() {
		srcR.Max.X = srcR.Min.X + dX
	}
	deltaX3 := 3 * (r.Min.X - srcR.Min.X)
	for sX := srcR.Min.X; sX < srcR.Max.X; sX++ {
		r16, g16, b16, _ := src.At(sX, srcR.Min.Y).RGBA()
		dX3 := 3*sX + deltaX3
		d.pixels[dX3] = byte(r16 >> 8)
		d.pixels[dX3+1] = byte(g16 >> 8)
		d.pixels[dX3+2] = byte(b16 >> 8)
	}
	_, err := d.refresh()
	return err
}

func (d *Dev) refresh() (int, error) {
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	values := [3]float64{d.last.X, d.last.Y, d.last.Z}
	cells := 2 * d.width
	for axis, v := range values {
		_, _ = fmt.Fprintf(&d.buf, "%s ", adxl355.Axis(axis))
		for i := axis * cells; i < (axis+1)*cells; i++ {
			c := color.NRGBA{d.pixels[3*i], d.pixels[3*i+1], d.pixels[3*i+2], 255}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = fmt.Fprintf(&d.buf, "\033[0m %+8.5fg ", v)
	}
	_, err := d.buf.WriteTo(d.w)
	return len(d.pixels), err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
