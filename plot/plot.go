// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package plot draws batches of acceleration samples and serves the latest
// plot over HTTP.
//
// A Sink is a display.Drawer holding the last plot. Clients get it either as
// a single image or as an "MJPEG" stream
// (https://en.wikipedia.org/wiki/Motion_JPEG) updated on every batch. PNG is
// used by default since it suits line drawings better; JPEG can be selected
// with the "format" URL parameter.
package plot

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/GermanBionicSystems/accelerometer/adxl355"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Options for plots.
type Options struct {
	// Width and height of the image in pixels.
	Width, Height int
	// FontSize is the label size in points.
	FontSize float64
}

// DefaultOptions is used when nil Options are passed.
var DefaultOptions = Options{Width: 640, Height: 360, FontSize: 12}

// Trace colors, in X, Y, Z order.
var Colors = [3]color.NRGBA{
	{R: 220, G: 50, B: 47, A: 255},
	{R: 38, G: 139, B: 210, A: 255},
	{R: 133, G: 153, B: 0, A: 255},
}

const (
	margin = 40.0
	// minSpan keeps a quiet batch from being blown up to full height.
	minSpan = 0.01
)

var (
	fontOnce sync.Once
	fontErr  error
	goFont   *truetype.Font
)

func face(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		goFont, fontErr = truetype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fontErr
	}
	return truetype.NewFace(goFont, &truetype.Options{Size: size}), nil
}

// span returns the largest magnitude in the batch, in g.
func span(samples []adxl355.Sample) float64 {
	m := minSpan
	for _, s := range samples {
		m = math.Max(m, math.Max(math.Abs(s.X), math.Max(math.Abs(s.Y), math.Abs(s.Z))))
	}
	return m
}

// project maps sample i and value v in [-s, s] to image coordinates.
func project(i, n int, v, s float64, w, h int) (float64, float64) {
	plotW := float64(w) - 2*margin
	plotH := float64(h) - 2*margin
	x := margin
	if n > 1 {
		x += plotW * float64(i) / float64(n-1)
	}
	y := margin + plotH/2 - v/s*plotH/2
	return x, y
}

// Render draws the three axes of samples, oldest on the left.
func Render(samples []adxl355.Sample, o *Options) (image.Image, error) {
	if o == nil {
		o = &DefaultOptions
	}
	if o.Width <= 2*margin || o.Height <= 2*margin {
		return nil, fmt.Errorf("plot: %dx%d is too small", o.Width, o.Height)
	}
	ff, err := face(o.FontSize)
	if err != nil {
		return nil, fmt.Errorf("plot: font: %w", err)
	}
	dc := gg.NewContext(o.Width, o.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(ff)

	s := span(samples)
	w, h := float64(o.Width), float64(o.Height)

	// Frame and 0g line.
	dc.SetRGB(0.6, 0.6, 0.6)
	dc.SetLineWidth(1)
	dc.DrawRectangle(margin, margin, w-2*margin, h-2*margin)
	dc.Stroke()
	dc.DrawLine(margin, h/2, w-margin, h/2)
	dc.Stroke()

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(fmt.Sprintf("%+.3fg", s), margin-4, margin, 1, 0.5)
	dc.DrawStringAnchored("0g", margin-4, h/2, 1, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%+.3fg", -s), margin-4, h-margin, 1, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%d samples", len(samples)), w-margin, h-margin/2, 1, 0.5)

	dc.SetLineWidth(1.5)
	for a := range Colors {
		dc.SetColor(Colors[a])
		for i, smp := range samples {
			x, y := project(i, len(samples), value(smp, a), s, o.Width, o.Height)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		if len(samples) == 1 {
			x, y := project(0, 1, value(samples[0], a), s, o.Width, o.Height)
			dc.DrawCircle(x, y, 2)
			dc.Fill()
		} else {
			dc.Stroke()
		}
		dc.DrawStringAnchored(adxl355.Axis(a).String(), margin+float64(a)*20, margin/2, 0, 0.5)
	}
	return dc.Image(), nil
}

func value(s adxl355.Sample, axis int) float64 {
	switch axis {
	case 1:
		return s.Y
	case 2:
		return s.Z
	default:
		return s.X
	}
}
