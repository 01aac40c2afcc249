// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"image"
	"math"
	"testing"

	"github.com/GermanBionicSystems/accelerometer/adxl355"
)

func TestSpan(t *testing.T) {
	data := []struct {
		samples []adxl355.Sample
		want    float64
	}{
		{nil, minSpan},
		{[]adxl355.Sample{{X: 0.001}}, minSpan},
		{[]adxl355.Sample{{X: 0.5, Y: -1.5, Z: 1}}, 1.5},
		{[]adxl355.Sample{{Z: -1}, {Z: 2}}, 2},
	}
	for i, line := range data {
		if got := span(line.samples); got != line.want {
			t.Errorf("#%d: span() = %g, want %g", i, got, line.want)
		}
	}
}

func TestProject(t *testing.T) {
	const w, h = 200, 180
	data := []struct {
		i, n   int
		v      float64
		wx, wy float64
	}{
		{0, 1, 0, margin, h / 2},
		{0, 3, 1, margin, margin},
		{2, 3, -1, w - margin, h - margin},
		{1, 3, 0.5, w / 2, margin + (h-2*margin)/4},
	}
	for _, line := range data {
		x, y := project(line.i, line.n, line.v, 1, w, h)
		if math.Abs(x-line.wx) > 1e-9 || math.Abs(y-line.wy) > 1e-9 {
			t.Errorf("project(%d, %d, %g) = (%g, %g), want (%g, %g)", line.i, line.n, line.v, x, y, line.wx, line.wy)
		}
	}
}

func TestRender(t *testing.T) {
	for _, n := range []int{0, 1, 32} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			samples := make([]adxl355.Sample, n)
			for i := range samples {
				a := float64(i) / 8
				samples[i] = adxl355.Sample{X: math.Sin(a), Y: math.Cos(a), Z: -1}
			}
			img, err := Render(samples, &Options{Width: 320, Height: 200, FontSize: 10})
			if err != nil {
				t.Fatal(err)
			}
			if got := img.Bounds().Size(); got != (image.Point{320, 200}) {
				t.Fatalf("size = %v", got)
			}
			// The 0g line is drawn across the plot area.
			r, g, b, _ := img.At(160, 100).RGBA()
			if r == 0xffff && g == 0xffff && b == 0xffff {
				t.Fatal("0g line missing")
			}
		})
	}
}

func TestRenderTooSmall(t *testing.T) {
	if _, err := Render(nil, &Options{Width: 80, Height: 200, FontSize: 10}); err == nil {
		t.Fatal("expected error")
	}
}

func TestImageFormat(t *testing.T) {
	for _, tc := range []struct {
		format       ImageFormat
		wantString   string
		wantMimeType string
	}{
		{ImageFormat(-1), "-1", "application/octet-stream"},
		{DefaultFormat, "PNG", "image/png"},
		{JPEG, "JPEG", "image/jpeg"},
	} {
		if got := tc.format.String(); got != tc.wantString {
			t.Errorf("String() returned %q, want %q", got, tc.wantString)
		}
		if got := tc.format.mimeType(); got != tc.wantMimeType {
			t.Errorf("mimeType() returned %q, want %q", got, tc.wantMimeType)
		}
	}
	for in, want := range map[string]ImageFormat{"png": PNG, "jpg": JPEG, "jpeg": JPEG, "JPG": JPEG} {
		if got, err := ParseImageFormat(in); err != nil || got != want {
			t.Errorf("ParseImageFormat(%q) = %s, %v", in, got, err)
		}
	}
	if _, err := ParseImageFormat("bmp"); err == nil {
		t.Fatal("expected error")
	}
}
