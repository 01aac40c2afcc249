// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package plot

import (
	"image"
	"image/color"
	"image/draw"
	"net/http"
	"sync"

	"github.com/GermanBionicSystems/accelerometer/adxl355"
	"periph.io/x/conn/v3/display"
)

// Sink holds the latest plot and serves it to HTTP clients.
type Sink struct {
	opts Options

	mu       sync.Mutex
	buffer   *image.RGBA
	batches  int
	clients  map[*client]struct{}
	snapshot map[ImageFormat][]byte
}

var _ display.Drawer = (*Sink)(nil)
var _ http.Handler = (*Sink)(nil)

// NewSink returns a Sink showing an empty plot.
func NewSink(o *Options) (*Sink, error) {
	if o == nil {
		o = &DefaultOptions
	}
	s := &Sink{
		opts:     *o,
		buffer:   image.NewRGBA(image.Rect(0, 0, o.Width, o.Height)),
		clients:  map[*client]struct{}{},
		snapshot: map[ImageFormat][]byte{},
	}
	img, err := Render(nil, o)
	if err != nil {
		return nil, err
	}
	draw.Draw(s.buffer, s.buffer.Bounds(), img, image.Point{}, draw.Src)
	return s, nil
}

// String returns the name of the device.
func (s *Sink) String() string {
	return "PlotSink"
}

// Update renders samples and replaces the current plot.
func (s *Sink) Update(samples []adxl355.Sample) error {
	img, err := Render(samples, &s.opts)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.batches++
	s.mu.Unlock()
	return s.Draw(s.Bounds(), img, image.Point{})
}

// Batches returns how many batches were plotted.
func (s *Sink) Batches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batches
}

// Halt implements conn.Resource and terminates all running streams
// asynchronously.
func (s *Sink) Halt() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.terminate <- struct{}{}:
		default:
		}
	}
	return nil
}

// ColorModel implements display.Drawer.
func (s *Sink) ColorModel() color.Model {
	return s.buffer.ColorModel()
}

// Bounds implements display.Drawer.
func (s *Sink) Bounds() image.Rectangle {
	return s.buffer.Bounds()
}

// Draw implements display.Drawer.
func (s *Sink) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	draw.Draw(s.buffer, r, src, sp, draw.Src)
	s.changedLocked()
	return nil
}

func (s *Sink) changedLocked() {
	for f := range s.snapshot {
		delete(s.snapshot, f)
	}
	for c := range s.clients {
		select {
		case c.refresh <- struct{}{}:
		default:
		}
	}
}

// encoded returns the current plot in format f. The returned slice is never
// modified afterward.
func (s *Sink) encoded(f ImageFormat) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.snapshot[f]; ok {
		return b, nil
	}
	b, err := encode(s.buffer, f)
	if err != nil {
		return nil, err
	}
	s.snapshot[f] = b
	return b, nil
}
