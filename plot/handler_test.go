// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package plot

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/GermanBionicSystems/accelerometer/adxl355"
)

var testOpts = Options{Width: 160, Height: 120, FontSize: 8}

func newSink(t *testing.T) *Sink {
	s, err := NewSink(&testOpts)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestServeHTTP(t *testing.T) {
	s := newSink(t)
	if err := s.Update([]adxl355.Sample{{X: 0.1}, {Y: -0.2}, {Z: 1}}); err != nil {
		t.Fatal(err)
	}
	if s.Batches() != 1 {
		t.Fatalf("Batches() = %d", s.Batches())
	}
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	for _, tc := range []struct {
		target   string
		mimeType string
		decode   func(io.Reader) (image.Image, error)
	}{
		{"/", "image/png", png.Decode},
		{"/?format=png", "image/png", png.Decode},
		{"/?format=jpeg", "image/jpeg", jpeg.Decode},
	} {
		resp, err := srv.Client().Get(srv.URL + tc.target)
		if err != nil {
			t.Fatal(err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: status %d", tc.target, resp.StatusCode)
		}
		if got := resp.Header.Get("Content-Type"); got != tc.mimeType {
			t.Errorf("%s: Content-Type %q, want %q", tc.target, got, tc.mimeType)
		}
		img, err := tc.decode(bytes.NewReader(body))
		if err != nil {
			t.Fatalf("%s: %v", tc.target, err)
		}
		if got := img.Bounds().Size(); got != (image.Point{testOpts.Width, testOpts.Height}) {
			t.Errorf("%s: size %v", tc.target, got)
		}
	}
}

func TestRequestStatus(t *testing.T) {
	s := newSink(t)
	mux := http.NewServeMux()
	mux.Handle("/fifo.png", s)
	mux.HandleFunc("/fifo.mjpeg", s.Stream)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	for _, tc := range []struct {
		method     string
		target     string
		wantStatus int
	}{
		{http.MethodGet, "/fifo.png?format=", http.StatusOK},
		{http.MethodGet, "/fifo.png?format=bmp", http.StatusBadRequest},
		{http.MethodPost, "/fifo.png", http.StatusMethodNotAllowed},
		{http.MethodGet, "/fifo.mjpeg?format=gif", http.StatusBadRequest},
		{http.MethodPut, "/fifo.mjpeg", http.StatusMethodNotAllowed},
	} {
		req, err := http.NewRequest(tc.method, srv.URL+tc.target, nil)
		if err != nil {
			t.Fatal(err)
		}
		resp, err := srv.Client().Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != tc.wantStatus {
			t.Errorf("%s %s returned status %d, want %d", tc.method, tc.target, resp.StatusCode, tc.wantStatus)
		}
	}
}

func TestStream(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	t.Cleanup(cancel)
	s := newSink(t)
	srv := httptest.NewServer(http.HandlerFunc(s.Stream))
	t.Cleanup(srv.Close)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/?format=jpeg", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		t.Fatal(err)
	}
	if mediaType != "multipart/x-mixed-replace" {
		t.Fatalf("Content-Type is %q", mediaType)
	}
	mr := multipart.NewReader(resp.Body, params["boundary"])

	readFrame := func() {
		t.Helper()
		part, err := mr.NextPart()
		if err != nil {
			t.Fatal(err)
		}
		if got := part.Header.Get("Content-Type"); got != "image/jpeg" {
			t.Fatalf("part Content-Type %q", got)
		}
		if _, err := jpeg.Decode(part); err != nil {
			t.Fatal(err)
		}
	}

	// Initial plot, then one frame per update.
	readFrame()
	if err := s.Update([]adxl355.Sample{{X: 1}, {X: -1}}); err != nil {
		t.Fatal(err)
	}
	readFrame()

	if err := s.Halt(); err != nil {
		t.Fatal(err)
	}
	if _, err := mr.NextPart(); err == nil {
		t.Fatal("stream should end after Halt")
	}
}

var boundaryRe = regexp.MustCompile(`^[a-f0-9]{60}$`)

func TestRandomBoundary(t *testing.T) {
	for i := 0; i < 100; i++ {
		if got := randomBoundary(); !boundaryRe.MatchString(got) {
			t.Errorf("Boundary must match the expression %q: %s", boundaryRe.String(), got)
		}
	}
}
