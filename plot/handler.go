// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package plot

import (
	"log"
	"mime"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
)

type client struct {
	refresh   chan struct{}
	terminate chan struct{}
}

func formatFromQuery(values url.Values) (ImageFormat, error) {
	if v := values.Get("format"); v != "" {
		return ParseImageFormat(v)
	}
	return DefaultFormat, nil
}

// ServeHTTP sends the current plot as a single image. Clients can request PNG
// or JPEG using the "format" parameter ("?format=png", "?format=jpeg").
func (s *Sink) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f, ok := s.checkRequest(w, r)
	if !ok {
		return
	}
	b, err := s.encoded(f)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", f.mimeType())
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(b); err != nil {
		log.Printf("plot: writing response failed: %v", err)
	}
}

// Stream sends the current plot then a new frame on every update, until the
// client leaves or Halt is called.
func (s *Sink) Stream(w http.ResponseWriter, r *http.Request) {
	f, ok := s.checkRequest(w, r)
	if !ok {
		return
	}
	fw := newFrameWriter(w)
	w.Header().Set("Content-Type",
		mime.FormatMediaType("multipart/x-mixed-replace", map[string]string{
			"boundary": fw.boundary,
		}))

	c := &client{
		refresh:   make(chan struct{}, 1),
		terminate: make(chan struct{}, 1),
	}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
	}()

	header := make(textproto.MIMEHeader)
	header.Set("Content-Type", f.mimeType())
	header.Set("Content-Transfer-Encoding", "binary")
	for {
		b, err := s.encoded(f)
		if err != nil {
			log.Printf("plot: encoding failed: %v", err)
			return
		}
		// A failed write means the client went away.
		if err := fw.writeFrame(header, b); err != nil {
			return
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
		select {
		case <-c.refresh:
		case <-c.terminate:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (s *Sink) checkRequest(w http.ResponseWriter, r *http.Request) (ImageFormat, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "", http.StatusMethodNotAllowed)
		return 0, false
	}
	f, err := formatFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return f, true
}
