// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package plot

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"net/textproto"
	"strconv"
)

// randomBoundary generates a MIME multipart boundary compatible with RFC 2046
// (section 5.1.1).
func randomBoundary() string {
	var buf [30]byte
	if _, err := io.ReadFull(rand.Reader, buf[:]); err != nil {
		panic(err)
	}
	return fmt.Sprintf("%x", buf[:])
}

// frameWriter writes an endless multipart/x-mixed-replace body.
//
// mime/multipart.Writer only writes the closing boundary of a part when the
// next one starts, so a client would always be one frame late.
type frameWriter struct {
	w        io.Writer
	boundary string
	started  bool
}

func newFrameWriter(w io.Writer) *frameWriter {
	return &frameWriter{w: w, boundary: randomBoundary()}
}

// writeFrame writes header, which gets a Content-Length, then body and the
// closing boundary.
func (f *frameWriter) writeFrame(header textproto.MIMEHeader, body []byte) error {
	header.Set("Content-Length", strconv.Itoa(len(body)))
	var buf bytes.Buffer
	if !f.started {
		fmt.Fprintf(&buf, "--%s\r\n", f.boundary)
		f.started = true
	}
	for name, values := range header {
		for _, v := range values {
			fmt.Fprintf(&buf, "%s: %s\r\n", name, v)
		}
	}
	buf.WriteString("\r\n")
	buf.Write(body)
	fmt.Fprintf(&buf, "\r\n--%s\r\n", f.boundary)
	_, err := buf.WriteTo(f.w)
	return err
}
