// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"strings"
)

// ImageFormat selects the encoding of a plot, over HTTP or in a file.
type ImageFormat int

const (
	PNG ImageFormat = iota
	JPEG

	DefaultFormat = PNG
)

var formatNames = map[string]ImageFormat{
	"png":  PNG,
	"jpg":  JPEG,
	"jpeg": JPEG,
}

func (f ImageFormat) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	}
	return fmt.Sprint(int(f))
}

func (f ImageFormat) mimeType() string {
	switch f {
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	}
	return "application/octet-stream"
}

// ParseImageFormat accepts "png", "jpg" or "jpeg", as found in a "format"
// URL parameter or a file extension.
func ParseImageFormat(name string) (ImageFormat, error) {
	if f, ok := formatNames[strings.ToLower(name)]; ok {
		return f, nil
	}
	return DefaultFormat, fmt.Errorf("plot: unknown image format %q, want png or jpeg", name)
}
