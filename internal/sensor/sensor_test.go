// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sensor

import (
	"errors"
	"testing"

	"github.com/GermanBionicSystems/accelerometer/adxl355"
	"github.com/GermanBionicSystems/accelerometer/internal/config"
	"go.uber.org/multierr"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/spi/spitest"
)

func readOp(reg byte, data ...byte) conntest.IO {
	w := []byte{reg<<1 | adxl355.ReadBit}
	for range data {
		w = append(w, adxl355.DummyByte)
	}
	return conntest.IO{W: w, R: append([]byte{0}, data...)}
}

func writeOp(reg, value byte) conntest.IO {
	return conntest.IO{W: []byte{reg << 1, value}}
}

func axisOp(reg byte, count int32) conntest.IO {
	raw := adxl355.EncodeAxis(count)
	return readOp(reg, raw[:]...)
}

func initOps(x, y, z int32) []conntest.IO {
	return []conntest.IO{
		readOp(adxl355.DevID, adxl355.DeviceIDAD),
		writeOp(adxl355.RangeReg, byte(adxl355.Range2G)),
		writeOp(adxl355.PowerCtl, adxl355.MeasureMode),
		writeOp(adxl355.SelfTestReg, adxl355.SelfTestOn),
		axisOp(adxl355.XData3, x),
		axisOp(adxl355.YData3, y),
		axisOp(adxl355.ZData3, z),
		writeOp(adxl355.SelfTestReg, adxl355.SelfTestOff),
	}
}

func TestAttach(t *testing.T) {
	pb := &spitest.Playback{Playback: conntest.Playback{Ops: initOps(-8000, 50000, -256000), DontPanic: true}}
	d, err := Attach(pb, config.Default())
	if err != nil {
		t.Fatal(err)
	}
	if d.State() != adxl355.Ready {
		t.Fatalf("State() = %s", d.State())
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestAttachSelfTestFailure(t *testing.T) {
	// Y reads 0g, outside its window.
	pb := &spitest.Playback{Playback: conntest.Playback{Ops: initOps(-8000, 0, -256000), DontPanic: true}}
	_, err := Attach(pb, config.Default())
	if err == nil {
		t.Fatal("expected error")
	}
	errs := multierr.Errors(errors.Unwrap(err))
	if len(errs) != 1 {
		t.Fatalf("want one failing axis, got %v", errs)
	}
	var ste *adxl355.SelfTestError
	if !errors.As(errs[0], &ste) || ste.Axis != adxl355.Y {
		t.Fatalf("unexpected error %v", errs[0])
	}
}

func TestAttachBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Range = "3g"
	pb := &spitest.Playback{Playback: conntest.Playback{DontPanic: true}}
	if _, err := Attach(pb, cfg); err == nil {
		t.Fatal("expected error")
	}
}
