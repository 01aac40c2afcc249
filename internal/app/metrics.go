// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package app

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics exported by the producer on /metrics.
type metrics struct {
	acceleration *prometheus.GaugeVec
	temperature  prometheus.Gauge
	fifoSamples  prometheus.Counter
	reads        *prometheus.CounterVec
	readErrors   *prometheus.CounterVec
	publishErrs  prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		acceleration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "adxl355_acceleration_g",
			Help: "Last acceleration reading per axis, in g.",
		}, []string{"axis"}),
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adxl355_temperature_celsius",
			Help: "Last die temperature reading.",
		}),
		fifoSamples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adxl355_fifo_samples_total",
			Help: "Samples drained from the FIFO.",
		}),
		reads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adxl355_reads_total",
			Help: "Successful reads, by kind.",
		}, []string{"kind"}),
		readErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adxl355_read_errors_total",
			Help: "Failed reads, by kind.",
		}, []string{"kind"}),
		publishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adxl355_mqtt_publish_errors_total",
			Help: "MQTT publish failures.",
		}),
	}
	reg.MustRegister(m.acceleration, m.temperature, m.fifoSamples, m.reads, m.readErrors, m.publishErrs)
	return m
}

func (m *metrics) observeReading(r Reading) {
	m.acceleration.With(prometheus.Labels{"axis": "x"}).Set(r.X)
	m.acceleration.With(prometheus.Labels{"axis": "y"}).Set(r.Y)
	m.acceleration.With(prometheus.Labels{"axis": "z"}).Set(r.Z)
	m.temperature.Set(r.Temperature)
	m.reads.With(prometheus.Labels{"kind": "sample"}).Inc()
}

func (m *metrics) observeBatch(b Batch) {
	m.fifoSamples.Add(float64(len(b.Samples)))
	m.reads.With(prometheus.Labels{"kind": "fifo"}).Inc()
}

func (m *metrics) readFailed(kind string) {
	m.readErrors.With(prometheus.Labels{"kind": kind}).Inc()
}
