// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/GermanBionicSystems/accelerometer/adxl355"
	"github.com/GermanBionicSystems/accelerometer/internal/config"
	"github.com/GermanBionicSystems/accelerometer/internal/sensor"
	"github.com/GermanBionicSystems/accelerometer/plot"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Publisher sends a retained message on topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

type mqttPublisher struct {
	c mqtt.Client
}

func (p mqttPublisher) Publish(topic string, payload []byte) error {
	if token := p.c.Publish(topic, 0, true, payload); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

// message is the websocket envelope.
type message struct {
	Type string      `json:"type"` // "reading" or "fifo"
	Data interface{} `json:"data"`
}

// producer fans readings out to MQTT, metrics, websocket clients and the
// FIFO plot.
type producer struct {
	src     Source
	pub     Publisher
	topics  config.MQTT
	metrics *metrics
	hub     *hub
	sink    *plot.Sink
}

// sample publishes one polled reading.
func (p *producer) sample(now time.Time) error {
	r, err := read(p.src, now)
	if err != nil {
		p.metrics.readFailed("sample")
		return err
	}
	p.metrics.observeReading(r)
	if err := p.publishJSON(p.topics.TopicAcceleration, struct {
		Time time.Time `json:"time"`
		adxl355.Sample
	}{r.Time, r.Sample()}); err != nil {
		return err
	}
	if err := p.publishJSON(p.topics.TopicTemperature, struct {
		Time        time.Time `json:"time"`
		Temperature float64   `json:"temperature_c"`
	}{r.Time, r.Temperature}); err != nil {
		return err
	}
	return p.hub.Broadcast(message{Type: "reading", Data: r})
}

// fifo drains the FIFO and publishes the batch. Empty batches are skipped.
func (p *producer) fifo(now time.Time) error {
	samples, err := p.src.DrainFIFO()
	if err != nil {
		p.metrics.readFailed("fifo")
		return fmt.Errorf("fifo: %w", err)
	}
	b := Batch{Time: now, Samples: samples}
	p.metrics.observeBatch(b)
	if len(samples) == 0 {
		return nil
	}
	if err := p.sink.Update(samples); err != nil {
		return err
	}
	if err := p.publishJSON(p.topics.TopicFIFO, b); err != nil {
		return err
	}
	return p.hub.Broadcast(message{Type: "fifo", Data: b})
}

func (p *producer) publishJSON(topic string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := p.pub.Publish(topic, payload); err != nil {
		p.metrics.publishErrs.Inc()
		return fmt.Errorf("MQTT publish %s: %w", topic, err)
	}
	return nil
}

// run polls samples and drains the FIFO until ctx is done. Errors are
// logged; a disabled device ends the loop.
func (p *producer) run(ctx context.Context, sampleEvery, fifoEvery time.Duration) error {
	sampleT := time.NewTicker(sampleEvery)
	defer sampleT.Stop()
	fifoT := time.NewTicker(fifoEvery)
	defer fifoT.Stop()
	for {
		var err error
		select {
		case <-ctx.Done():
			return nil
		case t := <-sampleT.C:
			err = p.sample(t)
		case t := <-fifoT.C:
			err = p.fifo(t)
		}
		if errors.Is(err, adxl355.ErrNotReady) {
			return err
		}
		if err != nil {
			log.Printf("producer: %v", err)
		}
	}
}

// handler returns the HTTP endpoints of the producer.
func (p *producer) handler(metrics http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", p.hub)
	mux.Handle("/fifo.png", p.sink)
	mux.HandleFunc("/fifo.mjpeg", p.sink.Stream)
	mux.Handle("/metrics", metrics)
	return mux
}

// RunProducer publishes readings to MQTT and serves metrics, a websocket
// stream and the FIFO plot until interrupted.
func RunProducer() error {
	cfg := config.Get()
	if cfg == nil {
		return errors.New("configuration not loaded")
	}
	s, err := sensor.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTT.Broker).
		SetClientID(cfg.MQTT.ClientID)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT connect: %w", token.Error())
	}
	defer client.Disconnect(250)
	log.Printf("connected to MQTT broker %s", cfg.MQTT.Broker)

	sink, err := plot.NewSink(nil)
	if err != nil {
		return err
	}
	p := &producer{
		src:     s,
		pub:     mqttPublisher{c: client},
		topics:  cfg.MQTT,
		metrics: newMetrics(prometheus.DefaultRegisterer),
		hub:     newHub(),
		sink:    sink,
	}

	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: p.handler(promhttp.Handler())}
	go func() {
		log.Printf("serving /ws, /fifo.png, /fifo.mjpeg and /metrics on %s", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server: %v", err)
		}
	}()
	defer func() {
		// Streams and sockets are long lived, end them before the shutdown.
		_ = sink.Halt()
		p.hub.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return p.run(ctx, cfg.SampleInterval(), cfg.FIFOInterval())
}
