// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"testing"
	"time"

	"github.com/GermanBionicSystems/envsense/bme280"
	zmq "github.com/go-zeromq/zmq4"
	"github.com/google/go-cmp/cmp"
)

func TestNewPublisher(t *testing.T) {
	for _, tc := range []struct {
		name      string
		backend   string
		endpoint  string
		url       string
		want      bool
		expectErr bool
	}{
		{name: "none", backend: "none"},
		{name: "unknown", backend: "mqtt", expectErr: true},
		{name: "zmq", backend: "zmq", endpoint: "tcp://127.0.0.1:0", want: true},
		{name: "zmq bad endpoint", backend: "zmq", endpoint: "bogus://nowhere", expectErr: true},
		// Nothing listens on port 1.
		{name: "nats unreachable", backend: "nats", url: "nats://127.0.0.1:1", expectErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadConfig("")
			if err != nil {
				t.Fatal(err)
			}
			cfg.Publish.Backend = tc.backend
			if tc.endpoint != "" {
				cfg.Publish.ZMQ.Endpoint = tc.endpoint
			}
			if tc.url != "" {
				cfg.Publish.NATS.URL = tc.url
			}
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			p, err := NewPublisher(ctx, cfg)
			if tc.expectErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if p != nil {
					t.Fatalf("unexpected publisher %T", p)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if (p != nil) != tc.want {
				t.Fatalf("publisher %v, want %t", p, tc.want)
			}
			if p != nil {
				if err := p.Close(); err != nil {
					t.Fatal(err)
				}
			}
		})
	}
}

func TestZMQPublisher(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pub, err := newZMQPublisher(ctx, "tcp://127.0.0.1:0", "bme280")
	if err != nil {
		t.Fatal(err)
	}
	defer pub.Close()

	sub := zmq.NewSub(ctx)
	defer sub.Close()
	if err := sub.Dial("tcp://" + pub.sock.Addr().String()); err != nil {
		t.Fatal(err)
	}
	if err := sub.SetOption(zmq.OptionSubscribe, "bme280"); err != nil {
		t.Fatal(err)
	}

	payload := encodePayload(time.Unix(1, 0), bme280.Reading{Temperature: 2508, Pressure: 25767233, Humidity: 39969})
	received := make(chan zmq.Msg, 1)
	go func() {
		msg, err := sub.Recv()
		if err == nil {
			received <- msg
		}
	}()

	// PUB drops messages until the subscription has propagated.
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case msg := <-received:
			if diff := cmp.Diff(msg.Frames, [][]byte{[]byte("bme280"), payload}); diff != "" {
				t.Fatalf("message mismatch (-got +want):\n%s", diff)
			}
			return
		case <-tick.C:
			if err := pub.Publish(payload); err != nil {
				t.Fatal(err)
			}
		case <-ctx.Done():
			t.Fatal("no message received")
		}
	}
}
