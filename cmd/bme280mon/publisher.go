// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"

	"github.com/pkg/errors"
)

// Publisher sends encoded readings to a message bus.
type Publisher interface {
	Publish(payload []byte) error
	Close() error
}

// NewPublisher returns the Publisher selected by cfg.Publish.Backend. It
// returns nil for "none".
func NewPublisher(ctx context.Context, cfg *Config) (Publisher, error) {
	switch cfg.Publish.Backend {
	case "none":
		return nil, nil
	case "zmq":
		p, err := newZMQPublisher(ctx, cfg.Publish.ZMQ.Endpoint, cfg.Publish.ZMQ.Topic)
		if err != nil {
			return nil, errors.Wrap(err, "zmq publisher")
		}
		return p, nil
	case "nats":
		p, err := newNATSPublisher(cfg.Publish.NATS.URL, cfg.Publish.NATS.Subject)
		if err != nil {
			return nil, errors.Wrap(err, "nats publisher")
		}
		return p, nil
	default:
		return nil, errors.Errorf("unknown backend: %s", cfg.Publish.Backend)
	}
}
