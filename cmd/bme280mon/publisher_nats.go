// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// natsPublisher publishes on a single subject. The client buffers messages
// while reconnecting and retries forever.
type natsPublisher struct {
	conn    *nats.Conn
	subject string
}

func newNATSPublisher(url, subject string) (*natsPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("bme280mon"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Str("url", url).Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, err
	}
	return &natsPublisher{conn: conn, subject: subject}, nil
}

func (n *natsPublisher) Publish(payload []byte) error {
	return n.conn.Publish(n.subject, payload)
}

// Close flushes pending messages for up to a second.
func (n *natsPublisher) Close() error {
	err := n.conn.FlushTimeout(time.Second)
	n.conn.Close()
	return err
}
