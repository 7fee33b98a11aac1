// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"

	zmq "github.com/go-zeromq/zmq4"
)

// zmqPublisher binds a PUB socket. Each message has two frames, the topic
// then the payload, so subscribers can filter on the topic.
type zmqPublisher struct {
	sock  zmq.Socket
	topic []byte
}

func newZMQPublisher(ctx context.Context, endpoint, topic string) (*zmqPublisher, error) {
	sock := zmq.NewPub(ctx)
	if err := sock.Listen(endpoint); err != nil {
		_ = sock.Close()
		return nil, err
	}
	return &zmqPublisher{sock: sock, topic: []byte(topic)}, nil
}

func (z *zmqPublisher) Publish(payload []byte) error {
	return z.sock.Send(zmq.NewMsgFrom(z.topic, payload))
}

func (z *zmqPublisher) Close() error {
	return z.sock.Close()
}
