package queue

import "errors"

var (
	// ErrClosed is returned when publishing on a closed publisher.
	ErrClosed = errors.New("publisher is closed")
	// ErrDelivery is returned when the broker rejects a message.
	ErrDelivery = errors.New("message delivery failed")
)
