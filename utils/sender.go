package utils

import "context"

// Message is what a delivery channel transmits
type Message struct {
	Subject string
	Body    string
}

// Sender delivers a message to an email address or phone number
type Sender interface {
	Send(ctx context.Context, to string, msg Message) error
}

// SenderFunc adapts a function into a Sender
type SenderFunc func(ctx context.Context, to string, msg Message) error

func (f SenderFunc) Send(ctx context.Context, to string, msg Message) error {
	return f(ctx, to, msg)
}
