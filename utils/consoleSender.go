package utils

import (
	"context"
	"log"
)

// ConsoleSender is the diagnostic sink used when no real channel is available or a
// real channel fails. It writes the message to the process log.
type ConsoleSender struct {
	Logger *log.Logger
}

func NewConsoleSender() *ConsoleSender {
	return &ConsoleSender{Logger: log.Default()}
}

func (s *ConsoleSender) Send(_ context.Context, to string, msg Message) error {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("[CONSOLE] To: %s | Subject: %s | %s", to, msg.Subject, msg.Body)
	return nil
}
