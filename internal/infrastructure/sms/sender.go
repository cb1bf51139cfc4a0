// Package sms delivers one-time codes to technicians' phones.
package sms

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender writes outbound messages to the log instead of a gateway. It
// stands in for a real SMS provider in development and demo environments.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendSMS(ctx context.Context, to, message string) error {
	s.log.Info().
		Str("to", to).
		Str("message", message).
		Msg("sms dispatched")
	return nil
}
