package sms

import "context"

// Provider sends a plain text message to a phone number.
type Provider interface {
	SendSMS(ctx context.Context, to, message string) error
}
