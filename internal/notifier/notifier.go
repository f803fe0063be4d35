// Package notifier delivers one-time password emails
package notifier

import (
	"context"
	"fmt"
)

// OTP email texts
const (
	OTPSubject = "Your OTP Code"
	otpBody    = "Your OTP is: %s"
)

// Notifier delivers a plain text message to an email address
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// OTPBody renders the body of an OTP email
func OTPBody(code string) string {
	return fmt.Sprintf(otpBody, code)
}
