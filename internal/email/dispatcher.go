// Package email delivers OTP codes to users. The auth flow depends only on
// the Dispatcher interface; production wires the SMTP sender, development
// wires the log dispatcher so no mail infrastructure is needed locally.
package email

import (
	"time"

	"go.uber.org/zap"
)

type Dispatcher interface {
	SendOTP(to, code string, expiresAt time.Time) error
}

// LogDispatcher writes the code to the log instead of sending mail.
type LogDispatcher struct {
	logger *zap.Logger
}

func NewLogDispatcher(logger *zap.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) SendOTP(to, code string, expiresAt time.Time) error {
	d.logger.Info("otp issued",
		zap.String("email", to),
		zap.String("code", code),
		zap.Time("expiresAt", expiresAt),
	)
	return nil
}
