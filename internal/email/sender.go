package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"
)

var otpTemplate = template.Must(template.New("otp").Parse(`<html>
<body style="font-family: sans-serif">
  <h2>Your verification code</h2>
  <p>Enter this code to continue:</p>
  <p style="font-size: 28px; letter-spacing: 6px"><strong>{{.Code}}</strong></p>
  <p>The code expires at {{.ExpiresAt}}. If you did not request it, ignore this email.</p>
</body>
</html>`))

// Sender delivers OTP emails over SMTP.
type Sender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSender(host string, port int, username, password, from string) *Sender {
	dialer := gomail.NewDialer(host, port, username, password)
	return &Sender{
		dialer: dialer,
		from:   from,
	}
}

func (s *Sender) SendOTP(to, code string, expiresAt time.Time) error {
	body, err := renderOTPBody(code, expiresAt)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your Gather verification code")
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	return nil
}

func renderOTPBody(code string, expiresAt time.Time) (string, error) {
	buf := new(bytes.Buffer)
	err := otpTemplate.Execute(buf, map[string]string{
		"Code":      code,
		"ExpiresAt": expiresAt.UTC().Format(time.RFC1123),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return buf.String(), nil
}
