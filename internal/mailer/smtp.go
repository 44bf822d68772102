// Package mailer sends templated OTP mail over SMTP with implicit TLS.
// Delivery is fire-and-forget from the engine's perspective: one attempt,
// bounded by the caller's context deadline, no retries.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
)

// SMTP is a Mailer backed by an SMTP server on an implicit-TLS port (465).
type SMTP struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTP configures a sender. from defaults to username when empty.
func NewSMTP(host, port, username, password, from string) *SMTP {
	if from == "" {
		from = username
	}
	return &SMTP{host: host, port: port, username: username, password: password, from: from}
}

// Send renders the named template with data and delivers it to the address.
// The context deadline bounds the whole dial-auth-send sequence.
func (s *SMTP) Send(ctx context.Context, to, templateName string, data map[string]string) error {
	subject, body, err := Render(templateName, data)
	if err != nil {
		return err
	}

	msg := []byte(
		fmt.Sprintf("From: %s\r\n", s.from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	dialer := &net.Dialer{}
	rawConn, err := dialer.DialContext(ctx, "tcp", s.host+":"+s.port)
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = rawConn.SetDeadline(deadline)
	}

	conn := tls.Client(rawConn, &tls.Config{ServerName: s.host})
	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		_ = rawConn.Close()
		return err
	}
	defer client.Quit()

	if err := client.Auth(smtp.PlainAuth("", s.username, s.password, s.host)); err != nil {
		return err
	}
	if err := client.Mail(s.from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}
