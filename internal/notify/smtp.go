package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strconv"
	"time"
)

// SMTPNotifier sends plain-text email. Every call is bounded by the configured
// timeout (or the context deadline, whichever is sooner) so one slow server
// cannot stall the rest of a cycle.
type SMTPNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
	timeout  time.Duration
}

func NewSMTPNotifier(host string, port int, username, password, from string, timeout time.Duration) *SMTPNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SMTPNotifier{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		timeout:  timeout,
	}
}

func (n *SMTPNotifier) Send(ctx context.Context, recipient, subject, body string) bool {
	if n.host == "" {
		log.Printf("no SMTP host configured; email to %s suppressed", recipient)
		return false
	}

	deadline := time.Now().Add(n.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := n.deliver(recipient, subject, body, deadline); err != nil {
		log.Printf("SMTP send failed for %s: %v", recipient, err)
		return false
	}

	log.Printf("email notification sent to %s", recipient)
	return true
}

func (n *SMTPNotifier) deliver(recipient, subject, body string, deadline time.Time) error {
	addr := net.JoinHostPort(n.host, strconv.Itoa(n.port))
	conn, err := net.DialTimeout("tcp", addr, time.Until(deadline))
	if err != nil {
		return err
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return err
	}

	client, err := smtp.NewClient(conn, n.host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: n.host}); err != nil {
			return err
		}
	}

	if n.username != "" {
		auth := smtp.PlainAuth("", n.username, n.password, n.host)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(n.from); err != nil {
		return err
	}
	if err := client.Rcpt(recipient); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	message := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", n.from, recipient, subject, body)
	if _, err := w.Write([]byte(message)); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}
