package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"gitlab.com/verigate/verigate-backend/internal/domain/valueobject/mails"
	"gitlab.com/verigate/verigate-backend/internal/domain/verification"
)

// Mailer delivers mail over plain SMTP. It speaks STARTTLS when the server
// offers it and authenticates only when credentials are set, which keeps it
// usable against MailHog in local setups.
type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
}

type MailerArgs struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func NewMailer(args MailerArgs) *Mailer {
	return &Mailer{
		host: args.Host,
		port: args.Port,
		user: args.User,
		pass: args.Pass,
		from: args.From,
	}
}

func (m *Mailer) SendMail(ctx context.Context, payload mails.Payload) error {
	return m.send(ctx, payload.To, payload.Subject, payload.Body)
}

func (m *Mailer) SendEmailCode(ctx context.Context, email, code string) error {
	body := fmt.Sprintf(
		"Your verification code is %s.\n\nIt expires in %d minutes.",
		code,
		int(verification.ExpiryWindow.Minutes()),
	)
	return m.send(ctx, email, "Your verification code", body)
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	headers := map[string]string{
		"From":         m.from,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/plain; charset=UTF-8",
	}
	var sb strings.Builder
	for k, v := range headers {
		sb.WriteString(k + ": " + v + "\r\n")
	}
	sb.WriteString("\r\n")
	sb.WriteString(body)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	dialer := &net.Dialer{Timeout: 5 * time.Second}
	if deadline, ok := ctx.Deadline(); ok {
		dialer.Deadline = deadline
	}
	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to dial smtp server: %w", err)
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	defer c.Close()

	if err := c.Hello("localhost"); err != nil {
		return err
	}

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			return err
		}
	}

	if auth != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(auth); err != nil {
				return err
			}
		}
	}

	if err := c.Mail(m.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(sb.String())); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return c.Quit()
}
