package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"DropWatch/pkg/config"
	"DropWatch/pkg/logger"
)

// Mailer delivers the HTML report over SMTP with implicit TLS (port 465
// style, the Gmail app-password setup). STARTTLS is used as a fallback when
// the direct TLS dial is refused.
type Mailer struct {
	host     string
	port     int
	from     string
	to       []string
	password string
	log      *logger.Logger
}

func NewMailer(cfg *config.Config, log *logger.Logger) *Mailer {
	return &Mailer{
		host:     cfg.Email.SMTPHost,
		port:     cfg.Email.SMTPPort,
		from:     cfg.Email.From,
		to:       splitRecipients(cfg.Email.To),
		password: cfg.Email.Password,
		log:      log,
	}
}

func splitRecipients(s string) []string {
	var out []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// Send delivers an HTML message to the configured recipients.
func (m *Mailer) Send(subject, htmlBody string) error {
	if len(m.to) == 0 {
		return fmt.Errorf("no recipients configured")
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(m.to, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.from, m.password, m.host)

	if err := m.sendTLS(addr, auth, msg.String()); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	m.log.Info("report email sent",
		logger.Int("recipients", len(m.to)),
		logger.String("subject", subject))
	return nil
}

func (m *Mailer) sendTLS(addr string, auth smtp.Auth, msg string) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.host})
	if err != nil {
		return m.sendStartTLS(addr, auth, msg)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	return m.transact(client, auth, msg)
}

func (m *Mailer) sendStartTLS(addr string, auth smtp.Auth, msg string) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	return m.transact(client, auth, msg)
}

func (m *Mailer) transact(client *smtp.Client, auth smtp.Auth, msg string) error {
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := client.Mail(m.from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, rcpt := range m.to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt %s: %w", rcpt, err)
		}
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close body: %w", err)
	}
	return client.Quit()
}
