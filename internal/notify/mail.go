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
)

// MailConfig defines the SMTP relay channel settings.
type MailConfig struct {
	Host     string   `yaml:"host" toml:"host"`
	Port     int      `yaml:"port" toml:"port"`
	Username string   `yaml:"username" toml:"username"`
	Password string   `yaml:"password" toml:"password"`
	From     string   `yaml:"from" toml:"from"`
	To       []string `yaml:"to" toml:"to"`

	// SubjectPrefix is prepended to every subject. Default: "[upswitch]".
	SubjectPrefix string `yaml:"subject_prefix" toml:"subject_prefix"`
}

// GetPort returns the SMTP port with default fallback (587).
func (c *MailConfig) GetPort() int {
	if c.Port <= 0 {
		return 587
	}
	return c.Port
}

// GetSubjectPrefix returns the subject prefix with default fallback.
func (c *MailConfig) GetSubjectPrefix() string {
	if c.SubjectPrefix == "" {
		return "[upswitch]"
	}
	return c.SubjectPrefix
}

// MailChannel delivers messages through an SMTP relay, upgrading to
// STARTTLS when the server offers it.
type MailChannel struct {
	config MailConfig
}

// NewMailChannel creates a MailChannel.
func NewMailChannel(cfg MailConfig) *MailChannel {
	return &MailChannel{config: cfg}
}

// Name returns the channel variant name.
func (m *MailChannel) Name() string {
	return ChannelMail
}

// Send connects, authenticates if credentials are configured, and submits a
// plain-text message to every configured recipient.
func (m *MailChannel) Send(ctx context.Context, subject, body string) error {
	addr := net.JoinHostPort(m.config.Host, strconv.Itoa(m.config.GetPort()))

	dialer := net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(30 * time.Second))
	}

	client, err := smtp.NewClient(conn, m.config.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer func() { _ = client.Close() }()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.config.Host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}

	if m.config.Username != "" {
		auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(m.config.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range m.config.To {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt %s: %w", rcpt, err)
		}
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := wc.Write(m.message(subject, body)); err != nil {
		_ = wc.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("smtp close message: %w", err)
	}
	return client.Quit()
}

// message renders the RFC 5322 envelope.
func (m *MailChannel) message(subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.config.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(m.config.To, ", "))
	fmt.Fprintf(&b, "Subject: %s %s\r\n", m.config.GetSubjectPrefix(), subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}
