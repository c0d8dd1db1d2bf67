package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	cb "github.com/bookhive/library-service/pkg/circuit_breaker"
)

type Config struct {
	Host     string `envconfig:"SMTP_HOST" default:"localhost"`
	Port     string `envconfig:"SMTP_PORT" default:"587"`
	User     string `envconfig:"SMTP_USER"`
	Password string `envconfig:"SMTP_PASSWORD" json:"-"`
	From     string `envconfig:"SMTP_FROM" default:"library@bookhive.io"`
}

// Mailer sends plain-text mail over SMTP. The relay sits behind a circuit
// breaker so a dead relay fails fast instead of stalling the consumer loop.
type Mailer struct {
	cfg Config
	cb  cb.CircuitBreaker
	log *zap.Logger
}

func New(cfg Config, log *zap.Logger) *Mailer {
	return &Mailer{
		cfg: cfg,
		cb:  cb.New(10, time.Second*30, 0.5, 3),
		log: log.Named("mailer"),
	}
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	msg := buildMessage(m.cfg.From, to, subject, body)
	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}

	err := m.cb.Call(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg)
	})
	if err != nil {
		return errors.Wrapf(err, "send mail to %s", to)
	}
	m.log.Debug("mail sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
