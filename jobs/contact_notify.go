package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/hibiken/asynq"
)

// SMTPConfig holds the outbound mail settings.
type SMTPConfig struct {
	Addr     string
	From     string
	Username string
	Password string
	Inbox    string
}

// ContactNotifyJob mails new storefront inquiries to the staff inbox.
type ContactNotifyJob struct {
	Logger *slog.Logger
	SMTP   SMTPConfig
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewContactNotifyJob initialises the contact notification handler.
func NewContactNotifyJob(logger *slog.Logger, cfg SMTPConfig) *ContactNotifyJob {
	return &ContactNotifyJob{Logger: logger, SMTP: cfg, send: smtp.SendMail}
}

// Handle executes the notification.
func (j *ContactNotifyJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("contact notify: handler not configured")
	}
	var payload ContactNotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if j.SMTP.Inbox == "" {
		j.Logger.Warn("contact notify: no inbox configured, dropping",
			slog.Int64("inquiry_id", payload.InquiryID))
		return nil
	}

	msg := buildInquiryMail(j.SMTP.From, j.SMTP.Inbox, payload)

	var auth smtp.Auth
	if j.SMTP.Username != "" {
		host := j.SMTP.Addr
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", j.SMTP.Username, j.SMTP.Password, host)
	}

	if err := j.send(j.SMTP.Addr, auth, j.SMTP.From, []string{j.SMTP.Inbox}, msg); err != nil {
		j.Logger.Error("contact notify: send failed",
			slog.Int64("inquiry_id", payload.InquiryID), slog.Any("error", err))
		return fmt.Errorf("send inquiry mail: %w", err)
	}

	j.Logger.Info("contact notify: sent", slog.Int64("inquiry_id", payload.InquiryID))
	return nil
}

func buildInquiryMail(from, to string, p ContactNotifyPayload) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: New inquiry #%d from %s\r\n", p.InquiryID, p.Name)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&b, "Name: %s\r\nContact: %s\r\n", p.Name, p.Contact)
	if p.ItemSlug != "" {
		fmt.Fprintf(&b, "Item: %s\r\n", p.ItemSlug)
	}
	fmt.Fprintf(&b, "\r\n%s\r\n", p.Message)
	return []byte(b.String())
}
