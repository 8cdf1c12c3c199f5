package jobs

import (
	"context"
	"io"
	"log/slog"
	"net/smtp"
	"strings"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactNotifySendsMail(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	job := NewContactNotifyJob(slog.New(slog.NewTextHandler(io.Discard, nil)), SMTPConfig{
		Addr:  "mail.local:25",
		From:  "no-reply@jiudi.local",
		Inbox: "hello@jiudi.local",
	})
	job.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	task, err := NewContactNotifyTask(ContactNotifyPayload{
		InquiryID: 7,
		Name:      "王小姐",
		Contact:   "138-0000-0000",
		Message:   "请问这把椅子还在吗？",
		ItemSlug:  "standard-chair-jp-001",
	})
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))

	assert.Equal(t, "mail.local:25", gotAddr)
	assert.Equal(t, "no-reply@jiudi.local", gotFrom)
	assert.Equal(t, []string{"hello@jiudi.local"}, gotTo)

	body := string(gotMsg)
	assert.Contains(t, body, "Subject: New inquiry #7")
	assert.Contains(t, body, "standard-chair-jp-001")
	assert.Contains(t, body, "请问这把椅子还在吗？")
}

func TestContactNotifySkipsRetryOnBadPayload(t *testing.T) {
	job := NewContactNotifyJob(slog.New(slog.NewTextHandler(io.Discard, nil)), SMTPConfig{Inbox: "hello@jiudi.local"})
	job.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send should not be called")
		return nil
	}

	err := job.Handle(context.Background(), asynq.NewTask(TaskTypeContactNotify, []byte("{broken")))
	assert.Equal(t, asynq.SkipRetry, err)
}

func TestContactNotifyDropsWithoutInbox(t *testing.T) {
	job := NewContactNotifyJob(slog.New(slog.NewTextHandler(io.Discard, nil)), SMTPConfig{})
	sent := false
	job.send = func(string, smtp.Auth, string, []string, []byte) error {
		sent = true
		return nil
	}

	task, err := NewContactNotifyTask(ContactNotifyPayload{InquiryID: 1})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	assert.False(t, sent)
}

func TestBuildInquiryMailOmitsEmptySlug(t *testing.T) {
	msg := string(buildInquiryMail("a@x", "b@x", ContactNotifyPayload{InquiryID: 1, Name: "n", Contact: "c", Message: "m"}))
	assert.False(t, strings.Contains(msg, "Item:"))
}
