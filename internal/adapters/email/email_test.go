package email

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNoopSender_LogsAttachments(t *testing.T) {
	var buf bytes.Buffer
	s := NewNoopSender(slog.New(slog.NewTextHandler(&buf, nil)))

	res, err := s.Send(context.Background(), SendRequest{
		To:          []string{"coach@example.com"},
		Subject:     "Attendance export",
		Attachments: []Attachment{{Filename: "team-attendance.csv", Content: []byte("x")}},
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !strings.HasPrefix(res.MessageID, "noop-") {
		t.Errorf("MessageID = %q", res.MessageID)
	}
	if !strings.Contains(buf.String(), "team-attendance.csv") {
		t.Errorf("log missing attachment name: %q", buf.String())
	}
}

func TestResendSender_BuildRequest(t *testing.T) {
	s := NewResendSender("re_test", "Default <default@example.com>", nil)

	params := s.buildRequest(SendRequest{
		To:          []string{"coach@example.com"},
		Subject:     "Export",
		Text:        "attached",
		Attachments: []Attachment{{Filename: "a.csv", ContentType: "text/csv", Content: []byte("\"Team\"")}},
	})
	if params.From != "Default <default@example.com>" {
		t.Errorf("From = %q, want default", params.From)
	}
	if params.Text != "attached" {
		t.Errorf("Text = %q", params.Text)
	}
	if len(params.Attachments) != 1 || params.Attachments[0].Filename != "a.csv" {
		t.Fatalf("Attachments = %+v", params.Attachments)
	}
	if string(params.Attachments[0].Content) != "\"Team\"" {
		t.Errorf("attachment content = %q", params.Attachments[0].Content)
	}

	override := s.buildRequest(SendRequest{From: "Other <o@example.com>", ReplyTo: "r@example.com"})
	if override.From != "Other <o@example.com>" || override.ReplyTo != "r@example.com" {
		t.Errorf("override = %+v", override)
	}
}
