package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	emailAdapter "github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/adapters/email"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/export"
	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/stats"
)

// AttendanceStoreForExport lists a team's annotated attendance.
type AttendanceStoreForExport interface {
	ListDetailed(ctx context.Context, teamID string, filter stats.Filter) ([]stats.Record, error)
}

// EmailExportInput carries the export-by-email form.
type EmailExportInput struct {
	TeamID string
	To     string
}

// EmailExportDeps holds dependencies for EmailExport.
type EmailExportDeps struct {
	TeamStore       TeamStoreForLookup
	AttendanceStore AttendanceStoreForExport
	Sender          emailAdapter.Sender
	From            string
	Location        *time.Location
}

// ExecuteEmailExport sends the team's attendance CSV to one recipient as an attachment.
// PRE: caller holds team access
// POST: ErrInvalidRecipient without sending when To is not a valid address
func ExecuteEmailExport(ctx context.Context, input EmailExportInput, deps EmailExportDeps) (emailAdapter.SendResult, error) {
	addr, err := mail.ParseAddress(input.To)
	if err != nil {
		return emailAdapter.SendResult{}, ErrInvalidRecipient
	}

	t, err := deps.TeamStore.GetByID(ctx, input.TeamID)
	if err != nil {
		if isNotFound(err) {
			return emailAdapter.SendResult{}, ErrTeamNotFound
		}
		return emailAdapter.SendResult{}, err
	}
	records, err := deps.AttendanceStore.ListDetailed(ctx, t.ID, stats.Filter{})
	if err != nil {
		return emailAdapter.SendResult{}, fmt.Errorf("list attendance: %w", err)
	}

	doc := export.FromRecords(t.Name, t.SeasonLabel, records)
	res, err := deps.Sender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{addr.Address},
		From:    deps.From,
		Subject: fmt.Sprintf("%s attendance (%s)", t.Name, t.SeasonLabel),
		Text:    fmt.Sprintf("Attached is the attendance export for %s, season %s: %d records.", t.Name, t.SeasonLabel, len(doc.Rows)),
		Attachments: []emailAdapter.Attachment{{
			Filename:    export.Filename(t.Name),
			ContentType: export.ContentType,
			Content:     export.Bytes(doc, deps.Location),
		}},
	})
	if err != nil {
		return emailAdapter.SendResult{}, err
	}
	slog.Info("export_event", "event", "export_emailed", "team_id", t.ID, "rows", len(doc.Rows), "message_id", res.MessageID)
	return res, nil
}
