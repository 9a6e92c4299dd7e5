// Package export renders a team's attendance history as a quoted CSV document.
package export

import (
	"io"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/stats"
)

// Header is the fixed column order of an attendance export.
var Header = []string{
	"Team",
	"Season",
	"Practice Date",
	"Practice Type",
	"Athlete Name",
	"Grade",
	"Jersey Number",
	"Status",
}

// DateLayout formats practice dates as MM/DD/YYYY.
const DateLayout = "01/02/2006"

// ContentType is the MIME type served for downloads and attachments.
const ContentType = "text/csv"

// Row is one attendance record flattened for export.
type Row struct {
	PracticeDate time.Time
	PracticeType string
	AthleteName  string
	Grade        string
	JerseyNumber string
	Status       string
}

// Document is a complete export for one team.
type Document struct {
	TeamName    string
	SeasonLabel string
	Rows        []Row
}

// FromRecords flattens attendance records into an export document in export order.
func FromRecords(teamName, seasonLabel string, records []stats.Record) Document {
	doc := Document{TeamName: teamName, SeasonLabel: seasonLabel, Rows: make([]Row, 0, len(records))}
	for _, rec := range records {
		doc.Rows = append(doc.Rows, Row{
			PracticeDate: rec.PracticeDate,
			PracticeType: rec.PracticeType,
			AthleteName:  rec.AthleteName,
			Grade:        rec.Grade,
			JerseyNumber: rec.JerseyNumber,
			Status:       rec.Status,
		})
	}
	Sort(doc.Rows)
	return doc
}

// Sort orders rows by practice date ascending, then athlete name ascending.
func Sort(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].PracticeDate.Equal(rows[j].PracticeDate) {
			return rows[i].PracticeDate.Before(rows[j].PracticeDate)
		}
		return rows[i].AthleteName < rows[j].AthleteName
	})
}

// WriteCSV writes doc to w. Every field is double-quoted, embedded quotes are doubled,
// and lines are separated by "\n" with no trailing newline. Dates are rendered in loc.
func WriteCSV(w io.Writer, doc Document, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	var b strings.Builder
	writeLine(&b, Header)
	for _, r := range doc.Rows {
		b.WriteByte('\n')
		writeLine(&b, []string{
			doc.TeamName,
			doc.SeasonLabel,
			r.PracticeDate.In(loc).Format(DateLayout),
			r.PracticeType,
			r.AthleteName,
			r.Grade,
			r.JerseyNumber,
			r.Status,
		})
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Bytes renders doc into memory.
func Bytes(doc Document, loc *time.Location) []byte {
	var b strings.Builder
	_ = WriteCSV(&b, doc, loc)
	return []byte(b.String())
}

func writeLine(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
}

var whitespace = regexp.MustCompile(`\s+`)

// Filename derives the download name from a team name, e.g. "Cadott 7-8" -> "cadott-7-8-attendance.csv".
func Filename(teamName string) string {
	return strings.ToLower(whitespace.ReplaceAllString(teamName, "-")) + "-attendance.csv"
}
