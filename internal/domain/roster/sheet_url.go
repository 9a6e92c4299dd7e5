package roster

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidSheetLink is returned for links without a recognizable spreadsheet id.
var ErrInvalidSheetLink = errors.New("link does not look like a Google Sheet")

var (
	sheetIDPattern  = regexp.MustCompile(`spreadsheets/d/([a-zA-Z0-9_-]+)`)
	sheetGIDPattern = regexp.MustCompile(`[?&#]gid=(\d+)`)
)

// NormalizeSheetURL rewrites a Google Sheets share link into its CSV export endpoint,
// keeping the tab selector (gid) when present. Links already pointing at a CSV export
// are returned unchanged.
// PRE: none
// POST: returns ErrInvalidSheetLink before any network access for unrecognized input
func NormalizeSheetURL(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", ErrInvalidSheetLink
	}
	if strings.Contains(trimmed, "export?format=csv") {
		return trimmed, nil
	}

	m := sheetIDPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return "", ErrInvalidSheetLink
	}

	q := url.Values{}
	q.Set("format", "csv")
	if g := sheetGIDPattern.FindStringSubmatch(trimmed); g != nil {
		q.Set("gid", g[1])
	}
	return "https://docs.google.com/spreadsheets/d/" + m[1] + "/export?" + q.Encode(), nil
}
