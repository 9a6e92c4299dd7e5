// Package roster turns roster spreadsheets into athlete writes: it maps arbitrary CSV
// headers onto the three required athlete fields and reconciles the parsed rows against
// a team's current roster.
package roster

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"unicode"
)

// Header synonyms in priority order.
var (
	nameHeaders   = []string{"fullname", "name", "athlete"}
	gradeHeaders  = []string{"grade"}
	jerseyHeaders = []string{"jerseynumber", "jersey", "number"}
)

// ErrEmptyCSV is returned when the input has no header row.
var ErrEmptyCSV = errors.New("csv has no header row")

// Row is one candidate athlete parsed from a roster file.
// INVARIANT: all three fields are trimmed and non-empty
type Row struct {
	FullName     string
	Grade        string
	JerseyNumber string
}

// NormalizeHeader lower-cases a header and keeps only letters and digits,
// so "Full Name", "full_name" and "FULLNAME" all read as "fullname" and "Jersey #" reads as "jersey".
func NormalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MapRow extracts a Row from a record keyed by normalized header.
// PRE: keys of record are already normalized with NormalizeHeader
// POST: ok is false when any required field is blank after trimming
func MapRow(record map[string]string) (Row, bool) {
	row := Row{
		FullName:     pick(record, nameHeaders),
		Grade:        pick(record, gradeHeaders),
		JerseyNumber: pick(record, jerseyHeaders),
	}
	if row.FullName == "" || row.Grade == "" || row.JerseyNumber == "" {
		return Row{}, false
	}
	return row, true
}

func pick(record map[string]string, synonyms []string) string {
	for _, key := range synonyms {
		if v := strings.TrimSpace(record[key]); v != "" {
			return v
		}
	}
	return ""
}

// ParseCSV reads a roster CSV with a header row and returns every row that maps to a
// complete athlete. Incomplete or malformed rows are dropped without error.
// PRE: r yields UTF-8 text
// POST: returns ErrEmptyCSV only when no header row can be read
func ParseCSV(r io.Reader) ([]Row, error) {
	br := bufio.NewReader(r)
	first, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	first = strings.TrimPrefix(first, "\ufeff")

	cr := csv.NewReader(io.MultiReader(strings.NewReader(first), br))
	cr.Comma = sniffDelimiter(first)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = NormalizeHeader(h)
	}

	var rows []Row
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				continue
			}
			return rows, err
		}
		record := make(map[string]string, len(keys))
		for i, k := range keys {
			if i < len(fields) && k != "" {
				record[k] = fields[i]
			}
		}
		if row, ok := MapRow(record); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// sniffDelimiter guesses the field separator from the header line.
func sniffDelimiter(line string) rune {
	best, bestCount := ',', strings.Count(line, ",")
	for _, d := range []rune{';', '\t'} {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
