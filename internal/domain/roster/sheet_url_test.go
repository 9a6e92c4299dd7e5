package roster

import (
	"errors"
	"testing"
)

func TestNormalizeSheetURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{
			name: "export link passes through",
			in:   " https://docs.google.com/spreadsheets/d/ABC/export?format=csv&gid=5 ",
			want: "https://docs.google.com/spreadsheets/d/ABC/export?format=csv&gid=5",
		},
		{
			name: "edit link with gid query",
			in:   "https://docs.google.com/spreadsheets/d/ABC123/edit?gid=42",
			want: "https://docs.google.com/spreadsheets/d/ABC123/export?format=csv&gid=42",
		},
		{
			name: "edit link with gid fragment",
			in:   "https://docs.google.com/spreadsheets/d/a-b_C9/edit#gid=0",
			want: "https://docs.google.com/spreadsheets/d/a-b_C9/export?format=csv&gid=0",
		},
		{
			name: "no tab selector",
			in:   "https://docs.google.com/spreadsheets/d/ABC123/edit",
			want: "https://docs.google.com/spreadsheets/d/ABC123/export?format=csv",
		},
		{name: "blank", in: "   ", wantErr: ErrInvalidSheetLink},
		{name: "not a sheet", in: "https://example.com/roster.csv", wantErr: ErrInvalidSheetLink},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeSheetURL(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
