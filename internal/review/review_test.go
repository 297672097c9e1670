package review

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return v
}

func TestCheckResponse(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantCount  int
		wantErrSub string // substring of the schema error, empty means valid
	}{
		{
			name:      "valid response with homework",
			raw:       `{"current_date": 1700000000, "homeworks": [{"homework_name": "hw1", "status": "approved", "date_updated": "2023-11-14T20:00:00Z", "id": 1, "lesson_name": "go", "reviewer_comment": "ok"}]}`,
			wantCount: 1,
		},
		{
			name:      "valid response without homeworks",
			raw:       `{"current_date": 1700000000, "homeworks": []}`,
			wantCount: 0,
		},
		{
			name:       "not an object",
			raw:        `[1, 2, 3]`,
			wantErrSub: "want an object",
		},
		{
			name:       "missing current_date",
			raw:        `{"homeworks": []}`,
			wantErrSub: `missing key "current_date"`,
		},
		{
			name:       "missing homeworks",
			raw:        `{"current_date": 1700000000}`,
			wantErrSub: `missing key "homeworks"`,
		},
		{
			name:       "current_date not an integer",
			raw:        `{"current_date": "soon", "homeworks": []}`,
			wantErrSub: `key "current_date" is string`,
		},
		{
			name:       "current_date fractional",
			raw:        `{"current_date": 17.5, "homeworks": []}`,
			wantErrSub: "want an integer",
		},
		{
			name:       "homeworks not a list",
			raw:        `{"current_date": 1700000000, "homeworks": {"homework_name": "hw1"}}`,
			wantErrSub: `key "homeworks" is map`,
		},
		{
			name:       "homework not an object",
			raw:        `{"current_date": 1700000000, "homeworks": ["approved"]}`,
			wantErrSub: "homework is string",
		},
		{
			name:       "unknown homework key",
			raw:        `{"current_date": 1700000000, "homeworks": [{"homework_name": "hw1", "status": "approved", "grade": 5}]}`,
			wantErrSub: `unknown homework key "grade"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := CheckResponse(decode(t, tt.raw))

			if tt.wantErrSub != "" {
				var schemaErr *SchemaError
				if !errors.As(err, &schemaErr) {
					t.Fatalf("expected SchemaError, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.wantErrSub) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.wantErrSub)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.wantCount, len(resp.Homeworks)); diff != "" {
				t.Errorf("homework count mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(int64(1700000000), resp.CurrentDate); diff != "" {
				t.Errorf("current_date mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name       string
		hw         Homework
		want       string
		wantStatus string // status named by UnknownStatusError
		wantSchema bool
	}{
		{
			name: "approved",
			hw:   Homework{"homework_name": "Project X", "status": "approved"},
			want: `Changed review status for "Project X". The review is complete: the reviewer liked everything. Hooray!`,
		},
		{
			name: "reviewing",
			hw:   Homework{"homework_name": "hw2", "status": "reviewing"},
			want: `Changed review status for "hw2". The work has been taken up for review.`,
		},
		{
			name: "rejected",
			hw:   Homework{"homework_name": "hw3", "status": "rejected"},
			want: `Changed review status for "hw3". The review is complete: the reviewer has remarks.`,
		},
		{
			name:       "unknown status",
			hw:         Homework{"homework_name": "hw4", "status": "archived"},
			wantStatus: "archived",
		},
		{
			name:       "missing status",
			hw:         Homework{"homework_name": "hw5"},
			wantStatus: "",
		},
		{
			name:       "missing homework name",
			hw:         Homework{"status": "approved"},
			wantSchema: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatus(tt.hw)

			if tt.wantSchema {
				var schemaErr *SchemaError
				if !errors.As(err, &schemaErr) {
					t.Fatalf("expected SchemaError, got %v", err)
				}
				return
			}
			if tt.want == "" {
				var statusErr *UnknownStatusError
				if !errors.As(err, &statusErr) {
					t.Fatalf("expected UnknownStatusError, got %v", err)
				}
				if diff := cmp.Diff(tt.wantStatus, statusErr.Status); diff != "" {
					t.Errorf("status mismatch (-want +got):\n%s", diff)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("message mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDateUpdated(t *testing.T) {
	hw := Homework{"date_updated": "2023-11-14T20:00:00Z"}
	if diff := cmp.Diff("2023-11-14T20:00:00Z", hw.DateUpdated()); diff != "" {
		t.Errorf("DateUpdated() mismatch (-want +got):\n%s", diff)
	}

	if got := (Homework{}).DateUpdated(); got != "" {
		t.Errorf("DateUpdated() on empty homework = %q, want empty", got)
	}
}
