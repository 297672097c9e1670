// Package review validates homework review-status API payloads and maps a
// homework record to its notification message.
package review

import "fmt"

// Verdicts maps every known review status to its notification text.
var Verdicts = map[string]string{
	"approved":  "The review is complete: the reviewer liked everything. Hooray!",
	"reviewing": "The work has been taken up for review.",
	"rejected":  "The review is complete: the reviewer has remarks.",
}

// homeworkKeys is the closed set of keys a homework record may carry.
var homeworkKeys = map[string]bool{
	"date_updated":     true,
	"homework_name":    true,
	"id":               true,
	"lesson_name":      true,
	"reviewer_comment": true,
	"status":           true,
}

// SchemaError reports a payload that does not match the documented API shape.
type SchemaError struct {
	Field  string // offending key, empty when the response as a whole is malformed
	Reason string
}

func (e *SchemaError) Error() string {
	return "invalid API response: " + e.Reason
}

// UnknownStatusError reports a homework status outside the verdict table.
type UnknownStatusError struct {
	Status string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown homework status %q", e.Status)
}

// Homework is a single decoded homework record.
type Homework map[string]any

// DateUpdated returns the record's update timestamp as an opaque string.
func (h Homework) DateUpdated() string {
	s, _ := h["date_updated"].(string)
	return s
}

// Response is a validated API response.
type Response struct {
	CurrentDate int64
	Homeworks   []any
}

// First returns the newest homework record. Valid only when Homeworks is
// non-empty; CheckResponse has already confirmed the element is a mapping.
func (r *Response) First() Homework {
	return Homework(r.Homeworks[0].(map[string]any))
}

// CheckResponse validates a decoded API response against the documented
// shape. Checks run in order and stop at the first violation. Only the first
// homework is inspected: the poller consumes a single record per cycle.
func CheckResponse(resp any) (*Response, error) {
	body, ok := resp.(map[string]any)
	if !ok {
		return nil, &SchemaError{Reason: fmt.Sprintf("response is %T, want an object", resp)}
	}
	for _, key := range []string{"current_date", "homeworks"} {
		if _, ok := body[key]; !ok {
			return nil, &SchemaError{Field: key, Reason: fmt.Sprintf("missing key %q", key)}
		}
	}

	date, ok := body["current_date"].(float64)
	if !ok || date != float64(int64(date)) {
		return nil, &SchemaError{
			Field:  "current_date",
			Reason: fmt.Sprintf("key %q is %T, want an integer", "current_date", body["current_date"]),
		}
	}

	items, ok := body["homeworks"].([]any)
	if !ok {
		return nil, &SchemaError{
			Field:  "homeworks",
			Reason: fmt.Sprintf("key %q is %T, want a list", "homeworks", body["homeworks"]),
		}
	}

	if len(items) > 0 {
		first, ok := items[0].(map[string]any)
		if !ok {
			return nil, &SchemaError{
				Field:  "homeworks",
				Reason: fmt.Sprintf("homework is %T, want an object", items[0]),
			}
		}
		for key := range first {
			if !homeworkKeys[key] {
				return nil, &SchemaError{Field: key, Reason: fmt.Sprintf("unknown homework key %q", key)}
			}
		}
	}

	return &Response{CurrentDate: int64(date), Homeworks: items}, nil
}

// ParseStatus maps a homework record to its notification message.
func ParseStatus(hw Homework) (string, error) {
	name, ok := hw["homework_name"].(string)
	if !ok {
		return "", &SchemaError{Field: "homework_name", Reason: fmt.Sprintf("missing key %q", "homework_name")}
	}
	status, _ := hw["status"].(string)
	verdict, ok := Verdicts[status]
	if !ok {
		return "", &UnknownStatusError{Status: status}
	}
	return fmt.Sprintf("Changed review status for %q. %s", name, verdict), nil
}
