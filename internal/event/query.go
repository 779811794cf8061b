package event

import (
	"fmt"
	"strings"
)

// RequiredFields lists the query fields in the order they are reported when missing.
var RequiredFields = []string{"location", "genre", "date"}

// Query is a caller-supplied search. All three fields are required.
type Query struct {
	Location string `json:"location" form:"location"`
	Genre    string `json:"genre" form:"genre"`
	Date     string `json:"date" form:"date"` // YYYY-MM-DD
}

// ValidationError reports which required query fields were empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Validate returns a *ValidationError if any required field is blank.
// The search core assumes a query that has already passed Validate.
func (q Query) Validate() error {
	var missing []string
	if strings.TrimSpace(q.Location) == "" {
		missing = append(missing, "location")
	}
	if strings.TrimSpace(q.Genre) == "" {
		missing = append(missing, "genre")
	}
	if strings.TrimSpace(q.Date) == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
