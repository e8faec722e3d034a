package models

import "strings"

// ValidationError lists every field that failed validation so the caller
// can fix a whole payload in one round trip.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}
