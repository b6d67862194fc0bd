package dto

import "time"

const timeLayout = time.RFC3339

// ValidationError reports a request payload that failed schema checks.
// Handlers map it to a 400 with the message as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ParseDate accepts the two shapes clients send: a bare calendar date or a
// full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
