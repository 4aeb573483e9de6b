package summary

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MinTextLength is the minimum length of a summary after trimming.
const MinTextLength = 5

var (
	ErrMissingSummary         = errors.New("missing summary in model output")
	ErrInvalidSummary         = errors.New("summary is too short or missing")
	ErrInvalidRecommendations = errors.New("recommendations must be an array of strings")
)

// Summary is the validated result of interpreting a model response.
type Summary struct {
	UserID          string   `json:"user_id"`
	Text            string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
}

// Format tells which parser produced a Summary.
type Format string

const (
	FormatJSON    Format = "json"
	FormatLabeled Format = "labeled"
)

// Kind returns a short stable name for interpreter errors, used in audit logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingSummary):
		return "missing_summary"
	case errors.Is(err, ErrInvalidSummary):
		return "invalid_summary"
	case errors.Is(err, ErrInvalidRecommendations):
		return "invalid_recommendations"
	default:
		return "other"
	}
}

// candidate holds fields extracted by one parser before validation.
// A nil text means the field was absent.
type candidate struct {
	text    *string
	recs    []string
	recsErr error
}

func (c candidate) validate(userID string) (Summary, error) {
	if c.text == nil {
		return Summary{}, ErrInvalidSummary
	}
	if utf8.RuneCountInString(strings.TrimSpace(*c.text)) < MinTextLength {
		return Summary{}, ErrInvalidSummary
	}
	if c.recsErr != nil {
		return Summary{}, c.recsErr
	}
	recs := c.recs
	if recs == nil {
		recs = []string{}
	}
	return Summary{UserID: userID, Text: *c.text, Recommendations: recs}, nil
}
