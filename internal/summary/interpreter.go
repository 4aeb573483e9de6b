// Package summary turns free-form model output into a validated Summary.
//
// Models drift between three shapes even when asked for one: a bare JSON
// object, a JSON object wrapped in prose or a markdown fence, and the
// labeled "Summary:" / "Recommendations:" text format. Decode tries the
// structured shape first and falls back to the labeled one; both share
// the same validation.
package summary

import (
	"errors"
	"fmt"
	"strings"
)

// Interpret converts a raw model response into a Summary for userID.
func Interpret(raw, userID string) (Summary, error) {
	s, _, err := Decode(raw, userID)
	return s, err
}

// Decode is Interpret that also reports which format was accepted.
//
// Malformed or invalid JSON candidates are skipped silently. If the text
// has no "Summary:" line either, the validation error of the first JSON
// object that did carry a summary is returned in place of ErrMissingSummary.
func Decode(raw, userID string) (Summary, Format, error) {
	trimmed := strings.TrimSpace(raw)

	var jsonErr error
	for _, obj := range jsonObjects(trimmed) {
		c, ok := decodeStructured(obj)
		if !ok {
			continue
		}
		s, err := c.validate(userID)
		if err == nil {
			return s, FormatJSON, nil
		}
		if jsonErr == nil && c.text != nil {
			jsonErr = err
		}
	}

	c, ok := parseLabeled(trimmed)
	if !ok {
		if jsonErr != nil {
			return Summary{}, "", jsonErr
		}
		return Summary{}, "", ErrMissingSummary
	}
	s, err := c.validate(userID)
	if err != nil {
		if errors.Is(err, ErrInvalidSummary) {
			err = fmt.Errorf("%w: %q", ErrInvalidSummary, *c.text)
		}
		return Summary{}, "", err
	}
	return s, FormatLabeled, nil
}
