package prompt

import (
	"errors"
	"fmt"
	"strings"

	"concert-stats/internal/concerts"
)

// Variant selects the output format the model is asked for.
type Variant string

const (
	VariantBaseline   Variant = "baseline"
	VariantJSON       Variant = "json"
	VariantStructured Variant = "structured"
)

var ErrUnknownVariant = errors.New("unknown prompt variant")

// Variants lists every supported variant in display order.
var Variants = []Variant{VariantBaseline, VariantJSON, VariantStructured}

// ParseVariant maps a user supplied name to a Variant. Empty means baseline.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return VariantBaseline, nil
	case VariantBaseline, VariantJSON, VariantStructured:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
}

// History renders one line per record: "<artist> at <venue> (<date>) rated <rating>".
func History(records []concerts.Record) string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = fmt.Sprintf("%s at %s (%s) rated %s", r.Artist, r.Venue, r.Date, r.RatingString())
	}
	return strings.Join(lines, "\n")
}

// Build renders the summary prompt for the given variant.
func Build(v Variant, records []concerts.Record) (string, error) {
	history := History(records)
	switch v {
	case VariantJSON:
		return "Analyze this user's concert history and return JSON like " +
			`{"summary": string, "recommendations": string[]}:` + "\n" +
			history + "\n" +
			"Return only valid JSON.", nil
	case VariantStructured:
		return "Summarize the user's concert history in one paragraph and suggest 2-3 artists they might enjoy next. Use the format:\n" +
			labeledFormat +
			"\n\n" + history, nil
	case VariantBaseline, "":
		return "Summarize the user's concert history and suggest artists to see next, returning exactly in this format:\n" +
			labeledFormat +
			"\n\n" + history, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, string(v))
	}
}

const labeledFormat = "Summary: <your paragraph here, may span multiple lines>\n" +
	"Recommendations: <comma-separated list of artists>"
