package summary

import "strings"

const (
	summaryLabel         = "Summary:"
	recommendationsLabel = "Recommendations:"
)

// parseLabeled reads the "Summary:" / "Recommendations:" plain-text format.
// Only the first line of each label is used; continuation lines are ignored.
func parseLabeled(s string) (candidate, bool) {
	var (
		text     *string
		recsLine *string
	)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if text == nil && strings.HasPrefix(line, summaryLabel) {
			v := strings.TrimSpace(strings.TrimPrefix(line, summaryLabel))
			text = &v
			continue
		}
		if recsLine == nil && strings.HasPrefix(line, recommendationsLabel) {
			v := strings.TrimPrefix(line, recommendationsLabel)
			recsLine = &v
		}
	}
	if text == nil {
		return candidate{}, false
	}
	c := candidate{text: text, recs: []string{}}
	if recsLine != nil {
		c.recs = splitList(*recsLine)
	}
	return c, true
}

func splitList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
