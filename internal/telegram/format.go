package telegram

import (
	"fmt"
	"html"
	"strings"

	"concert-stats/internal/concerts"
	"concert-stats/internal/summary"
)

func (b *Bot) escape(s string) string {
	if strings.EqualFold(b.parseMode, "HTML") {
		return html.EscapeString(s)
	}
	return s
}

func (b *Bot) bold(s string) string {
	if strings.EqualFold(b.parseMode, "HTML") {
		return "<b>" + html.EscapeString(s) + "</b>"
	}
	return s
}

func (b *Bot) formatSummary(s summary.Summary) string {
	var sb strings.Builder
	sb.WriteString(b.bold("🎶 Concert Summary"))
	sb.WriteString("\n\n")
	sb.WriteString(b.escape(s.Text))
	if len(s.Recommendations) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(b.bold("Recommendations:"))
		sb.WriteString(" ")
		sb.WriteString(b.escape(strings.Join(s.Recommendations, ", ")))
	}
	return sb.String()
}

func (b *Bot) formatStats(st concerts.Stats) string {
	avg := "N/A"
	if st.RatedCount > 0 {
		avg = fmt.Sprintf("%.1f (%d rated)", st.AverageRating, st.RatedCount)
	}
	return b.bold("📊 Concert Stats") + "\n" +
		b.escape(fmt.Sprintf("Concerts: %d\nUnique artists: %d\nAverage rating: %s", st.TotalCount, st.UniqueArtistCount, avg))
}
