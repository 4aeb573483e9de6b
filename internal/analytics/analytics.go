package analytics

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"concert-stats/internal/storage"
)

// DailyStats summarizes summary requests for one day.
type DailyStats struct {
	Date           string              `json:"date"`
	TotalRequests  int                 `json:"total_requests"`
	Succeeded      int                 `json:"succeeded"`
	Failed         int                 `json:"failed"`
	UniqueUsers    int                 `json:"unique_users"`
	ByFormat       map[string]int      `json:"by_format"`
	FailuresByKind map[string]int      `json:"failures_by_kind"`
	ByVariant      map[string]int      `json:"by_variant"`
	UserStats      map[string]UserStats `json:"user_stats"`
}

// UserStats holds per-user counters.
type UserStats struct {
	UserID    string `json:"user_id"`
	Requests  int    `json:"requests"`
	Succeeded int    `json:"succeeded"`
}

// AnalyzeDailyLogs aggregates events whose timestamp falls on targetDate.
func AnalyzeDailyLogs(events []storage.Event, targetDate time.Time) *DailyStats {
	startOfDay := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	stats := &DailyStats{
		Date:           startOfDay.Format("2006-01-02"),
		ByFormat:       make(map[string]int),
		FailuresByKind: make(map[string]int),
		ByVariant:      make(map[string]int),
		UserStats:      make(map[string]UserStats),
	}

	for _, event := range events {
		if event.Timestamp.Before(startOfDay) || !event.Timestamp.Before(endOfDay) {
			continue
		}
		stats.TotalRequests++
		if event.Variant != "" {
			stats.ByVariant[event.Variant]++
		}

		us, ok := stats.UserStats[event.UserID]
		if !ok {
			us = UserStats{UserID: event.UserID}
		}
		us.Requests++

		if event.Succeeded() {
			stats.Succeeded++
			stats.ByFormat[event.Format]++
			us.Succeeded++
		} else {
			stats.Failed++
			stats.FailuresByKind[event.ErrorKind]++
		}
		stats.UserStats[event.UserID] = us
	}

	stats.UniqueUsers = len(stats.UserStats)
	return stats
}

// SuccessRate is the share of requests that produced a summary, 0 with no requests.
func (ds *DailyStats) SuccessRate() float64 {
	if ds.TotalRequests == 0 {
		return 0
	}
	return float64(ds.Succeeded) / float64(ds.TotalRequests)
}

// GenerateReportSummary renders a plain-text report.
func (ds *DailyStats) GenerateReportSummary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Concert summary report for %s\n\n", ds.Date)
	fmt.Fprintf(&b, "Requests: %d (ok %d, failed %d, success rate %.0f%%)\n",
		ds.TotalRequests, ds.Succeeded, ds.Failed, ds.SuccessRate()*100)
	fmt.Fprintf(&b, "Unique users: %d\n", ds.UniqueUsers)

	writeCounts(&b, "Accepted formats", ds.ByFormat)
	writeCounts(&b, "Failures", ds.FailuresByKind)
	writeCounts(&b, "Prompt variants", ds.ByVariant)
	return b.String()
}

func writeCounts(b *strings.Builder, title string, m map[string]int) {
	if len(m) == 0 {
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(b, "- %s: %d\n", k, m[k])
	}
}

// ToJSON serializes the stats for detailed inspection.
func (ds *DailyStats) ToJSON() (string, error) {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
