package concerts

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date accepted for Record.Date.
const DateLayout = "2006-01-02"

var (
	ErrDuplicateRecord = errors.New("concert already logged for this user, artist, and date")
	ErrNoRecords       = errors.New("no concert records for user")
	ErrInvalidRecord   = errors.New("invalid concert record")
)

// Record is one logged attendance. Records are immutable once appended.
type Record struct {
	UserID string   `json:"user_id"`
	Artist string   `json:"artist"`
	Venue  string   `json:"venue"`
	Date   string   `json:"date"`
	Rating *float64 `json:"rating,omitempty"`
}

type recordKey struct {
	userID string
	artist string
	date   string
}

func (r Record) key() recordKey {
	return recordKey{userID: r.UserID, artist: r.Artist, date: r.Date}
}

// Validate checks required fields, the date layout and that a rating, if set, is finite.
func (r Record) Validate() error {
	switch {
	case strings.TrimSpace(r.UserID) == "":
		return fmt.Errorf("%w: empty user id", ErrInvalidRecord)
	case strings.TrimSpace(r.Artist) == "":
		return fmt.Errorf("%w: empty artist", ErrInvalidRecord)
	case strings.TrimSpace(r.Venue) == "":
		return fmt.Errorf("%w: empty venue", ErrInvalidRecord)
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidRecord, r.Date)
	}
	if r.Rating != nil && (math.IsNaN(*r.Rating) || math.IsInf(*r.Rating, 0)) {
		return fmt.Errorf("%w: rating must be a finite number", ErrInvalidRecord)
	}
	return nil
}

// RatingString renders the rating for prompts and messages.
func (r Record) RatingString() string {
	if r.Rating == nil {
		return "N/A"
	}
	return fmt.Sprintf("%g", *r.Rating)
}

// Stats aggregates a user's records.
// AverageRating is computed over rated records only and is 0 when RatedCount is 0.
type Stats struct {
	TotalCount        int     `json:"total_count"`
	UniqueArtistCount int     `json:"unique_artist_count"`
	RatedCount        int     `json:"rated_count"`
	AverageRating     float64 `json:"average_rating"`
}

// Aggregate computes Stats over records. It fails with ErrNoRecords on an empty slice.
func Aggregate(records []Record) (Stats, error) {
	if len(records) == 0 {
		return Stats{}, ErrNoRecords
	}
	artists := make(map[string]struct{}, len(records))
	var sum float64
	st := Stats{TotalCount: len(records)}
	for _, r := range records {
		artists[r.Artist] = struct{}{}
		if r.Rating != nil {
			sum += *r.Rating
			st.RatedCount++
		}
	}
	st.UniqueArtistCount = len(artists)
	if st.RatedCount > 0 {
		st.AverageRating = sum / float64(st.RatedCount)
	}
	return st, nil
}
