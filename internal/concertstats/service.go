package concertstats

import (
	"context"
	"fmt"
	"log"
	"time"

	"concert-stats/internal/concerts"
	"concert-stats/internal/prompt"
	"concert-stats/internal/storage"
	"concert-stats/internal/summary"
)

// Model is the opaque text-generation boundary: one prompt in, raw text out.
type Model interface {
	Execute(ctx context.Context, prompt string) (string, error)
}

// RecordStore is the part of concerts.Store the service needs.
type RecordStore interface {
	Append(ctx context.Context, r concerts.Record) (concerts.Record, error)
	List(ctx context.Context, userID string) ([]concerts.Record, error)
}

// Service logs concerts and produces model-written summaries.
type Service struct {
	store     RecordStore
	model     Model
	modelName string
	recorder  storage.Recorder
	now       func() time.Time
}

// New creates a Service. recorder may be nil to disable the audit log.
func New(store RecordStore, model Model, modelName string, recorder storage.Recorder) *Service {
	return &Service{
		store:     store,
		model:     model,
		modelName: modelName,
		recorder:  recorder,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) LogConcert(ctx context.Context, userID, artist, venue, date string, rating *float64) (concerts.Record, error) {
	return s.store.Append(ctx, concerts.Record{
		UserID: userID,
		Artist: artist,
		Venue:  venue,
		Date:   date,
		Rating: rating,
	})
}

func (s *Service) Records(ctx context.Context, userID string) ([]concerts.Record, error) {
	return s.store.List(ctx, userID)
}

func (s *Service) Stats(ctx context.Context, userID string) (concerts.Stats, error) {
	rs, err := s.store.List(ctx, userID)
	if err != nil {
		return concerts.Stats{}, fmt.Errorf("list records: %w", err)
	}
	return concerts.Aggregate(rs)
}

// GenerateSummary asks the model for a summary of the user's history.
//
// It fails with concerts.ErrNoRecords before any model call. Model errors are
// returned wrapped and are not audited; interpreter outcomes always are.
func (s *Service) GenerateSummary(ctx context.Context, userID string, variant prompt.Variant) (summary.Summary, error) {
	rs, err := s.store.List(ctx, userID)
	if err != nil {
		return summary.Summary{}, fmt.Errorf("list records: %w", err)
	}
	if len(rs) == 0 {
		return summary.Summary{}, concerts.ErrNoRecords
	}

	p, err := prompt.Build(variant, rs)
	if err != nil {
		return summary.Summary{}, err
	}

	raw, err := s.model.Execute(ctx, p)
	if err != nil {
		return summary.Summary{}, fmt.Errorf("execute model: %w", err)
	}

	sum, format, err := summary.Decode(raw, userID)
	s.audit(userID, variant, format, err, raw)
	if err != nil {
		log.Printf("summary for user %s rejected (%s): %v", userID, summary.Kind(err), err)
		return summary.Summary{}, err
	}
	return sum, nil
}

func (s *Service) audit(userID string, variant prompt.Variant, format summary.Format, err error, raw string) {
	if s.recorder == nil {
		return
	}
	ev := storage.Event{
		Timestamp: s.now(),
		UserID:    userID,
		Variant:   string(variant),
		Model:     s.modelName,
		Format:    string(format),
		ErrorKind: summary.Kind(err),
	}
	// keep failing responses for prompt tuning
	if err != nil {
		ev.RawResponse = raw
	}
	if aerr := s.recorder.Append(ev); aerr != nil {
		log.Printf("failed to record summary event: %v", aerr)
	}
}
