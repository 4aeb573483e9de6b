package concertstats

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"concert-stats/internal/concerts"
	"concert-stats/internal/prompt"
	"concert-stats/internal/storage"
	"concert-stats/internal/summary"
)

// fakeModel returns a canned response and remembers the prompts it was given.
type fakeModel struct {
	out     string
	err     error
	prompts []string
}

func (f *fakeModel) Execute(_ context.Context, p string) (string, error) {
	f.prompts = append(f.prompts, p)
	return f.out, f.err
}

type memRecorder struct {
	mu     sync.Mutex
	events []storage.Event
}

func (m *memRecorder) Append(ev storage.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

func (m *memRecorder) Load() ([]storage.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]storage.Event{}, m.events...), nil
}

func newTestService(model Model, rec storage.Recorder) *Service {
	s := New(concerts.NewMemoryStore(), model, "test-model", rec)
	s.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s
}

func ptr(v float64) *float64 { return &v }

func TestGenerateSummary_JSONNoise(t *testing.T) {
	ctx := context.Background()
	model := &fakeModel{out: "Here is a JSON summary:\n" +
		`{"summary": "You attend large pop concerts often.", "recommendations": ["Ed Sheeran", "Adele"]}`}
	rec := &memRecorder{}
	svc := newTestService(model, rec)

	if _, err := svc.LogConcert(ctx, "user3", "Paramore", "Hollywood Bowl", "2025-02-10", ptr(9)); err != nil {
		t.Fatalf("log: %v", err)
	}
	sum, err := svc.GenerateSummary(ctx, "user3", prompt.VariantJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.UserID != "user3" || sum.Text != "You attend large pop concerts often." {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if !reflect.DeepEqual(sum.Recommendations, []string{"Ed Sheeran", "Adele"}) {
		t.Fatalf("recommendations: %#v", sum.Recommendations)
	}
	if len(model.prompts) != 1 || !strings.Contains(model.prompts[0], "Paramore at Hollywood Bowl (2025-02-10) rated 9") {
		t.Fatalf("prompt missing history: %q", model.prompts)
	}

	if len(rec.events) != 1 {
		t.Fatalf("want 1 audit event, got %d", len(rec.events))
	}
	ev := rec.events[0]
	if ev.Format != "json" || ev.ErrorKind != "" || ev.Variant != "json" || ev.Model != "test-model" || ev.RawResponse != "" {
		t.Fatalf("unexpected audit event: %+v", ev)
	}
}

func TestGenerateSummary_Structured(t *testing.T) {
	ctx := context.Background()
	model := &fakeModel{out: "Summary: You often attend stadium pop concerts.\nRecommendations: Ed Sheeran, Harry Styles"}
	svc := newTestService(model, nil)
	_, _ = svc.LogConcert(ctx, "user4", "Fleetwood Mac", "Wembley Stadium", "2024-09-15", ptr(10))

	sum, err := svc.GenerateSummary(ctx, "user4", prompt.VariantStructured)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Text != "You often attend stadium pop concerts." {
		t.Fatalf("text: %q", sum.Text)
	}
	if !reflect.DeepEqual(sum.Recommendations, []string{"Ed Sheeran", "Harry Styles"}) {
		t.Fatalf("recommendations: %#v", sum.Recommendations)
	}
}

func TestGenerateSummary_MissingSummaryIsAudited(t *testing.T) {
	ctx := context.Background()
	model := &fakeModel{out: "Recommendations: Arctic Monkeys, Hozier"}
	rec := &memRecorder{}
	svc := newTestService(model, rec)
	_, _ = svc.LogConcert(ctx, "user2", "Phoebe Bridgers", "Greek Theatre", "2025-05-20", ptr(9))

	_, err := svc.GenerateSummary(ctx, "user2", prompt.VariantBaseline)
	if !errors.Is(err, summary.ErrMissingSummary) {
		t.Fatalf("want ErrMissingSummary, got %v", err)
	}
	if len(rec.events) != 1 || rec.events[0].ErrorKind != "missing_summary" || rec.events[0].RawResponse == "" {
		t.Fatalf("unexpected audit: %+v", rec.events)
	}
}

func TestGenerateSummary_NoRecordsSkipsModel(t *testing.T) {
	model := &fakeModel{out: "Summary: should not be used"}
	svc := newTestService(model, nil)

	_, err := svc.GenerateSummary(context.Background(), "ghost", prompt.VariantBaseline)
	if !errors.Is(err, concerts.ErrNoRecords) {
		t.Fatalf("want ErrNoRecords, got %v", err)
	}
	if len(model.prompts) != 0 {
		t.Fatalf("model must not be called")
	}
}

func TestGenerateSummary_ModelErrorPropagates(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("provider unavailable")
	rec := &memRecorder{}
	svc := newTestService(&fakeModel{err: boom}, rec)
	_, _ = svc.LogConcert(ctx, "u", "A", "V", "2024-01-01", nil)

	_, err := svc.GenerateSummary(ctx, "u", prompt.VariantBaseline)
	if !errors.Is(err, boom) {
		t.Fatalf("want provider error, got %v", err)
	}
	if len(rec.events) != 0 {
		t.Fatalf("model failures must not reach the audit log: %+v", rec.events)
	}
}

func TestGenerateSummary_UnknownVariant(t *testing.T) {
	ctx := context.Background()
	model := &fakeModel{}
	svc := newTestService(model, nil)
	_, _ = svc.LogConcert(ctx, "u", "A", "V", "2024-01-01", nil)

	if _, err := svc.GenerateSummary(ctx, "u", prompt.Variant("xml")); !errors.Is(err, prompt.ErrUnknownVariant) {
		t.Fatalf("want ErrUnknownVariant, got %v", err)
	}
	if len(model.prompts) != 0 {
		t.Fatalf("model must not be called")
	}
}

func TestLogConcertAndStats(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&fakeModel{}, nil)

	if _, err := svc.LogConcert(ctx, "u1", "A", "V", "2024-01-01", ptr(9)); err != nil {
		t.Fatalf("log: %v", err)
	}
	if _, err := svc.LogConcert(ctx, "u1", "B", "V", "2024-02-01", nil); err != nil {
		t.Fatalf("log: %v", err)
	}
	if _, err := svc.LogConcert(ctx, "u1", "A", "Elsewhere", "2024-01-01", nil); !errors.Is(err, concerts.ErrDuplicateRecord) {
		t.Fatalf("want ErrDuplicateRecord, got %v", err)
	}

	st, err := svc.Stats(ctx, "u1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalCount != 2 || st.UniqueArtistCount != 2 || st.AverageRating != 9 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	if _, err := svc.Stats(ctx, "u2"); !errors.Is(err, concerts.ErrNoRecords) {
		t.Fatalf("want ErrNoRecords, got %v", err)
	}
	rs, _ := svc.Records(ctx, "u1")
	if len(rs) != 2 {
		t.Fatalf("want 2 records, got %d", len(rs))
	}
}
