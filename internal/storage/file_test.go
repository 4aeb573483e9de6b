package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestFileRecorder_AppendAndLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "nested", "summaries.jsonl")
	rec, err := NewFileRecorder(p)
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}

	ev1 := Event{Timestamp: time.Unix(1, 0).UTC(), UserID: "1", Variant: "json", Format: "json"}
	ev2 := Event{Timestamp: time.Unix(2, 0).UTC(), UserID: "2", Variant: "baseline", ErrorKind: "missing_summary", RawResponse: "nope"}
	if err := rec.Append(ev1); err != nil {
		t.Fatalf("append1: %v", err)
	}
	if err := rec.Append(ev2); err != nil {
		t.Fatalf("append2: %v", err)
	}

	events, err := rec.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("want 2, got %d", len(events))
	}
	if events[0].UserID != "1" || events[1].UserID != "2" {
		t.Fatalf("order mismatch: %+v", events)
	}
	if !events[0].Succeeded() || events[1].Succeeded() {
		t.Fatalf("success flags wrong: %+v", events)
	}
	if events[1].RawResponse != "nope" {
		t.Fatalf("raw response lost: %+v", events[1])
	}

	st, err := os.Stat(p)
	if err != nil || st.Size() == 0 {
		t.Fatalf("file not written")
	}
}

func TestFileRecorder_SkipsCorruptLines(t *testing.T) {
	p := filepath.Join(t.TempDir(), "log.jsonl")
	if err := os.WriteFile(p, []byte("{not json}\n\n{\"user_id\":\"7\"}\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	rec, err := NewFileRecorder(p)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	events, err := rec.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(events) != 1 || events[0].UserID != "7" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestFileRecorder_ConcurrentAppend(t *testing.T) {
	rec, err := NewFileRecorder(filepath.Join(t.TempDir(), "log.jsonl"))
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := rec.Append(Event{UserID: "u", Variant: "json"}); err != nil {
				t.Errorf("append: %v", err)
			}
		}()
	}
	wg.Wait()
	events, _ := rec.Load()
	if len(events) != 20 {
		t.Fatalf("want 20 events, got %d", len(events))
	}
}
