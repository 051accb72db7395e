package session

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestEntryWireRoundTrip(t *testing.T) {
	e := &Entry{
		Seq:     7,
		At:      time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		Input:   "1 + 2",
		Output:  "3",
		IsError: false,
	}

	data, err := MarshalEntry(e)
	if err != nil {
		t.Fatalf("MarshalEntry: %v", err)
	}

	got, err := UnmarshalEntry(data)
	if err != nil {
		t.Fatalf("UnmarshalEntry: %v", err)
	}
	if got.Seq != e.Seq || got.Input != e.Input || got.Output != e.Output || got.IsError != e.IsError {
		t.Errorf("round trip = %+v, want %+v", got, e)
	}
	if !got.At.Equal(e.At) {
		t.Errorf("time = %v, want %v", got.At, e.At)
	}
}

func TestEntryWireDeterministic(t *testing.T) {
	e := &Entry{Input: "print(1);", Output: "1"}

	a, err := MarshalEntry(e)
	if err != nil {
		t.Fatal(err)
	}
	b, err := MarshalEntry(e)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("canonical encoding is not deterministic")
	}
}

func TestUnmarshalEntryGarbage(t *testing.T) {
	if _, err := UnmarshalEntry([]byte{0xff, 0x00, 0x01}); err == nil {
		t.Fatal("expected error for malformed bytes")
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreAppendAndGet(t *testing.T) {
	s := openTestStore(t)

	seq, err := s.Append(&Entry{At: time.Now().UTC(), Input: "let x = 1;", Output: "nil"})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if seq != 1 {
		t.Errorf("first seq = %d, want 1", seq)
	}

	got, err := s.Get(seq)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Input != "let x = 1;" || got.Output != "nil" {
		t.Errorf("entry = %+v", got)
	}
	if got.Seq != seq {
		t.Errorf("seq = %d, want %d", got.Seq, seq)
	}
}

func TestStoreGetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(99)
	if !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("err = %v, want ErrEntryNotFound", err)
	}
}

func TestStoreRecent(t *testing.T) {
	s := openTestStore(t)

	inputs := []string{"a", "b", "c", "d"}
	for _, in := range inputs {
		if _, err := s.Append(&Entry{Input: in}); err != nil {
			t.Fatalf("Append(%q): %v", in, err)
		}
	}

	entries, err := s.Recent(3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	// Oldest first within the window.
	want := []string{"b", "c", "d"}
	for i, w := range want {
		if entries[i].Input != w {
			t.Errorf("entries[%d].Input = %q, want %q", i, entries[i].Input, w)
		}
	}
}

func TestStoreCount(t *testing.T) {
	s := openTestStore(t)

	n, err := s.Count()
	if err != nil || n != 0 {
		t.Fatalf("Count = %d, %v; want 0, nil", n, err)
	}

	s.Append(&Entry{Input: "x"})
	s.Append(&Entry{Input: "y"})

	n, err = s.Count()
	if err != nil || n != 2 {
		t.Fatalf("Count = %d, %v; want 2, nil", n, err)
	}
}

func TestStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.Append(&Entry{Input: "persisted"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.Get(1)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Input != "persisted" {
		t.Errorf("entry input = %q, want persisted", got.Input)
	}
}
