package replay

import (
	"bytes"
	"io"
	"testing"
)

type testPayload struct {
	GameID string
	Tick   int
}

func TestWriteAndReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.WriteRecord("start", testPayload{GameID: "abc", Tick: 0}); err != nil {
		t.Fatalf("WriteRecord start: %v", err)
	}
	if err := w.WriteRecord("act", testPayload{GameID: "abc", Tick: 1}); err != nil {
		t.Fatalf("WriteRecord act: %v", err)
	}

	r := NewReader(&buf)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Kind != "start" || records[1].Kind != "act" {
		t.Errorf("kinds = %q, %q, want start, act", records[0].Kind, records[1].Kind)
	}

	var decoded testPayload
	if err := Decode(records[1], &decoded); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.GameID != "abc" || decoded.Tick != 1 {
		t.Errorf("decoded = %+v, want {abc 1}", decoded)
	}
}

func TestReadRecordReturnsEOFAtEnd(t *testing.T) {
	var buf bytes.Buffer
	r := NewReader(&buf)
	if _, err := r.ReadRecord(); err != io.EOF {
		t.Errorf("err = %v, want io.EOF on empty stream", err)
	}
}
