// Package replay records every start/act request and response to a local
// file so a game can be replayed later, enabled whenever
// Config.ReplaysDir is non-empty.
//
// Grounded on original_source/src/swoq.rs's ReplayFile (write every
// request immediately followed by its response, newest at the end,
// flushing after each write). The framing differs intentionally:
// swoq.rs length-prefixes protobuf messages with a varint; here each
// record is encoding/gob-encoded (there is no protobuf schema in this
// module) behind a fixed 4-byte big-endian length prefix, since gob needs
// a self-describing boundary and the teacher's codebase has no existing
// length-delimited-stream convention to borrow from.
package replay

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
)

// Record is one logged request or response, tagged by kind so a Reader
// can reconstruct the request/response pairing without depending on
// internal/transport's wire types directly.
type Record struct {
	Kind    string
	Payload []byte
}

// Writer appends length-delimited gob-encoded records to an underlying
// writer, one Write call per record so each is durable as soon as it
// returns (the caller typically wraps an *os.File, which has no
// internal buffering to flush).
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer appending to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteRecord encodes payload as a gob value under kind and appends it.
func (rw *Writer) WriteRecord(kind string, payload any) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(payload); err != nil {
		return fmt.Errorf("replay: encode %s record: %w", kind, err)
	}
	record := Record{Kind: kind, Payload: buf.Bytes()}

	var framed bytes.Buffer
	if err := gob.NewEncoder(&framed).Encode(record); err != nil {
		return fmt.Errorf("replay: encode %s frame: %w", kind, err)
	}

	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(framed.Len()))
	if _, err := rw.w.Write(length[:]); err != nil {
		return fmt.Errorf("replay: write %s length: %w", kind, err)
	}
	if _, err := rw.w.Write(framed.Bytes()); err != nil {
		return fmt.Errorf("replay: write %s payload: %w", kind, err)
	}
	return nil
}

// Reader reads back the records a Writer produced, in order.
type Reader struct {
	r io.Reader
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadRecord reads the next record, or io.EOF once the stream is
// exhausted.
func (rr *Reader) ReadRecord() (Record, error) {
	var length [4]byte
	if _, err := io.ReadFull(rr.r, length[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return Record{}, fmt.Errorf("replay: truncated length prefix: %w", err)
		}
		return Record{}, err
	}

	n := binary.BigEndian.Uint32(length[:])
	buf := make([]byte, n)
	if _, err := io.ReadFull(rr.r, buf); err != nil {
		return Record{}, fmt.Errorf("replay: truncated record: %w", err)
	}

	var record Record
	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&record); err != nil {
		return Record{}, fmt.Errorf("replay: decode frame: %w", err)
	}
	return record, nil
}

// ReadAll reads every record until EOF.
func (rr *Reader) ReadAll() ([]Record, error) {
	var records []Record
	for {
		record, err := rr.ReadRecord()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
}

// Decode unmarshals a record's payload into out, which must match the
// type originally passed to WriteRecord.
func Decode(record Record, out any) error {
	if err := gob.NewDecoder(bytes.NewReader(record.Payload)).Decode(out); err != nil {
		return fmt.Errorf("replay: decode %s payload: %w", record.Kind, err)
	}
	return nil
}
