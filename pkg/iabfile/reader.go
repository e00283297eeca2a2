package iabfile

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

const (
	// Delimiter separates fields in the include and exclude lists.
	Delimiter = '|'

	// Comment marks a line that is not parsed at all.
	Comment = '#'
)

// decode wraps r with an ISO-8859-1 decoder. Reference files are published
// in Latin-1; decoding keeps non-ASCII bytes intact as runes.
func decode(r io.Reader) io.Reader {
	return charmap.ISO8859_1.NewDecoder().Reader(r)
}

// Record is a single data line of a pipe-delimited reference list.
type Record struct {
	// Line is the 1-based line number the record starts at.
	Line   int
	fields []string
}

// NewRecord builds a record from raw field values. Values are trimmed.
func NewRecord(line int, fields ...string) Record {
	trimmed := make([]string, len(fields))
	for i, f := range fields {
		trimmed[i] = strings.TrimSpace(f)
	}
	return Record{Line: line, fields: trimmed}
}

// Len returns the number of fields in the record.
func (r Record) Len() int { return len(r.fields) }

// Has reports whether field i exists.
func (r Record) Has(i int) bool { return i >= 0 && i < len(r.fields) }

// String returns the trimmed field i or "" when the record is shorter.
func (r Record) String(i int) string {
	if !r.Has(i) {
		return ""
	}
	return r.fields[i]
}

// Flag parses field i as a "1"/"0" flag.
// Missing and empty fields read as false.
func (r Record) Flag(i int) (bool, error) {
	v, err := ParseFlag(r.String(i))
	if err != nil {
		return false, fmt.Errorf("%w: field %d: %q", err, i, r.String(i))
	}
	return v, nil
}

// Reader yields records from a pipe-delimited reference list.
type Reader struct {
	csv *csv.Reader
}

// NewReader returns a Reader over a Latin-1 encoded stream.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(decode(r))
	cr.Comma = Delimiter
	cr.Comment = Comment
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return &Reader{csv: cr}
}

// Read returns the next record or io.EOF when the stream is exhausted.
func (r *Reader) Read() (Record, error) {
	fields, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, errors.Join(ErrReadFailed, err)
	}
	line, _ := r.csv.FieldPos(0)
	return NewRecord(line, fields...), nil
}

// Line is a single non-blank, non-comment line of a plain list.
type Line struct {
	Number int
	Text   string
}

// LineReader yields trimmed data lines from a plain one-entry-per-line list.
type LineReader struct {
	scanner *bufio.Scanner
	number  int
}

// NewLineReader returns a LineReader over a Latin-1 encoded stream.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{scanner: bufio.NewScanner(decode(r))}
}

// Read returns the next data line or io.EOF.
func (r *LineReader) Read() (Line, error) {
	for r.scanner.Scan() {
		r.number++
		text := strings.TrimSpace(r.scanner.Text())
		if text == "" || text[0] == Comment {
			continue
		}
		return Line{Number: r.number, Text: text}, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Line{}, errors.Join(ErrReadFailed, err)
	}
	return Line{}, io.EOF
}
