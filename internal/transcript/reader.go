package transcript

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a transcript source.
type Format string

const (
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

const maxLineSize = 1 << 20

// FormatFor picks a format from a file name, defaulting to JSONL.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSONL
	}
}

// ParseFormat validates a format name. Empty means JSONL.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatJSONL, "json", "ndjson":
		return FormatJSONL, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("transcript: unknown format %q", s)
	}
}

// Read decodes records from r and sends them on the returned channel, which
// is closed at end of input or when ctx is cancelled. Undecodable JSONL lines
// are delivered with Err set so the caller can skip and count them; a YAML
// syntax error ends the stream after delivering the error.
func Read(ctx context.Context, r io.Reader, f Format) <-chan Record {
	ch := make(chan Record)
	go func() {
		defer close(ch)
		send := func(rec Record) bool {
			select {
			case ch <- rec:
				return true
			case <-ctx.Done():
				return false
			}
		}
		if f == FormatYAML {
			readYAML(r, send)
			return
		}
		readJSONL(r, send)
	}()
	return ch
}

// ReadAll decodes every record in r.
func ReadAll(r io.Reader, f Format) ([]Record, error) {
	var (
		out  []Record
		errs []error
	)
	for rec := range Read(context.Background(), r, f) {
		if rec.Err != nil {
			errs = append(errs, rec.Err)
			continue
		}
		out = append(out, rec)
	}
	return out, errors.Join(errs...)
}

// DecodeJSON decodes a single JSON record.
func DecodeJSON(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("transcript: decode: %w", err)
	}
	return rec, nil
}

func readJSONL(r io.Reader, send func(Record) bool) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		data := bytes.TrimSpace(sc.Bytes())
		if len(data) == 0 || data[0] == '#' {
			continue
		}
		rec, err := DecodeJSON(data)
		if err != nil {
			rec.Err = fmt.Errorf("line %d: %w", line, err)
		}
		rec.Line = line
		if !send(rec) {
			return
		}
	}
	if err := sc.Err(); err != nil {
		send(Record{Err: fmt.Errorf("transcript: read: %w", err), Line: line})
	}
}

func readYAML(r io.Reader, send func(Record) bool) {
	dec := yaml.NewDecoder(r)
	for doc := 1; ; doc++ {
		var rec Record
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			send(Record{Err: fmt.Errorf("transcript: document %d: %w", doc, err), Line: doc})
			return
		}
		rec.Line = doc
		if !send(rec) {
			return
		}
	}
}
