// Package dataset trims large JSON exports of articles before they are
// loaded into the store.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"WebNews/internal/models"

	"github.com/bcicen/jstream"
)

var ErrNotArray = errors.New("dataset: input is not a JSON array")

// Source is read sequentially by the stream decoder while raw records are
// copied out with ReadAt. *os.File and *bytes.Reader both qualify.
type Source interface {
	io.Reader
	io.ReaderAt
}

type Result struct {
	// Total is the number of records in the input.
	Total int
	Kept  int
	// Bytes is the estimated size of the kept records (compact JSON).
	Bytes int64
	// Titles of the kept records, "" when a record has none.
	Titles []string
}

// Shrink copies the longest prefix of the top-level array in src whose
// estimated size stays within limit bytes to dst, as a JSON array indented
// by two spaces. Records keep their key order and non-ASCII text as is.
// The whole input is still read to count Total.
func Shrink(src Source, dst io.Writer, limit int64) (Result, error) {
	var (
		res  Result
		full bool
		out  = bufio.NewWriter(dst)
		buf  bytes.Buffer
	)

	if err := expectArray(src); err != nil {
		return res, err
	}

	dec := jstream.NewDecoder(src, 1)
	stream := dec.Stream()
	// the decoder goroutine exits only once the stream is consumed
	defer func() {
		for range stream {
		}
	}()
	for mv := range stream {
		res.Total++
		if full {
			continue
		}

		raw, err := rawRecord(src, mv)
		if err != nil {
			return res, err
		}
		buf.Reset()
		if err := json.Compact(&buf, raw); err != nil {
			return res, fmt.Errorf("dataset: record %d: %w", res.Total, err)
		}
		size := int64(buf.Len())
		if res.Bytes+size > limit {
			full = true
			continue
		}

		if res.Kept == 0 {
			_, err = out.WriteString("[\n  ")
		} else {
			_, err = out.WriteString(",\n  ")
		}
		if err != nil {
			return res, err
		}
		buf.Reset()
		if err := json.Indent(&buf, raw, "  ", "  "); err != nil {
			return res, fmt.Errorf("dataset: record %d: %w", res.Total, err)
		}
		if _, err := out.Write(buf.Bytes()); err != nil {
			return res, err
		}

		res.Kept++
		res.Bytes += size
		res.Titles = append(res.Titles, titleOf(mv.Value))
	}
	if err := dec.Err(); err != nil {
		return res, fmt.Errorf("dataset: decode: %w", err)
	}

	closing := "\n]"
	if res.Kept == 0 {
		closing = "[]"
	}
	if _, err := out.WriteString(closing); err != nil {
		return res, err
	}
	return res, out.Flush()
}

// expectArray peeks at the first significant byte without moving the
// sequential reader.
func expectArray(src io.ReaderAt) error {
	head := make([]byte, 512)
	n, err := src.ReadAt(head, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("dataset: read: %w", err)
	}
	head = bytes.TrimLeft(head[:n], " \t\r\n\ufeff")
	if len(head) == 0 || head[0] != '[' {
		return ErrNotArray
	}
	return nil
}

// rawRecord returns the record bytes exactly as they appear in src. When
// the offsets do not frame a valid value the decoded value is re-encoded.
func rawRecord(src io.ReaderAt, mv *jstream.MetaValue) ([]byte, error) {
	raw := make([]byte, mv.Length)
	if _, err := src.ReadAt(raw, int64(mv.Offset)); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("dataset: read record at %d: %w", mv.Offset, err)
	}
	raw = bytes.TrimSpace(raw)
	if json.Valid(raw) {
		return raw, nil
	}
	return json.Marshal(mv.Value)
}

func titleOf(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	return models.Article(m).Title()
}
