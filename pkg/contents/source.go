package contents

import (
	"bufio"
	"compress/gzip"
	"io"
	"unicode/utf8"

	"debtop/pkg/errors"
)

// maxLineSize bounds a single index line. Contents lines are well under
// this, but bufio.Scanner's 64 KiB default is too tight for indices that
// list a package on thousands of paths per line.
const maxLineSize = 1 << 20

// LineSource decodes a gzip-compressed Contents index into a lazy,
// forward-only sequence of text lines. The whole decompressed document is
// never materialized; lines are produced one at a time from the underlying
// stream.
//
// A LineSource is single-pass: once Next returns false the source is
// exhausted and the underlying stream must be re-opened for another pass.
// Close releases the underlying reader and is safe to call on every exit
// path, including mid-iteration abort.
type LineSource struct {
	rc      io.Closer
	gz      *gzip.Reader
	scanner *bufio.Scanner

	line    string
	err     error
	valid   int // lines produced
	dropped int // lines dropped as undecodable

	// WarnFunc, if set, is called once per dropped undecodable line.
	// It must not retain its argument.
	WarnFunc func(line []byte)
}

// NewLineSource wraps r, which must yield valid gzip-compressed text.
// If r is an io.Closer it is closed together with the source. A stream
// whose header is not gzip fails immediately with a DECOMPRESSION_ERROR.
func NewLineSource(r io.Reader) (*LineSource, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		if c, ok := r.(io.Closer); ok {
			c.Close()
		}
		return nil, errors.Wrap(errors.ErrCodeDecompress, err, "not a gzip stream")
	}

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	s := &LineSource{gz: gz, scanner: scanner}
	if c, ok := r.(io.Closer); ok {
		s.rc = c
	}
	return s, nil
}

// Next advances to the next decodable line, returning false at end of
// stream or on error. Undecodable lines (invalid UTF-8) are dropped and
// reported through WarnFunc; they never abort the scan on their own.
func (s *LineSource) Next() bool {
	if s.err != nil {
		return false
	}
	for s.scanner.Scan() {
		b := s.scanner.Bytes()
		if !utf8.Valid(b) {
			s.dropped++
			if s.WarnFunc != nil {
				s.WarnFunc(b)
			}
			continue
		}
		s.line = string(b)
		s.valid++
		return true
	}
	s.finish()
	return false
}

// Line returns the current line with its trailing newline stripped.
// Only valid after a true return from Next.
func (s *LineSource) Line() string { return s.line }

// Err returns the terminal error of the source, if any. A truncated or
// corrupt gzip stream surfaces as a DECOMPRESSION_ERROR. A document that
// produced no decodable line despite containing data surfaces as an
// ENCODING_ERROR: one bad line is recoverable, a wholly unreadable
// document is not.
func (s *LineSource) Err() error { return s.err }

// Lines returns the number of decoded lines produced so far.
func (s *LineSource) Lines() int { return s.valid }

// Dropped returns the number of undecodable lines skipped so far.
func (s *LineSource) Dropped() int { return s.dropped }

// Close releases the gzip reader and the underlying stream. It is
// idempotent and must be called regardless of how iteration ended.
func (s *LineSource) Close() error {
	err := s.gz.Close()
	if s.rc != nil {
		if cerr := s.rc.Close(); err == nil {
			err = cerr
		}
		s.rc = nil
	}
	return err
}

func (s *LineSource) finish() {
	if err := s.scanner.Err(); err != nil {
		s.err = errors.Wrap(errors.ErrCodeDecompress, err, "truncated or corrupt gzip stream")
		return
	}
	if s.valid == 0 && s.dropped > 0 {
		s.err = errors.New(errors.ErrCodeEncoding, "index is not valid UTF-8 text (%d undecodable lines)", s.dropped)
	}
}
