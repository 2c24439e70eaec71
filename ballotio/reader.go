// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballotio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/danielhkuo/quickly-runoff/irv"
)

// Separator starts the line that closes a ballot
const Separator = '%'

// LineError records the input line a read failed on
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Reader reads ballots one at a time
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next ballot, or io.EOF when the input is exhausted.
func (r *Reader) Next() (*irv.Ballot, error) {
	b := irv.NewBallot()
	started := false

	for r.scanner.Scan() {
		r.line++
		text := strings.TrimRight(r.scanner.Text(), "\r")
		started = true

		if strings.HasPrefix(text, string(Separator)) {
			return b, nil
		}

		// Lines without letters carry no candidate
		if irv.CleanName(text) == "" {
			continue
		}

		if err := b.Insert(text); err != nil {
			return nil, &LineError{Line: r.line, Err: err}
		}
	}

	if err := r.scanner.Err(); err != nil {
		return nil, &LineError{Line: r.line + 1, Err: err}
	}

	// Keep an unterminated final ballot if it ranked anyone
	if started && b.Len() > 0 {
		return b, nil
	}
	return nil, io.EOF
}

// ReadBox reads every ballot from r into a new box
func ReadBox(r io.Reader) (*irv.Box, error) {
	box := irv.NewBox()
	reader := NewReader(r)
	for {
		b, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return box, nil
		}
		if err != nil {
			return nil, err
		}
		box.Insert(b)
	}
}

// WriteBox renders every ballot in box, each followed by a separator line
func WriteBox(w io.Writer, box *irv.Box) error {
	for _, b := range box.Ballots() {
		if err := b.Render(w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%c\n", Separator); err != nil {
			return err
		}
	}
	return nil
}
