package parser

import (
	"errors"
	"io"
	"strings"

	"github.com/leapstack-labs/keikaku/pkg/token"
)

// Source turns a rune stream into a position-stamped stream with one rune
// of lookahead.
type Source struct {
	Name string

	r   io.RuneReader
	err error

	peeked *peekedRune
	cur    token.Position // position of the next unread rune
	prev   token.Position // position of the last consumed rune
}

// peekedRune remembers the positions as they were before the rune was read,
// so position queries stay correct while a peek is pending.
type peekedRune struct {
	ch   rune
	ok   bool
	cur  token.Position
	prev token.Position
}

// NewSource creates a Source reading runes from r.
func NewSource(name string, r io.RuneReader) *Source {
	return &Source{Name: name, r: r}
}

// NewStringSource creates a Source over an in-memory string.
func NewStringSource(name, input string) *Source {
	return NewSource(name, strings.NewReader(input))
}

// Next consumes and returns the next rune. It reports false once the
// stream is exhausted.
func (s *Source) Next() (rune, bool) {
	if p := s.peeked; p != nil {
		s.peeked = nil
		return p.ch, p.ok
	}
	return s.read()
}

// Peek returns the next rune without consuming it. Repeated calls return
// the same rune.
func (s *Source) Peek() (rune, bool) {
	if s.peeked == nil {
		cur, prev := s.cur, s.prev
		ch, ok := s.read()
		s.peeked = &peekedRune{ch: ch, ok: ok, cur: cur, prev: prev}
	}
	return s.peeked.ch, s.peeked.ok
}

// CurrentPos returns the position of the next rune to be consumed.
func (s *Source) CurrentPos() token.Position {
	if s.peeked != nil {
		return s.peeked.cur
	}
	return s.cur
}

// PreviousPos returns the position of the most recently consumed rune.
func (s *Source) PreviousPos() token.Position {
	if s.peeked != nil {
		return s.peeked.prev
	}
	return s.prev
}

// Err returns the first read error other than io.EOF, if any.
func (s *Source) Err() error {
	return s.err
}

func (s *Source) read() (rune, bool) {
	if s.err != nil {
		return 0, false
	}
	ch, _, err := s.r.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		return 0, false
	}
	s.prev = s.cur
	s.cur = s.cur.Advance(ch)
	return ch, true
}
