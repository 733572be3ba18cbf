// Package stream implements spec component A: a pull-based source of
// tokens with unbounded lookahead.
//
// A Stream wraps a lazy token producer (anything with a NextToken
// method, such as *lexer.Lexer) and buffers only as many tokens as the
// largest live Peek has asked for. It is single-consumer and not
// goroutine-safe, matching the single-threaded pipeline described by
// the compiler's concurrency model: the parser is its sole owner.
package stream

import "github.com/skx/cc/token"

// Source produces one token at a time; EOF is a sentinel, not an error.
type Source interface {
	NextToken() token.Token
}

// Stream buffers tokens from a Source to support Peek(k) for any k>=0.
type Stream struct {
	source Source
	buf    []token.Token
	eof    token.Token
}

// New wraps src in a Stream.
func New(src Source) *Stream {
	return &Stream{source: src}
}

// fill ensures the buffer holds at least n+1 tokens (indices 0..n),
// stopping early once EOF has been buffered.
func (s *Stream) fill(n int) {
	for len(s.buf) <= n {
		if len(s.buf) > 0 && s.buf[len(s.buf)-1].Type == token.EOF {
			return
		}
		s.buf = append(s.buf, s.source.NextToken())
	}
}

// Peek returns the token k positions ahead of the cursor without
// consuming anything; Peek(0) is the next token Consume would return.
// Peeking past end-of-stream is idempotent and returns the EOF token.
func (s *Stream) Peek(k int) token.Token {
	s.fill(k)
	if k < len(s.buf) {
		return s.buf[k]
	}
	return s.buf[len(s.buf)-1]
}

// Consume returns the next token and advances the cursor past it.
// Consuming past end-of-stream keeps returning the EOF token.
func (s *Stream) Consume() token.Token {
	tok := s.Peek(0)
	if len(s.buf) > 0 {
		s.buf = s.buf[1:]
	}
	return tok
}
