package stream

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skx/cc/lexer"
	"github.com/skx/cc/token"
)

func TestPeekDoesNotConsume(t *testing.T) {
	s := New(lexer.New("1 + 2"))

	require.Equal(t, "1", s.Peek(0).Literal)
	require.Equal(t, "1", s.Peek(0).Literal)
	require.Equal(t, token.Type(token.PLUS), s.Peek(1).Type)
	require.Equal(t, "2", s.Peek(2).Literal)

	require.Equal(t, "1", s.Consume().Literal)
	require.Equal(t, token.Type(token.PLUS), s.Consume().Type)
	require.Equal(t, "2", s.Consume().Literal)
}

func TestUnboundedLookahead(t *testing.T) {
	s := New(lexer.New("1 2 3 4 5"))

	require.Equal(t, "5", s.Peek(4).Literal)
	require.Equal(t, "1", s.Peek(0).Literal)
}

func TestPeekPastEOFIsIdempotent(t *testing.T) {
	s := New(lexer.New("1"))

	require.Equal(t, "1", s.Consume().Literal)
	first := s.Peek(0)
	require.Equal(t, token.Type(token.EOF), first.Type)

	for i := 0; i < 5; i++ {
		require.Equal(t, first, s.Peek(i))
	}
	require.Equal(t, token.Type(token.EOF), s.Consume().Type)
	require.Equal(t, token.Type(token.EOF), s.Consume().Type)
}
