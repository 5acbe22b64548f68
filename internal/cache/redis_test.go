package cache

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func replyFrom(t *testing.T, wire string) (interface{}, error) {
	t.Helper()
	return readReply(bufio.NewReader(strings.NewReader(wire)))
}

func TestReadReplySimpleTypes(t *testing.T) {
	reply, err := replyFrom(t, "+OK\r\n")
	require.NoError(t, err)
	require.Equal(t, "OK", reply)

	reply, err = replyFrom(t, ":42\r\n")
	require.NoError(t, err)
	require.EqualValues(t, 42, reply)

	_, err = replyFrom(t, "-ERR unknown command\r\n")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown command")
}

func TestReadReplyBulkString(t *testing.T) {
	reply, err := replyFrom(t, "$5\r\nhello\r\n")
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), reply)

	// Nil bulk string (missing key).
	reply, err = replyFrom(t, "$-1\r\n")
	require.NoError(t, err)
	require.Nil(t, reply)
}

func TestReadReplyArray(t *testing.T) {
	reply, err := replyFrom(t, "*2\r\n$1\r\na\r\n:7\r\n")
	require.NoError(t, err)

	items, ok := reply.([]interface{})
	require.True(t, ok)
	require.Len(t, items, 2)
	require.Equal(t, []byte("a"), items[0])
	require.EqualValues(t, 7, items[1])
}

func TestReadReplyNilArray(t *testing.T) {
	reply, err := replyFrom(t, "*-1\r\n")
	require.NoError(t, err)
	require.Nil(t, reply)
}

func TestReadReplyRejectsUnknownPrefix(t *testing.T) {
	_, err := replyFrom(t, "?what\r\n")
	require.Error(t, err)
}
