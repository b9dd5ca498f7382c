package repl

import (
	"bufio"
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"emberdb/internal/resp"
)

func TestSlaveHandshakeSendsExactCommands(t *testing.T) {
	server, client := net.Pipe()
	slave := NewSlave("unused", "6381")
	slave.conn = client
	slave.reader = bufio.NewReader(client)
	slave.writer = bufio.NewWriter(client)

	done := make(chan error, 1)
	go func() { done <- slave.performHandshake() }()

	r := bufio.NewReader(server)
	w := bufio.NewWriter(server)

	name, _, errReply, err := resp.DecodeCommand(r)
	require.NoError(t, err)
	require.Nil(t, errReply)
	require.Equal(t, "PING", name)
	require.NoError(t, resp.Encode(w, resp.Simple("PONG")))
	require.NoError(t, w.Flush())

	name, args, errReply, err := resp.DecodeCommand(r)
	require.NoError(t, err)
	require.Nil(t, errReply)
	require.Equal(t, "REPLCONF", name)
	require.Equal(t, "listening-port", args[0].Str)
	require.Equal(t, "6381", args[1].Str)
	require.NoError(t, resp.Encode(w, resp.Simple("OK")))
	require.NoError(t, w.Flush())

	name, args, errReply, err = resp.DecodeCommand(r)
	require.NoError(t, err)
	require.Nil(t, errReply)
	require.Equal(t, "REPLCONF", name)
	require.Equal(t, "capa", args[0].Str)
	require.Equal(t, "psync2", args[1].Str)
	require.NoError(t, resp.Encode(w, resp.Simple("OK")))
	require.NoError(t, w.Flush())

	name, args, errReply, err = resp.DecodeCommand(r)
	require.NoError(t, err)
	require.Nil(t, errReply)
	require.Equal(t, "PSYNC", name)
	require.Equal(t, "?", args[0].Str)
	require.Equal(t, "-1", args[1].Str)
	require.NoError(t, resp.Encode(w, resp.Simple("FULLRESYNC abc123 0")))
	require.NoError(t, w.Flush())

	_, err = w.WriteString("$0\r\n")
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	require.NoError(t, <-done)
	require.Equal(t, "abc123", slave.RunID())
	server.Close()
}
