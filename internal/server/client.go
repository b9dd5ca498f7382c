package server

import (
	"bufio"
	"io"
	"net"

	"emberdb/internal/cmd"
	"emberdb/internal/logger"
	"emberdb/internal/resp"
)

// handle runs one connection's decode/dispatch/encode loop until the
// client disconnects or the underlying stream fails. A malformed command
// gets an error reply but does not end the loop; a framing error that
// DecodeCommand returns as an error (such as a missing CRLF) ends it.
func (s *Server) handle(conn net.Conn) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("panic handling %s: %v", conn.RemoteAddr(), r)
		}
		conn.Close()
	}()

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
		_ = tcpConn.SetKeepAlive(true)
	}

	clientID := s.app.NextClientID()
	session := cmd.NewSession(s.app, clientID, conn.RemoteAddr().String(), conn)
	logger.Debugf("client %d connected from %s", clientID, session.RemoteAddr)

	reader := bufio.NewReader(conn)
	writer := bufio.NewWriter(conn)

	for {
		name, args, errReply, err := resp.DecodeCommand(reader)
		if err != nil {
			if err != io.EOF {
				logger.Debugf("client %d decode error: %v", clientID, err)
			}
			return
		}
		if errReply != nil {
			if err := resp.UltraEncode(writer, *errReply); err != nil {
				logger.Debugf("client %d encode error: %v", clientID, err)
				return
			}
			if err := writer.Flush(); err != nil {
				logger.Debugf("client %d flush error: %v", clientID, err)
				return
			}
			continue
		}

		reply := s.app.Registry.Dispatch(session, name, args)
		if err := resp.UltraEncode(writer, reply); err != nil {
			logger.Debugf("client %d encode error: %v", clientID, err)
			return
		}
		if err := writer.Flush(); err != nil {
			logger.Debugf("client %d flush error: %v", clientID, err)
			return
		}

		for _, action := range session.DrainDeferred() {
			if _, err := writer.Write(action()); err != nil {
				logger.Debugf("client %d deferred write error: %v", clientID, err)
				return
			}
			if err := writer.Flush(); err != nil {
				logger.Debugf("client %d deferred flush error: %v", clientID, err)
				return
			}
		}
	}
}
