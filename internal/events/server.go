package events

import (
	"bufio"
	"net"
	"sync/atomic"

	"go.uber.org/zap"
)

// Server exposes the import-event feed over plain tcp, one JSON object
// per line, for tooling that does not speak websocket.
type Server struct {
	Addr string
	Hub  *Hub
	Log  *zap.Logger

	ln     net.Listener
	closed atomic.Bool
}

func NewServer(addr string, hub *Hub, log *zap.Logger) *Server {
	return &Server{Addr: addr, Hub: hub, Log: log}
}

func (s *Server) Run() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.Log.Info("event feed listening", zap.String("addr", s.Addr))

	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.closed.Load() {
				return nil
			}
			continue
		}

		s.Hub.Add(conn)
		s.Hub.welcome(conn)
		s.Log.Info("feed subscriber connected", zap.String("remote", conn.RemoteAddr().String()))

		go func(c net.Conn) {
			defer func() {
				s.Hub.Remove(c)
				s.Log.Info("feed subscriber disconnected", zap.String("remote", c.RemoteAddr().String()))
			}()

			// subscribers only read; consume and drop anything they send
			sc := bufio.NewScanner(c)
			for sc.Scan() {
			}
		}(conn)
	}
}

func (s *Server) Close() error {
	s.closed.Store(true)
	if s.ln != nil {
		return s.ln.Close()
	}
	return nil
}
