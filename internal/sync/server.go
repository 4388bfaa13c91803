package sync

import (
	"bufio"
	"errors"
	"net"
	"sync"

	"github.com/rs/zerolog/log"
)

// Server accepts raw TCP listeners of the hub.
type Server struct {
	Addr string
	Hub  *Hub

	mu sync.Mutex
	ln net.Listener
}

func NewServer(addr string, hub *Hub) *Server {
	return &Server{Addr: addr, Hub: hub}
}

// Listen binds the address. Run calls it when the server is not bound yet.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	return nil
}

// ListenAddr returns the bound address, or nil before Listen.
func (s *Server) ListenAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Run accepts clients until Close. It returns nil after Close.
func (s *Server) Run() error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln == nil {
		if err := s.Listen(); err != nil {
			return err
		}
		ln = s.listener()
	}
	log.Info().Str("component", "tcp-sync").Str("addr", ln.Addr().String()).Msg("listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			continue
		}

		s.Hub.Add(conn)
		s.Hub.Welcome(conn)
		log.Info().Str("component", "tcp-sync").Str("remote", conn.RemoteAddr().String()).Msg("client connected")

		go func(c net.Conn) {
			defer func() {
				s.Hub.Remove(c)
				log.Info().Str("component", "tcp-sync").Str("remote", c.RemoteAddr().String()).Msg("client disconnected")
			}()

			// incoming lines are ignored
			sc := bufio.NewScanner(c)
			for sc.Scan() {
			}
		}(conn)
	}
}

func (s *Server) listener() net.Listener {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ln
}

// Close stops accepting and disconnects the hub's clients.
func (s *Server) Close() error {
	ln := s.listener()
	s.Hub.Close()
	if ln == nil {
		return nil
	}
	return ln.Close()
}
