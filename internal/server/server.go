// Package server is the connection actor (C8): it accepts TCP
// connections, gives each one a Session, and runs a decode/dispatch/
// encode loop against the shared command Registry.
package server

import (
	"net"
	"sync/atomic"

	"emberdb/internal/cmd"
	"emberdb/internal/config"
	"emberdb/internal/logger"
	"emberdb/internal/rdbfile"
	"emberdb/internal/repl"
	"emberdb/internal/store"
)

// Config is everything the listener needs to start.
type Config struct {
	Addr         string
	Settings     *config.Settings
	RequirePass  string
	MaxConns     int
}

// Server owns the listener and the shared App handed to every Session.
type Server struct {
	cfg Config
	ln  net.Listener
	app *cmd.App

	connSemaphore chan struct{}
	activeConns   int32
}

// New wires the keyspace, replication manager and command registry
// into a shared App, loading any existing snapshot from disk first
// (spec §4.4/§6's --dir/--dbfilename pair).
func New(cfg Config) *Server {
	ks := store.NewKeyspace()

	snapshotPath := cfg.Settings.Dir + "/" + cfg.Settings.DBFilename
	if err := rdbfile.Load(snapshotPath, ks); err != nil {
		logger.Warnf("snapshot load from %s failed: %v", snapshotPath, err)
	}

	role := repl.RoleMaster
	if cfg.Settings.InstanceType == config.Slave {
		role = repl.RoleSlave
	}
	replManager := repl.NewManager(role, cfg.Settings.MasterReplID, 1024*1024)

	app := cmd.NewApp(ks, cfg.Settings, replManager)
	app.RequirePass = cfg.RequirePass

	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 10000
	}

	return &Server{
		cfg:           cfg,
		app:           app,
		connSemaphore: make(chan struct{}, maxConns),
	}
}

// App exposes the shared application handle, e.g. for the --import-rdb
// startup path to load a dump into the same keyspace the listener
// serves.
func (s *Server) App() *cmd.App { return s.app }

func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		logger.Errorf("failed to start server on %s: %v", s.cfg.Addr, err)
		return err
	}
	s.ln = ln
	logger.Infof("server listening on %s", ln.Addr().String())
	go s.serve()
	return nil
}

func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

func (s *Server) Close() error {
	logger.Info("closing server")
	if s.ln != nil {
		return s.ln.Close()
	}
	return nil
}

func (s *Server) serve() {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("panic in accept loop: %v", r)
		}
	}()

	for {
		c, err := s.ln.Accept()
		if err != nil {
			logger.Debugf("accept stopped: %v", err)
			return
		}

		select {
		case s.connSemaphore <- struct{}{}:
			atomic.AddInt32(&s.activeConns, 1)
		default:
			logger.Warnf("connection limit reached, rejecting %s", c.RemoteAddr())
			c.Close()
			continue
		}

		go func(conn net.Conn) {
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("panic in connection handler: %v", r)
				}
				atomic.AddInt32(&s.activeConns, -1)
				<-s.connSemaphore
			}()
			s.handle(conn)
		}(c)
	}
}
