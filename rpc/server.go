package rpc

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/Siasom1/shinde-chain/log"
	"go.uber.org/zap"
)

//
// ------------------------------------------------------------
// RPC SERVER
// ------------------------------------------------------------
//

type RPCServer struct {
	addr     string
	handlers map[string]RPCHandler
	logger   *log.Logger

	mounts map[string]http.Handler

	srv      *http.Server
	listener net.Listener
}

func NewRPCServer(addr string, handlers map[string]RPCHandler, logger *log.Logger) *RPCServer {
	if logger == nil {
		logger = log.NewNop()
	}
	return &RPCServer{
		addr:     addr,
		handlers: handlers,
		logger:   logger.Named("rpc"),
		mounts:   make(map[string]http.Handler),
	}
}

// Mount serves h under pattern next to JSON-RPC. Call before Start.
func (s *RPCServer) Mount(pattern string, h http.Handler) {
	s.mounts[pattern] = h
}

// Handler is the HTTP handler of the server, usable without Start.
func (s *RPCServer) Handler() http.Handler {
	mux := http.NewServeMux()

	// JSON-RPC
	mux.HandleFunc("/", HandleJSONRPC(s.handlers))

	for pattern, h := range s.mounts {
		mux.Handle(pattern, h)
	}

	// liveness
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// Start binds the address and serves in the background.
func (s *RPCServer) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("listening", zap.String("addr", ln.Addr().String()), zap.Int("methods", len(s.handlers)))

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", zap.Error(err))
		}
	}()
	return nil
}

// Addr is the bound address once started.
func (s *RPCServer) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

func (s *RPCServer) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	s.logger.Info("stopping")
	return s.srv.Shutdown(ctx)
}
