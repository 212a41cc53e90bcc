package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"pastebox/config"
	"pastebox/internal/services"
	"pastebox/models"
)

// TCPServer accepts raw pastes piped over TCP (netcat style). Bytes arrive
// without a file name, so they are stored with the reserved requested name
// "-" and resolve to a "stdin"-based name unless random naming is on.
type TCPServer struct {
	config   *config.Config
	service  *services.PasteService
	listener net.Listener
	logger   *slog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewTCPServer creates a new TCP server
func NewTCPServer(cfg *config.Config, service *services.PasteService, logger *slog.Logger) *TCPServer {
	ctx, cancel := context.WithCancel(context.Background())

	return &TCPServer{
		config:  cfg,
		service: service,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start starts the TCP server
func (s *TCPServer) Start() error {
	addr := fmt.Sprintf(":%d", s.config.TCPPort)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.listener = listener
	s.logger.Info("TCP server started", "address", addr)

	go s.acceptConnections()

	return nil
}

// Stop stops the TCP server
func (s *TCPServer) Stop() error {
	s.cancel()

	if s.listener != nil {
		return s.listener.Close()
	}

	return nil
}

func (s *TCPServer) acceptConnections() {
	for {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		conn, err := s.listener.Accept()
		if err != nil {
			if s.ctx.Err() != nil {
				return // Server is shutting down
			}
			s.logger.Error("Failed to accept connection", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

func (s *TCPServer) handleConnection(conn net.Conn) {
	defer func() {
		if err := conn.Close(); err != nil {
			s.logger.Debug("Failed to close connection", "error", err)
		}
	}()

	if err := conn.SetReadDeadline(time.Now().Add(30 * time.Second)); err != nil {
		s.logger.Error("Failed to set read deadline", "error", err)
		return
	}

	clientAddr := conn.RemoteAddr().String()
	s.logger.Info("New TCP connection", "client", clientAddr)

	writeResponse := func(message string) {
		if _, err := conn.Write([]byte(message)); err != nil {
			s.logger.Debug("Failed to write response", "client", clientAddr, "error", err)
		}
	}

	content, err := io.ReadAll(io.LimitReader(conn, s.config.MaxContentLength))
	if err != nil {
		s.logger.Error("Failed to read from connection", "client", clientAddr, "error", err)
		return
	}
	if len(content) == 0 {
		s.logger.Warn("Empty paste received", "client", clientAddr)
		writeResponse("Error: Empty paste\n")
		return
	}

	paste := &models.Paste{Data: content, Type: models.FilePaste}
	name, err := s.service.StoreFile(paste, "-")
	if err != nil {
		s.logger.Error("Failed to store paste", "client", clientAddr, "error", err)
		writeResponse("Error: Could not save paste\n")
		return
	}

	writeResponse(fmt.Sprintf("http://%s:%d/%s\n", hostname(conn), s.config.Port, name))

	s.logger.Info("Paste created via TCP",
		"name", name,
		"client", clientAddr,
		"size", len(content))
}

// hostname derives the address clients should fetch pastes from.
func hostname(conn net.Conn) string {
	host, _, err := net.SplitHostPort(conn.LocalAddr().String())
	if err != nil {
		return "localhost"
	}
	return host
}
