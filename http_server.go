package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loghound-mcp/internal/models"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// HTTPServer wraps the MCP server for HTTP transport
type HTTPServer struct {
	server *mcp.Server
	config models.Config
	log    *zap.Logger
}

// NewHTTPServer creates a new HTTP-based MCP server
func NewHTTPServer(server *mcp.Server, config models.Config, log *zap.Logger) *HTTPServer {
	return &HTTPServer{
		server: server,
		config: config,
		log:    log,
	}
}

// Start starts the HTTP server with streamable HTTP support and blocks
// until a shutdown signal arrives.
func (h *HTTPServer) Start() error {
	addr := h.config.Host + ":" + h.config.Port

	mux := http.NewServeMux()

	// Stateless MCP handler so plain HTTP clients work without session
	// management.
	httpHandler := mcp.NewStreamableHTTPHandler(func(req *http.Request) *mcp.Server {
		return h.server
	}, nil)

	mux.Handle("/", httpHandler)
	mux.Handle("/mcp", httpHandler)
	mux.HandleFunc("/health", h.handleHealth)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	h.log.Info("MCP server listening", zap.String("addr", addr))

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case sig := <-signalChan:
		h.log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}

// handleHealth reports process liveness and build information.
func (h *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": Version,
		"commit":  CommitSHA,
		"built":   BuildTime,
	})
}
