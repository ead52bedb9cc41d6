package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

// ServerOption configures an MCP server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
	log     *logrus.Logger
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// WithLogger sets the logger used for per-call logging.
func WithLogger(log *logrus.Logger) ServerOption {
	return func(c *serverConfig) {
		c.log = log
	}
}

// NewServer creates an MCP server exposing every tool in the registry.
// Tools are registered in registration order so clients see a stable listing.
func NewServer(registry *Registry, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "garmin-mcp",
		version: "1.0.0",
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)

	for _, t := range registry.Tools() {
		handler, ok := registry.Get(t.Name)
		if !ok || handler == nil {
			continue
		}
		mcpTool := mcp.NewToolWithRawSchema(t.Name, t.Description, t.Parameters)
		s.AddTool(mcpTool, bridgeHandler(t.Name, handler, cfg.log))
	}

	return s
}

// bridgeHandler wraps a registry Handler as an MCP tool handler.
// Handler errors become MCP error results rather than protocol failures,
// so a misbehaving tool never tears down the session.
func bridgeHandler(toolName string, handler Handler, log *logrus.Logger) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsJSON := "{}"
		if args := req.GetArguments(); args != nil {
			data, err := json.Marshal(args)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to marshal arguments: %v", err)), nil
			}
			argsJSON = string(data)
		}

		call := ToolCall{
			ID:        uuid.NewString(),
			Name:      toolName,
			Arguments: argsJSON,
		}

		entry := log.WithFields(logrus.Fields{
			"tool":    toolName,
			"call_id": call.ID,
		})
		entry.Debug("tool call started")

		start := time.Now()
		result, err := handler(ctx, call)
		elapsed := time.Since(start)

		if err != nil {
			entry.WithError(err).WithField("duration", elapsed.String()).Warn("tool call failed")
			return mcp.NewToolResultError(err.Error()), nil
		}

		entry.WithField("duration", elapsed.String()).Debug("tool call completed")
		return mcp.NewToolResultText(result), nil
	}
}

// ServeStdio runs an MCP server over stdin/stdout. This is the standard
// transport for servers invoked as subprocesses by MCP clients.
func ServeStdio(registry *Registry, opts ...ServerOption) error {
	s := NewServer(registry, opts...)
	return server.ServeStdio(s)
}

// HTTPConfig holds settings for the streamable HTTP transport.
type HTTPConfig struct {
	Addr         string // listen address, e.g. "127.0.0.1:8080"
	EndpointPath string // MCP endpoint path, defaults to "/mcp"
}

// ServeHTTP runs an MCP server over the streamable HTTP transport at
// cfg.EndpointPath, with /healthz and /readyz probes alongside. The server
// shuts down gracefully when ctx is cancelled.
func ServeHTTP(ctx context.Context, registry *Registry, cfg HTTPConfig, opts ...ServerOption) error {
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = "/mcp"
	}

	s := NewServer(registry, opts...)
	streamable := server.NewStreamableHTTPServer(s,
		server.WithEndpointPath(cfg.EndpointPath),
	)

	mux := http.NewServeMux()
	mux.Handle(cfg.EndpointPath, streamable)
	mux.HandleFunc("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "garmin-mcp",
	})
}
