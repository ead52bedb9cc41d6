// Command garmin-mcp is an MCP server exposing Garmin Connect data as tools.
//
// It authenticates with a previously obtained OAuth2 token (from the
// GARMIN_OAUTH_TOKEN environment variable or the token store directory) and
// serves over stdio by default, or streamable HTTP when
// GARMIN_MCP_TRANSPORT=http.
//
// Configuration for Claude Desktop:
//
//	{
//	    "mcpServers": {
//	        "garmin": {
//	            "command": "garmin-mcp"
//	        }
//	    }
//	}
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/spetersoncode/garmin-mcp/garmin"
	"github.com/spetersoncode/garmin-mcp/internal/logging"
	"github.com/spetersoncode/garmin-mcp/mcpserver"
	"github.com/spetersoncode/garmin-mcp/retry"
	"github.com/spetersoncode/garmin-mcp/tools"
)

const version = "1.0.0"

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		logrus.Fatalf("config: %s", err)
	}

	log := logging.Setup(logging.SetupParams{
		Level:      cfg.LogLevel,
		FormatJSON: cfg.LogFormatJSON,
	})

	token, err := garmin.LoadToken(cfg.TokenJSON, cfg.TokenDir)
	if err != nil {
		log.Fatalf("loading Garmin token: %s", err)
	}

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = cfg.RetryAttempts

	client := garmin.NewClient(token,
		garmin.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		garmin.WithRateLimit(cfg.RateLimitPerMinute),
		garmin.WithRetry(retryCfg),
		garmin.WithLogger(log.WithField("component", "garmin")),
	)

	registry := mcpserver.NewRegistry()
	if err := tools.New(client).RegisterAll(registry); err != nil {
		log.Fatalf("registering tools: %s", err)
	}
	log.WithField("tools", registry.Len()).Info("tools registered")

	opts := []mcpserver.ServerOption{
		mcpserver.WithName("garmin-mcp"),
		mcpserver.WithVersion(version),
		mcpserver.WithLogger(log),
	}

	switch cfg.Transport {
	case "stdio":
		log.Info("serving MCP over stdio")
		if err := mcpserver.ServeStdio(registry, opts...); err != nil {
			log.Fatalf("stdio server: %s", err)
		}

	case "http":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.WithFields(logrus.Fields{
			"addr": cfg.Addr(),
			"path": cfg.Path,
		}).Info("serving MCP over streamable HTTP")

		err := mcpserver.ServeHTTP(ctx, registry, mcpserver.HTTPConfig{
			Addr:         cfg.Addr(),
			EndpointPath: cfg.Path,
		}, opts...)
		if err != nil {
			log.Fatalf("http server: %s", err)
		}
		log.Info("server stopped")
	}
}
