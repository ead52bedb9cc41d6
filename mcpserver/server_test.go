package mcpserver

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestNewServer(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Tool{
		Name:        "ping",
		Description: "Respond with pong",
	}, func(ctx context.Context, call ToolCall) (string, error) {
		return "pong", nil
	}))

	s := NewServer(r, WithName("test-server"), WithVersion("0.1.0"), WithLogger(quietLogger()))
	assert.NotNil(t, s)
}

func TestBridgeHandler(t *testing.T) {
	t.Run("returns text result on success", func(t *testing.T) {
		var gotCall ToolCall
		handler := bridgeHandler("echo", func(ctx context.Context, call ToolCall) (string, error) {
			gotCall = call
			return "echoed: " + call.Arguments, nil
		}, quietLogger())

		req := mcp.CallToolRequest{}
		req.Params.Name = "echo"
		req.Params.Arguments = map[string]any{"msg": "hi"}

		result, err := handler(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.False(t, result.IsError)

		text, ok := result.Content[0].(mcp.TextContent)
		require.True(t, ok)
		assert.JSONEq(t, `{"msg":"hi"}`, text.Text[len("echoed: "):])

		assert.Equal(t, "echo", gotCall.Name)
		assert.NotEmpty(t, gotCall.ID)
	})

	t.Run("nil arguments become empty object", func(t *testing.T) {
		handler := bridgeHandler("bare", func(ctx context.Context, call ToolCall) (string, error) {
			return call.Arguments, nil
		}, quietLogger())

		result, err := handler(context.Background(), mcp.CallToolRequest{})
		require.NoError(t, err)

		text := result.Content[0].(mcp.TextContent)
		assert.Equal(t, "{}", text.Text)
	})

	t.Run("handler error becomes error result not protocol error", func(t *testing.T) {
		handler := bridgeHandler("fail", func(ctx context.Context, call ToolCall) (string, error) {
			return "", errors.New("boom")
		}, quietLogger())

		result, err := handler(context.Background(), mcp.CallToolRequest{})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError)

		text := result.Content[0].(mcp.TextContent)
		assert.Equal(t, "boom", text.Text)
	})
}
