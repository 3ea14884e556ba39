package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// LoggingMiddleware returns middleware that logs all incoming method calls.
// Tool calls that return a tool-level error are logged as warnings.
func LoggingMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()

			result, err := next(ctx, method, req)

			duration := time.Since(start)
			attrs := append([]slog.Attr{
				slog.String("method", method),
				slog.Int64("duration_ms", duration.Milliseconds()),
			}, requestAttrs(req)...)

			switch {
			case err != nil:
				attrs = append(attrs, slog.String("error", err.Error()))
				slog.LogAttrs(ctx, slog.LevelError, "method call failed", attrs...)
			case isToolError(result):
				slog.LogAttrs(ctx, slog.LevelWarn, "tool call returned error", attrs...)
			default:
				slog.LogAttrs(ctx, slog.LevelInfo, "method call completed", attrs...)
			}

			return result, err
		}
	}
}

// requestAttrs names the tool, prompt or resource a request targets.
func requestAttrs(req sdkmcp.Request) []slog.Attr {
	if req == nil {
		return nil
	}
	switch p := req.GetParams().(type) {
	case *sdkmcp.CallToolParamsRaw:
		return []slog.Attr{slog.String("tool", p.Name)}
	case *sdkmcp.ReadResourceParams:
		return []slog.Attr{slog.String("uri", p.URI)}
	case *sdkmcp.GetPromptParams:
		return []slog.Attr{slog.String("prompt", p.Name)}
	}
	return nil
}

func isToolError(result sdkmcp.Result) bool {
	r, ok := result.(*sdkmcp.CallToolResult)
	return ok && r != nil && r.IsError
}
