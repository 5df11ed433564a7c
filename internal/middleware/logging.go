package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with its procedure, request id, duration and error code.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure
			requestID := GetRequestID(ctx)

			resp, err := next(ctx, req)

			duration := time.Since(start).Milliseconds()
			var connectErr *connect.Error
			switch {
			case err == nil:
				slog.Info("RPC ok",
					"procedure", procedure,
					"request_id", requestID,
					"duration_ms", duration,
				)
			case errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal:
				slog.Warn("RPC error",
					"procedure", procedure,
					"code", connectErr.Code(),
					"error", connectErr.Message(),
					"request_id", requestID,
					"duration_ms", duration,
				)
			default:
				slog.Error("RPC error",
					"procedure", procedure,
					"error", err,
					"request_id", requestID,
					"duration_ms", duration,
				)
			}

			return resp, err
		}
	}
}

// AccessLog logs non-RPC HTTP requests such as /metrics and /healthz at
// debug level.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"request_id", GetRequestID(r.Context()),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
