package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tipsplit/pkg/splitapi"
)

type sessionScoped interface{ GetSessionID() string }

type participantScoped interface{ GetParticipantID() string }

type resultCarrier interface{ GetResult() *splitapi.Result }

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// Besides the procedure and duration it logs the session and participant the
// call targets, and whether the returned split overflows.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			attrs := append([]any{"procedure", req.Spec().Procedure}, requestAttrs(req.Any())...)

			resp, err := next(ctx, req)

			attrs = append(attrs, "duration_ms", time.Since(start).Milliseconds())
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
					slog.Warn("RPC error", append(attrs, "code", connectErr.Code(), "error", connectErr.Message())...)
				} else {
					slog.Error("RPC error", append(attrs, "error", err)...)
				}
				return resp, err
			}

			slog.Info("RPC ok", append(attrs, responseAttrs(req.Any(), resp)...)...)
			return resp, err
		}
	}
}

func requestAttrs(msg any) []any {
	var attrs []any
	if m, ok := msg.(sessionScoped); ok && m.GetSessionID() != "" {
		attrs = append(attrs, "session_id", m.GetSessionID())
	}
	if m, ok := msg.(participantScoped); ok && m.GetParticipantID() != "" {
		attrs = append(attrs, "participant_id", m.GetParticipantID())
	}
	return attrs
}

// responseAttrs reports the session a call created and the overflow flag.
func responseAttrs(reqMsg any, resp connect.AnyResponse) []any {
	if resp == nil {
		return nil
	}
	var attrs []any
	if _, scoped := reqMsg.(sessionScoped); !scoped {
		if m, ok := resp.Any().(sessionScoped); ok && m.GetSessionID() != "" {
			attrs = append(attrs, "session_id", m.GetSessionID())
		}
	}
	if m, ok := resp.Any().(resultCarrier); ok {
		if r := m.GetResult(); r != nil && r.IsOverflow {
			attrs = append(attrs, "overflow", true)
		}
	}
	return attrs
}
