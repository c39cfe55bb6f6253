package server

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/joseph-ayodele/decisions-extractor/internal/common"
)

// RequestLogger tags each unary call with a req_id and logs its outcome.
func RequestLogger(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		rid := uuid.New().String()
		ctx = common.WithRequestID(ctx, rid)
		start := time.Now()

		resp, err := handler(ctx, req)

		logger.Info("grpc.request",
			"req_id", rid,
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return resp, err
	}
}

// BearerAuth rejects calls to the decisions service that do not carry
// "authorization: Bearer <token>". Health and reflection stay open.
func BearerAuth(token string) grpc.UnaryServerInterceptor {
	want := []byte("Bearer " + token)
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !strings.HasPrefix(info.FullMethod, "/"+ServiceName+"/") {
			return handler(ctx, req)
		}
		md, _ := metadata.FromIncomingContext(ctx)
		for _, v := range md.Get("authorization") {
			if subtle.ConstantTimeCompare([]byte(v), want) == 1 {
				return handler(ctx, req)
			}
		}
		return nil, common.UnauthenticatedError("missing or invalid bearer token")
	}
}
