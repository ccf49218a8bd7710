package grpcapi

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/Leganyst/provider-catalog/internal/metrics"
	"github.com/Leganyst/provider-catalog/internal/middleware"
)

// Методы, доступные без токена.
var publicMethods = map[string]bool{
	"/" + ServiceName + "/GetSummary": true,
}

// AuthInterceptor проверяет Bearer-токен в metadata "authorization"
// для методов каталога. Health и reflection не трогает.
func AuthInterceptor(parser middleware.TokenParser) grpc.UnaryServerInterceptor {
	prefix := "/" + ServiceName + "/"
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !strings.HasPrefix(info.FullMethod, prefix) || publicMethods[info.FullMethod] {
			return handler(ctx, req)
		}

		md, _ := metadata.FromIncomingContext(ctx)
		values := md.Get("authorization")
		if len(values) == 0 {
			return nil, status.Error(codes.Unauthenticated, "no authorization token provided")
		}
		token, ok := strings.CutPrefix(values[0], "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return nil, status.Error(codes.Unauthenticated, "invalid authorization header format")
		}
		if _, err := parser.ParseToken(strings.TrimSpace(token)); err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid or expired token")
		}
		return handler(ctx, req)
	}
}

// LoggingInterceptor пишет одну запись на вызов.
func LoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		attrs := []any{
			"method", info.FullMethod,
			"code", code.String(),
			"duration", time.Since(start).String(),
		}
		switch code {
		case codes.OK:
			logger.InfoContext(ctx, "grpc call", attrs...)
		case codes.Internal, codes.Unknown:
			logger.ErrorContext(ctx, "grpc call", append(attrs, "error", err)...)
		default:
			logger.WarnContext(ctx, "grpc call", append(attrs, "error", err)...)
		}
		return resp, err
	}
}

// NewGRPCServer собирает сервер: метрики, логирование, авторизация,
// сервис каталога, health и reflection.
func NewGRPCServer(srv CatalogServer, parser middleware.TokenParser, m *metrics.Metrics, logger *slog.Logger) *grpc.Server {
	if logger == nil {
		logger = slog.Default()
	}

	interceptors := []grpc.UnaryServerInterceptor{}
	if m != nil {
		interceptors = append(interceptors, m.UnaryServerInterceptor())
	}
	interceptors = append(interceptors, LoggingInterceptor(logger), AuthInterceptor(parser))

	server := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))
	RegisterCatalogServer(server, srv)

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthSrv.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthSrv)

	reflection.Register(server)
	return server
}
