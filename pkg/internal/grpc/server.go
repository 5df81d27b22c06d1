package grpc

import (
	"context"
	"net"
	"time"

	"git.solsynth.dev/hypernet/scribe/pkg/internal/services"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

type App struct {
	topics *services.TopicService
	posts  *services.PostService

	srv *grpc.Server
}

func NewGrpc(topics *services.TopicService, posts *services.PostService) *App {
	server := &App{
		topics: topics,
		posts:  posts,
		srv:    grpc.NewServer(grpc.ChainUnaryInterceptor(logUnary)),
	}

	server.srv.RegisterService(&PostServiceDesc, server)
	grpc_health_v1.RegisterHealthServer(server.srv, health.NewServer())

	return server
}

func (v *App) Listen(bind string) error {
	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return err
	}
	return v.Serve(listener)
}

func (v *App) Serve(listener net.Listener) error {
	return v.srv.Serve(listener)
}

func (v *App) Stop() {
	v.srv.GracefulStop()
}

func logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	event := log.Debug()
	if err != nil {
		event = log.Warn().Err(err)
	}
	event.Str("method", info.FullMethod).
		Dur("took", time.Since(start)).
		Msg("Handled gRPC call.")

	return resp, err
}
