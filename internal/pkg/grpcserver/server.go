package grpcserver

import (
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"tracker/pkg/logger"
)

const (
	keepaliveMinTime             = time.Minute
	keepalivePermitWithoutStream = false
	maxConnectionIdle            = 15 * time.Minute
)

// ServiceName под этим именем воркеры проверяют готовность API.
const ServiceName = "tracker.v1.Tracker"

// Server отдаёт стандартный протокол grpc.health.v1, воркеры ждут по нему готовности API.
type Server struct {
	grpc   *grpc.Server
	health *health.Server
	log    logger.Logger
}

func New(log logger.Logger) *Server {
	grpcServer := grpc.NewServer(
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             keepaliveMinTime,
			PermitWithoutStream: keepalivePermitWithoutStream,
		}),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle: maxConnectionIdle,
		}),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	s := &Server{
		grpc:   grpcServer,
		health: healthServer,
		log:    log.With(logger.NewField("component", "grpc-server")),
	}
	s.SetServing(false)
	return s
}

// SetServing переключает статус сервера и ServiceName.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Serve блокируется до Stop.
func (s *Server) Serve(lis net.Listener) error {
	s.log.Info("grpc server starting", logger.NewField("addr", lis.Addr().String()))
	if err := s.grpc.Serve(lis); err != nil {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

// Stop переводит health в NOT_SERVING и дожидается завершения вызовов.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
