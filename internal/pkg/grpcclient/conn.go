package grpcclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"tracker/internal/pkg/config"
	"tracker/pkg/logger"
	"tracker/pkg/retrier/backoff_adapter"
)

const (
	KeepaliveTime                = 5 * time.Minute
	KeepaliveTimeout             = 3 * time.Second
	KeepalivePermitWithoutStream = false
)

// NewConnClient открывает соединение с API трекинга и ждёт SERVING для service.
func NewConnClient(ctx context.Context, log logger.Logger, cfg *config.TrackerService, service string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(
		cfg.GRPCHost,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                KeepaliveTime,
			Timeout:             KeepaliveTimeout,
			PermitWithoutStream: KeepalivePermitWithoutStream,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create grpc client %s: %w", cfg.GRPCHost, err)
	}

	clientLog := log.With(logger.NewField("grpc_host", cfg.GRPCHost))
	if err := WaitServing(ctx, clientLog, healthpb.NewHealthClient(conn), service); err != nil {
		return nil, errors.Join(err, conn.Close())
	}

	return conn, nil
}

// WaitServing опрашивает health, пустой service означает сервер целиком.
func WaitServing(ctx context.Context, log logger.Logger, client healthpb.HealthClient, service string) error {
	target := "grpc health"
	if service != "" {
		target = "grpc health " + service
	}

	return backoff_adapter.Connect(ctx, log, target, func(ctx context.Context) error {
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
		if err != nil {
			return err
		}
		if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			return fmt.Errorf("service status %s", resp.GetStatus())
		}
		return nil
	})
}
