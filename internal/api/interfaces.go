package api

import (
	"context"

	"github.com/pathfinderhq/pathfinder/internal/domain"
)

// Service interfaces consumed by the handlers.
type (
	NodeService  = domain.NodeService
	EdgeService  = domain.EdgeService
	GraphService = domain.GraphService
	AuthService  = domain.AuthService
)

// DBProbe reports database reachability for the health endpoints.
type DBProbe interface {
	HealthCheck(ctx context.Context) error
	Stat() (total, idle int32)
	AppliedSchemaVersion(ctx context.Context) (int64, error)
}

// ClientCounter reports connected WebSocket clients.
type ClientCounter interface {
	ClientCount() int
}
