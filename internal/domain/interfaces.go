// Package domain defines the canonical service interfaces shared between the
// HTTP layer and the services. Consumers should depend on these interfaces
// rather than re-declaring equivalent ones.
package domain

import (
	"context"

	"github.com/pathfinderhq/pathfinder/internal/models"
)

// NodeService defines all node operations.
type NodeService interface {
	ListNodes(ctx context.Context) ([]models.Node, error)
	GetNode(ctx context.Context, id int64) (*models.Node, error)
	GetNodeByName(ctx context.Context, name string) (*models.Node, error)
	CreateNode(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error)
	DeleteNode(ctx context.Context, id int64) error
}

// EdgeService defines all edge operations.
type EdgeService interface {
	ListEdges(ctx context.Context) ([]models.Edge, error)
	GetEdge(ctx context.Context, id int64) (*models.Edge, error)
	EdgeExists(ctx context.Context, srcID, dstID int64) (bool, error)
	CreateEdge(ctx context.Context, req models.CreateEdgeRequest) (*models.Edge, error)
	DeleteEdge(ctx context.Context, id int64) error
}

// GraphService defines the read-only graph algorithms and counts.
type GraphService interface {
	TraverseBFS(ctx context.Context, startID int64) (*models.BFSResult, error)
	ShortestPath(ctx context.Context, srcID, dstID int64) (*models.ShortestPathResult, error)
	Stats(ctx context.Context) (*models.GraphStats, error)
}

// AuthService defines account registration, login and token verification.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error)
	ParseToken(ctx context.Context, token string) (*models.User, error)
}

// Auditor is the minimal interface for recording audit entries.
type Auditor interface {
	RecordAudit(ctx context.Context, entry *models.AuditEntry) error
}

type actorKey struct{}

// WithActor returns a copy of ctx carrying the authenticated username.
func WithActor(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, actorKey{}, username)
}

// ActorFrom returns the username stored by WithActor, or "" if none.
func ActorFrom(ctx context.Context) string {
	s, _ := ctx.Value(actorKey{}).(string)
	return s
}
