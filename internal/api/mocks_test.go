package api_test

import (
	"context"
	"time"

	"github.com/pathfinderhq/pathfinder/internal/models"
)

// mockNodeService implements api.NodeService for testing.
type mockNodeService struct {
	listFn      func(ctx context.Context) ([]models.Node, error)
	getFn       func(ctx context.Context, id int64) (*models.Node, error)
	getByNameFn func(ctx context.Context, name string) (*models.Node, error)
	createFn    func(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error)
	deleteFn    func(ctx context.Context, id int64) error
}

func (m *mockNodeService) ListNodes(ctx context.Context) ([]models.Node, error) {
	return m.listFn(ctx)
}

func (m *mockNodeService) GetNode(ctx context.Context, id int64) (*models.Node, error) {
	return m.getFn(ctx, id)
}

func (m *mockNodeService) GetNodeByName(ctx context.Context, name string) (*models.Node, error) {
	return m.getByNameFn(ctx, name)
}

func (m *mockNodeService) CreateNode(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error) {
	return m.createFn(ctx, req)
}

func (m *mockNodeService) DeleteNode(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

// mockEdgeService implements api.EdgeService for testing.
type mockEdgeService struct {
	listFn   func(ctx context.Context) ([]models.Edge, error)
	getFn    func(ctx context.Context, id int64) (*models.Edge, error)
	existsFn func(ctx context.Context, srcID, dstID int64) (bool, error)
	createFn func(ctx context.Context, req models.CreateEdgeRequest) (*models.Edge, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockEdgeService) ListEdges(ctx context.Context) ([]models.Edge, error) {
	return m.listFn(ctx)
}

func (m *mockEdgeService) GetEdge(ctx context.Context, id int64) (*models.Edge, error) {
	return m.getFn(ctx, id)
}

func (m *mockEdgeService) EdgeExists(ctx context.Context, srcID, dstID int64) (bool, error) {
	return m.existsFn(ctx, srcID, dstID)
}

func (m *mockEdgeService) CreateEdge(ctx context.Context, req models.CreateEdgeRequest) (*models.Edge, error) {
	return m.createFn(ctx, req)
}

func (m *mockEdgeService) DeleteEdge(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

// mockGraphService implements api.GraphService for testing.
type mockGraphService struct {
	bfsFn   func(ctx context.Context, startID int64) (*models.BFSResult, error)
	pathFn  func(ctx context.Context, srcID, dstID int64) (*models.ShortestPathResult, error)
	statsFn func(ctx context.Context) (*models.GraphStats, error)
}

func (m *mockGraphService) TraverseBFS(ctx context.Context, startID int64) (*models.BFSResult, error) {
	return m.bfsFn(ctx, startID)
}

func (m *mockGraphService) ShortestPath(ctx context.Context, srcID, dstID int64) (*models.ShortestPathResult, error) {
	return m.pathFn(ctx, srcID, dstID)
}

func (m *mockGraphService) Stats(ctx context.Context) (*models.GraphStats, error) {
	return m.statsFn(ctx)
}

// mockAuthService implements api.AuthService for testing.
type mockAuthService struct {
	registerFn func(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	loginFn    func(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error)
	parseFn    func(ctx context.Context, token string) (*models.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) ParseToken(ctx context.Context, token string) (*models.User, error) {
	return m.parseFn(ctx, token)
}

// mockGuard implements api.LoginGuard for testing.
type mockGuard struct {
	blockedFor time.Duration
	failures   []string
	resets     []string
}

func (g *mockGuard) RetryAfter(string) time.Duration { return g.blockedFor }

func (g *mockGuard) RecordFailure(username string) { g.failures = append(g.failures, username) }

func (g *mockGuard) Reset(username string) { g.resets = append(g.resets, username) }

// mockDB implements api.DBProbe for testing.
type mockDB struct {
	healthErr error
	version   int64
	schemaErr error
}

func (m *mockDB) HealthCheck(context.Context) error { return m.healthErr }

func (m *mockDB) Stat() (total, idle int32) { return 4, 3 }

func (m *mockDB) AppliedSchemaVersion(context.Context) (int64, error) { return m.version, m.schemaErr }
