package service

import (
	"context"
	"sync"

	"github.com/pathfinderhq/pathfinder/internal/models"
)

// mockNodeStore records calls and returns configured responses.
type mockNodeStore struct {
	mu    sync.Mutex
	calls []string

	listNodes     func(ctx context.Context) ([]models.Node, error)
	getNode       func(ctx context.Context, id int64) (*models.Node, error)
	getNodeByName func(ctx context.Context, name string) (*models.Node, error)
	createNode    func(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error)
	deleteNode    func(ctx context.Context, id int64) error
}

func (m *mockNodeStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockNodeStore) ListNodes(ctx context.Context) ([]models.Node, error) {
	m.record("ListNodes")
	return m.listNodes(ctx)
}

func (m *mockNodeStore) GetNode(ctx context.Context, id int64) (*models.Node, error) {
	m.record("GetNode")
	return m.getNode(ctx, id)
}

func (m *mockNodeStore) GetNodeByName(ctx context.Context, name string) (*models.Node, error) {
	m.record("GetNodeByName")
	return m.getNodeByName(ctx, name)
}

func (m *mockNodeStore) CreateNode(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error) {
	m.record("CreateNode")
	return m.createNode(ctx, req)
}

func (m *mockNodeStore) DeleteNode(ctx context.Context, id int64) error {
	m.record("DeleteNode")
	return m.deleteNode(ctx, id)
}

// mockEdgeStore records calls and returns configured responses.
type mockEdgeStore struct {
	mu    sync.Mutex
	calls []string

	listEdges  func(ctx context.Context) ([]models.Edge, error)
	getEdge    func(ctx context.Context, id int64) (*models.Edge, error)
	edgeExists func(ctx context.Context, srcID, dstID int64) (bool, error)
	createEdge func(ctx context.Context, req models.CreateEdgeRequest) (*models.Edge, error)
	deleteEdge func(ctx context.Context, id int64) error
}

func (m *mockEdgeStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockEdgeStore) ListEdges(ctx context.Context) ([]models.Edge, error) {
	m.record("ListEdges")
	return m.listEdges(ctx)
}

func (m *mockEdgeStore) GetEdge(ctx context.Context, id int64) (*models.Edge, error) {
	m.record("GetEdge")
	return m.getEdge(ctx, id)
}

func (m *mockEdgeStore) EdgeExists(ctx context.Context, srcID, dstID int64) (bool, error) {
	m.record("EdgeExists")
	return m.edgeExists(ctx, srcID, dstID)
}

func (m *mockEdgeStore) CreateEdge(ctx context.Context, req models.CreateEdgeRequest) (*models.Edge, error) {
	m.record("CreateEdge")
	return m.createEdge(ctx, req)
}

func (m *mockEdgeStore) DeleteEdge(ctx context.Context, id int64) error {
	m.record("DeleteEdge")
	return m.deleteEdge(ctx, id)
}

func (m *mockEdgeStore) called(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.calls {
		if c == name {
			return true
		}
	}
	return false
}

// mockGraphStore returns a fixed snapshot.
type mockGraphStore struct {
	nodes       []models.Node
	edges       []models.Edge
	snapshotErr error
	stats       *models.GraphStats
}

func (m *mockGraphStore) Snapshot(_ context.Context) ([]models.Node, []models.Edge, error) {
	if m.snapshotErr != nil {
		return nil, nil, m.snapshotErr
	}
	return m.nodes, m.edges, nil
}

func (m *mockGraphStore) Stats(_ context.Context) (*models.GraphStats, error) {
	if m.stats == nil {
		return nil, m.snapshotErr
	}
	return m.stats, nil
}

// mockUserStore is an in-memory UserStore that counts lookups.
type mockUserStore struct {
	mu      sync.Mutex
	users   map[string]*models.User
	lookups int
	nextID  int64
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]*models.User)}
}

func (m *mockUserStore) CreateUser(_ context.Context, username, passwordHash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[username]; ok {
		return nil, models.ErrDuplicateKey
	}

	m.nextID++
	u := &models.User{ID: m.nextID, Username: username, PasswordHash: passwordHash}
	m.users[username] = u

	return u, nil
}

func (m *mockUserStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lookups++

	u, ok := m.users[username]
	if !ok {
		return nil, models.ErrUserNotFound
	}

	return u, nil
}

func (m *mockUserStore) lookupCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookups
}

// mockAuditor collects recorded entries.
type mockAuditor struct {
	mu      sync.Mutex
	entries []models.AuditEntry
}

func (m *mockAuditor) RecordAudit(_ context.Context, entry *models.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockAuditor) getEntries() []models.AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.AuditEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// syncEnqueuer records audit entries synchronously.
type syncEnqueuer struct {
	mu      sync.Mutex
	entries []*models.AuditEntry
}

func (s *syncEnqueuer) Enqueue(entry *models.AuditEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}
