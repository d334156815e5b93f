package client

import "time"

// Node is a named vertex.
type Node struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Edge is a directed, weighted connection.
type Edge struct {
	ID        int64     `json:"id"`
	SrcID     int64     `json:"src_id"`
	DstID     int64     `json:"dst_id"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateEdgeRequest is the payload for creating an edge.
type CreateEdgeRequest struct {
	SrcID  int64   `json:"src_id"`
	DstID  int64   `json:"dst_id"`
	Weight float64 `json:"weight"`
}

// User is a registered account.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// BFSTreeNode records how a node was reached. ParentID is nil for the start node.
type BFSTreeNode struct {
	NodeID   int64  `json:"node_id"`
	ParentID *int64 `json:"parent_id"`
	Depth    int    `json:"depth"`
}

// BFSResult is the traversal order and tree.
type BFSResult struct {
	Order []int64       `json:"order"`
	Tree  []BFSTreeNode `json:"tree"`
}

// ShortestPathResult is the lowest-cost path, endpoints inclusive.
type ShortestPathResult struct {
	Path     []int64 `json:"path"`
	Distance float64 `json:"distance"`
}

// GraphStats holds node and edge counts.
type GraphStats struct {
	Nodes int64 `json:"nodes"`
	Edges int64 `json:"edges"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ReadyResponse is returned by GET /ready.
type ReadyResponse struct {
	Status         string            `json:"status"`
	Checks         map[string]string `json:"checks"`
	SchemaVersion  int64             `json:"schema_version"`
	ExpectedSchema int64             `json:"expected_schema"`
	DBConns        int32             `json:"db_conns"`
	DBIdleConns    int32             `json:"db_idle_conns"`
	WSClients      int               `json:"ws_clients"`
}
