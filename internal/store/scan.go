package store

import (
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pathfinderhq/pathfinder/internal/models"
)

const (
	nodeColumns = `id, name, created_at`
	edgeColumns = `id, src_id, dst_id, weight, created_at`
	userColumns = `id, username, password_hash, created_at`
)

// scanNode scans a single row into a models.Node.
func scanNode(scan func(dest ...any) error) (*models.Node, error) {
	var n models.Node
	if err := scan(&n.ID, &n.Name, &n.CreatedAt); err != nil {
		return nil, err
	}

	return &n, nil
}

// scanEdge scans a single row into a models.Edge.
func scanEdge(scan func(dest ...any) error) (*models.Edge, error) {
	var e models.Edge
	if err := scan(&e.ID, &e.SrcID, &e.DstID, &e.Weight, &e.CreatedAt); err != nil {
		return nil, err
	}

	return &e, nil
}

// scanUser scans a single row into a models.User.
func scanUser(scan func(dest ...any) error) (*models.User, error) {
	var u models.User
	if err := scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}

	return &u, nil
}

// collectNodes scans all rows into a node slice.
func collectNodes(rows pgx.Rows) ([]models.Node, error) {
	nodes := make([]models.Node, 0, 16)

	for rows.Next() {
		n, err := scanNode(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning node row: %w", err)
		}

		nodes = append(nodes, *n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating node rows: %w", err)
	}

	return nodes, nil
}

// collectEdges scans all rows into an edge slice.
func collectEdges(rows pgx.Rows) ([]models.Edge, error) {
	edges := make([]models.Edge, 0, 16)

	for rows.Next() {
		e, err := scanEdge(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning edge row: %w", err)
		}

		edges = append(edges, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating edge rows: %w", err)
	}

	return edges, nil
}
