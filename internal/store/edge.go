package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pathfinderhq/pathfinder/internal/models"
)

// EdgeStore provides edge CRUD operations.
type EdgeStore struct {
	Base
}

// NewEdgeStore creates a new EdgeStore.
func NewEdgeStore(base Base) *EdgeStore {
	return &EdgeStore{Base: base}
}

// CreateEdge inserts a new edge after verifying both endpoints exist.
// A missing endpoint returns an error wrapping models.ErrNodeNotFound.
func (s *EdgeStore) CreateEdge(ctx context.Context, req models.CreateEdgeRequest) (*models.Edge, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating edge: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	var srcExists, dstExists bool
	err = tx.QueryRow(ctx,
		`SELECT
			EXISTS(SELECT 1 FROM nodes WHERE id = $1),
			EXISTS(SELECT 1 FROM nodes WHERE id = $2)`,
		req.SrcID, req.DstID).Scan(&srcExists, &dstExists)
	if err != nil {
		return nil, fmt.Errorf("checking edge endpoints: %w", err)
	}

	if !srcExists {
		return nil, fmt.Errorf("src node %d: %w", req.SrcID, models.ErrNodeNotFound)
	}

	if !dstExists {
		return nil, fmt.Errorf("dst node %d: %w", req.DstID, models.ErrNodeNotFound)
	}

	row := tx.QueryRow(ctx,
		`INSERT INTO edges (src_id, dst_id, weight) VALUES ($1, $2, $3) RETURNING `+edgeColumns,
		req.SrcID, req.DstID, req.Weight)

	e, err := scanEdge(row.Scan)
	if err != nil {
		// An endpoint deleted between the check and the insert.
		if pgErrorCode(err) == pgForeignKeyViolation {
			return nil, fmt.Errorf("edge endpoint: %w", models.ErrNodeNotFound)
		}

		return nil, fmt.Errorf("scanning created edge: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing create edge: %w", err)
	}

	s.notify("edges", "insert", e.ID)

	return e, nil
}

// GetEdge fetches a single edge by id.
func (s *EdgeStore) GetEdge(ctx context.Context, id int64) (*models.Edge, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, `SELECT `+edgeColumns+` FROM edges WHERE id = $1`, id)

	e, err := scanEdge(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrEdgeNotFound
		}

		return nil, fmt.Errorf("getting edge: %w", err)
	}

	return e, nil
}

// ListEdges returns every edge in insertion order.
func (s *EdgeStore) ListEdges(ctx context.Context) ([]models.Edge, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, `SELECT `+edgeColumns+` FROM edges ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing edges: %w", err)
	}
	defer rows.Close()

	return collectEdges(rows)
}

// EdgeExists reports whether at least one edge src → dst exists.
func (s *EdgeStore) EdgeExists(ctx context.Context, srcID, dstID int64) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var exists bool
	err := s.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM edges WHERE src_id = $1 AND dst_id = $2)`,
		srcID, dstID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking edge existence: %w", err)
	}

	return exists, nil
}

// DeleteEdge removes an edge by id.
func (s *EdgeStore) DeleteEdge(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.Pool.Exec(ctx, `DELETE FROM edges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting edge: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrEdgeNotFound
	}

	s.notify("edges", "delete", id)

	return nil
}
