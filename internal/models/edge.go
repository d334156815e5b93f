package models

import (
	"fmt"
	"math"
	"time"
)

// Edge represents a directed, weighted connection from SrcID to DstID.
type Edge struct {
	ID        int64     `json:"id"`
	SrcID     int64     `json:"src_id"`
	DstID     int64     `json:"dst_id"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateEdgeRequest is the payload for creating a new edge.
type CreateEdgeRequest struct {
	SrcID  int64   `json:"src_id"`
	DstID  int64   `json:"dst_id"`
	Weight float64 `json:"weight"`
}

// Validate checks that both endpoints are set and the weight is strictly positive.
// Endpoint existence is checked by the store when the edge is admitted.
func (r *CreateEdgeRequest) Validate() error {
	if r.SrcID <= 0 {
		return ErrMissingSource
	}

	if r.DstID <= 0 {
		return ErrMissingTarget
	}

	if err := ValidateWeight(r.Weight); err != nil {
		return err
	}

	return nil
}

// ValidateWeight rejects weights that are not strictly positive finite numbers.
func ValidateWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return fmt.Errorf("%w: must be a finite number", ErrInvalidWeight)
	}

	if w <= 0 {
		return fmt.Errorf("%w: must be positive", ErrInvalidWeight)
	}

	return nil
}
