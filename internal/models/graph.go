package models

// BFSTreeNode records how a node was reached during breadth-first traversal.
// ParentID is nil for the start node.
type BFSTreeNode struct {
	NodeID   int64  `json:"node_id"`
	ParentID *int64 `json:"parent_id"`
	Depth    int    `json:"depth"`
}

// BFSResult holds the visitation order and the parent/depth tree of a traversal.
type BFSResult struct {
	Order []int64       `json:"order"`
	Tree  []BFSTreeNode `json:"tree"`
}

// ShortestPathResult holds the lowest-cost path from source to destination inclusive.
type ShortestPathResult struct {
	Path     []int64 `json:"path"`
	Distance float64 `json:"distance"`
}

// GraphStats holds aggregate graph counts.
type GraphStats struct {
	Nodes int64 `json:"nodes"`
	Edges int64 `json:"edges"`
}
