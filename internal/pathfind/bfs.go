package pathfind

import (
	"fmt"

	"github.com/pathfinderhq/pathfinder/internal/models"
)

// queueItem pairs a node id with its depth and the id it was reached from.
type queueItem struct {
	id        int64
	parent    int64
	hasParent bool
	depth     int
}

// BFS runs breadth-first search from startID following edges src → dst only.
//
// Nodes are visited in FIFO order; neighbors are enqueued in adjacency order,
// so ties in depth resolve by edge insertion order. A node can sit in the
// queue more than once (parallel edges, cycles); later copies are skipped on
// dequeue. Unreachable nodes are absent from the result.
func (s *Snapshot) BFS(startID int64) (*models.BFSResult, error) {
	if !s.HasNode(startID) {
		return nil, fmt.Errorf("start node %d: %w", startID, models.ErrNodeNotFound)
	}

	visited := make(map[int64]bool, len(s.nodes))
	queue := []queueItem{{id: startID}}
	res := &models.BFSResult{
		Order: make([]int64, 0, len(s.nodes)),
		Tree:  make([]models.BFSTreeNode, 0, len(s.nodes)),
	}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if visited[item.id] {
			continue
		}

		visited[item.id] = true
		res.Order = append(res.Order, item.id)

		tn := models.BFSTreeNode{NodeID: item.id, Depth: item.depth}
		if item.hasParent {
			parent := item.parent
			tn.ParentID = &parent
		}
		res.Tree = append(res.Tree, tn)

		for _, nb := range s.adj[item.id] {
			if !visited[nb.ID] {
				queue = append(queue, queueItem{id: nb.ID, parent: item.id, hasParent: true, depth: item.depth + 1})
			}
		}
	}

	return res, nil
}
