package pathfind

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/pathfinderhq/pathfinder/internal/models"
)

// ShortestPath computes the lowest-cost path from srcID to dstID with Dijkstra's
// algorithm. Weights are assumed positive; NewSnapshot rejects anything else.
//
// The queue uses lazy decrease-key: an improved distance pushes a new entry and
// stale entries are dropped when popped. Equal distances pop in ascending node
// id order, which makes the returned path reproducible under weight ties.
func (s *Snapshot) ShortestPath(srcID, dstID int64) (*models.ShortestPathResult, error) {
	if !s.HasNode(srcID) {
		return nil, fmt.Errorf("source node %d: %w", srcID, models.ErrNodeNotFound)
	}

	if !s.HasNode(dstID) {
		return nil, fmt.Errorf("destination node %d: %w", dstID, models.ErrNodeNotFound)
	}

	if srcID == dstID {
		return &models.ShortestPathResult{Path: []int64{srcID}, Distance: 0}, nil
	}

	r := &runner{
		adj:  s.adj,
		dist: map[int64]float64{srcID: 0},
		prev: make(map[int64]int64),
	}
	r.run(srcID)

	d, ok := r.dist[dstID]
	if !ok || math.IsInf(d, 1) {
		return nil, fmt.Errorf("from %d to %d: %w", srcID, dstID, models.ErrNoPath)
	}

	return &models.ShortestPathResult{Path: r.path(srcID, dstID), Distance: d}, nil
}

// runner holds the mutable state of a single Dijkstra execution.
type runner struct {
	adj  Adjacency
	dist map[int64]float64 // absent means +Inf
	prev map[int64]int64
	pq   distQueue
}

// distance returns the best known distance to id, +Inf if none.
func (r *runner) distance(id int64) float64 {
	if d, ok := r.dist[id]; ok {
		return d
	}

	return math.Inf(1)
}

func (r *runner) run(srcID int64) {
	heap.Push(&r.pq, &queueEntry{id: srcID, dist: 0})

	for r.pq.Len() > 0 {
		e := heap.Pop(&r.pq).(*queueEntry)

		// Stale entry: a shorter distance was found after this was pushed.
		if e.dist > r.distance(e.id) {
			continue
		}

		for _, nb := range r.adj[e.id] {
			alt := e.dist + nb.Weight
			if alt < r.distance(nb.ID) {
				r.dist[nb.ID] = alt
				r.prev[nb.ID] = e.id
				heap.Push(&r.pq, &queueEntry{id: nb.ID, dist: alt})
			}
		}
	}
}

// path walks predecessors back from dstID and returns the path in src → dst order.
func (r *runner) path(srcID, dstID int64) []int64 {
	trail := []int64{dstID}
	for cur := dstID; cur != srcID; {
		p := r.prev[cur]
		trail = append(trail, p)
		cur = p
	}

	for i, j := 0, len(trail)-1; i < j; i, j = i+1, j-1 {
		trail[i], trail[j] = trail[j], trail[i]
	}

	return trail
}

// queueEntry is a node id with the tentative distance it was pushed with.
type queueEntry struct {
	id   int64
	dist float64
}

// distQueue is a min-heap of *queueEntry ordered by (dist, id).
type distQueue []*queueEntry

func (q distQueue) Len() int { return len(q) }

func (q distQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}

	return q[i].id < q[j].id
}

func (q distQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *distQueue) Push(x any) { *q = append(*q, x.(*queueEntry)) }

func (q *distQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]

	return item
}
