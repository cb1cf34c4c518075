// Package stats computes degree statistics over the friendship graph.
package stats

import "sort"

// Snapshotter supplies a consistent copy of the adjacency list.
type Snapshotter interface {
	Snapshot() map[string][]string
}

// GraphStats is the result of Compute. The id fields are nil for an empty
// graph so they encode as JSON null.
type GraphStats struct {
	MaxUserID  *string `json:"max_user_id"`
	MaxFriends int     `json:"max_friends"`
	MinUserID  *string `json:"min_user_id"`
	MinFriends int     `json:"min_friends"`
	AvgFriends float64 `json:"avg_friends"`
}

type Engine struct {
	graph Snapshotter
}

func New(graph Snapshotter) *Engine {
	return &Engine{graph: graph}
}

// Compute reads one snapshot and summarizes its degrees. Ties resolve to
// the smallest id.
func (e *Engine) Compute() GraphStats {
	return Summarize(e.graph.Snapshot())
}

func Summarize(adj map[string][]string) GraphStats {
	if len(adj) == 0 {
		return GraphStats{}
	}

	ids := make([]string, 0, len(adj))
	for id := range adj {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	maxID, minID := ids[0], ids[0]
	maxDeg, minDeg := len(adj[ids[0]]), len(adj[ids[0]])
	total := 0

	for _, id := range ids {
		d := len(adj[id])
		total += d
		if d > maxDeg {
			maxID, maxDeg = id, d
		}
		if d < minDeg {
			minID, minDeg = id, d
		}
	}

	return GraphStats{
		MaxUserID:  &maxID,
		MaxFriends: maxDeg,
		MinUserID:  &minID,
		MinFriends: minDeg,
		AvgFriends: float64(total) / float64(len(ids)),
	}
}
