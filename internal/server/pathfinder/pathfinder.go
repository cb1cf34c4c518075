// Package pathfinder finds shortest friendship chains with breadth-first
// search.
package pathfinder

// Snapshotter supplies a consistent copy of the adjacency list.
type Snapshotter interface {
	Snapshot() map[string][]string
}

type Finder struct {
	graph Snapshotter
}

func New(graph Snapshotter) *Finder {
	return &Finder{graph: graph}
}

// FindPath returns the ids on a shortest path from src to dst, both ends
// included. A user reaches themselves through [src]; an empty slice means no
// path exists or one of the ids is not in the graph.
func (f *Finder) FindPath(src, dst string) []string {
	if src == dst {
		return []string{src}
	}
	return ShortestPath(f.graph.Snapshot(), src, dst)
}

// ShortestPath runs BFS over adj. Neighbor lists are visited in their given
// order, so with sorted lists the lexicographically earliest parent wins
// among equal-length paths.
func ShortestPath(adj map[string][]string, src, dst string) []string {
	if src == dst {
		return []string{src}
	}
	if _, ok := adj[src]; !ok {
		return []string{}
	}
	if _, ok := adj[dst]; !ok {
		return []string{}
	}

	parent := map[string]string{src: ""}
	queue := []string{src}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, next := range adj[cur] {
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = cur
			if next == dst {
				return rebuild(parent, src, dst)
			}
			queue = append(queue, next)
		}
	}

	return []string{}
}

func rebuild(parent map[string]string, src, dst string) []string {
	path := []string{dst}
	for cur := dst; cur != src; {
		cur = parent[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
