// Package graph holds the friendship graph: an undirected adjacency map
// persisted as a whole after every mutation.
package graph

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/friendgraph/internal/common"
	"github.com/dmitrijs2005/friendgraph/internal/server/storage"
)

// DocumentKey is the storage key of the persisted adjacency list.
const DocumentKey = "graph"

type set map[string]struct{}

// Store is the mutex-guarded friendship graph.
//
// Every mutation is applied in memory and saved while the lock is held. When
// the save fails the in-memory change is undone, so memory and storage never
// disagree.
type Store struct {
	mu  sync.Mutex
	adj map[string]set
	doc *storage.Document[map[string][]string]
}

// NewStore loads the persisted graph from backend. A backend that has never
// held a graph yields an empty one.
func NewStore(ctx context.Context, backend storage.Backend) (*Store, error) {
	doc := storage.NewDocument(backend, DocumentKey, func() map[string][]string {
		return map[string][]string{}
	})

	raw, err := doc.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}

	return &Store{adj: normalize(raw), doc: doc}, nil
}

// normalize converts persisted lists into sets, drops self-loops and adds
// any missing reverse edge.
func normalize(raw map[string][]string) map[string]set {
	adj := make(map[string]set, len(raw))
	node := func(id string) set {
		s, ok := adj[id]
		if !ok {
			s = set{}
			adj[id] = s
		}
		return s
	}

	for id, friends := range raw {
		node(id)
		for _, f := range friends {
			if f == id {
				continue
			}
			node(id)[f] = struct{}{}
			node(f)[id] = struct{}{}
		}
	}
	return adj
}

// EnsureUser adds id as an isolated node. Known ids are left alone and
// nothing is written.
func (s *Store) EnsureUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.adj[id]; ok {
		return nil
	}

	s.adj[id] = set{}
	if err := s.save(ctx); err != nil {
		delete(s.adj, id)
		return err
	}
	return nil
}

// AddFriendship links a and b in both directions, creating either node if
// needed. Linking a user to themselves fails with common.ErrInvalidOperation.
func (s *Store) AddFriendship(ctx context.Context, a, b string) error {
	if a == b {
		return fmt.Errorf("%w: cannot befriend yourself", common.ErrInvalidOperation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, hadA := s.adj[a]
	_, hadB := s.adj[b]
	_, linked := s.adj[a][b]

	s.link(a, b)

	if err := s.save(ctx); err != nil {
		if !linked {
			s.unlink(a, b)
		}
		if !hadA {
			delete(s.adj, a)
		}
		if !hadB {
			delete(s.adj, b)
		}
		return err
	}
	return nil
}

// RemoveFriendship unlinks a and b. Missing nodes or edges are ignored.
func (s *Store) RemoveFriendship(ctx context.Context, a, b string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, linked := s.adj[a][b]
	s.unlink(a, b)

	if err := s.save(ctx); err != nil {
		if linked {
			s.link(a, b)
		}
		return err
	}
	return nil
}

// FriendsOf returns the sorted neighbors of id. Unknown ids have none.
func (s *Store) FriendsOf(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedKeys(s.adj[id])
}

// Snapshot returns a deep copy of the graph with sorted neighbor lists.
func (s *Store) Snapshot() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.export()
}

// Size reports the number of nodes and undirected edges.
func (s *Store) Size() (nodes, edges int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, friends := range s.adj {
		edges += len(friends)
	}
	return len(s.adj), edges / 2
}

func (s *Store) link(a, b string) {
	if s.adj[a] == nil {
		s.adj[a] = set{}
	}
	if s.adj[b] == nil {
		s.adj[b] = set{}
	}
	s.adj[a][b] = struct{}{}
	s.adj[b][a] = struct{}{}
}

func (s *Store) unlink(a, b string) {
	if friends, ok := s.adj[a]; ok {
		delete(friends, b)
	}
	if friends, ok := s.adj[b]; ok {
		delete(friends, a)
	}
}

func (s *Store) save(ctx context.Context) error {
	if err := s.doc.Save(ctx, s.export()); err != nil {
		return fmt.Errorf("persist graph: %w", err)
	}
	return nil
}

func (s *Store) export() map[string][]string {
	out := make(map[string][]string, len(s.adj))
	for id, friends := range s.adj {
		out[id] = sortedKeys(friends)
	}
	return out
}

func sortedKeys(s set) []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
