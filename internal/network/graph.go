package network

import "slices"

// Graph is the acquaintance graph reachable from one user. It is built fresh
// per request and treated as read-only once Build returns.
type Graph struct {
	UserID    string
	Nodes     map[string]Node
	Adjacency map[string][]Edge
}

func newGraph(userID string) *Graph {
	return &Graph{
		UserID:    userID,
		Nodes:     make(map[string]Node),
		Adjacency: make(map[string][]Edge),
	}
}

// SelfID returns the id of the querying user's node.
func (g *Graph) SelfID() string {
	return g.UserID
}

// Node looks up a node by id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.Nodes[id]
	return n, ok
}

// HasNode reports whether id is part of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.Nodes[id]
	return ok
}

// NodeIDs returns every node id in lexical order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Neighbors returns the outgoing edges of id in insertion order.
func (g *Graph) Neighbors(id string) []Edge {
	return g.Adjacency[id]
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// VirtualNodeCount returns the number of nodes contributed by teams.
func (g *Graph) VirtualNodeCount() int {
	total := 0
	for _, n := range g.Nodes {
		if n.IsVirtual() {
			total++
		}
	}
	return total
}

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, edges := range g.Adjacency {
		total += len(edges)
	}
	return total
}

func (g *Graph) addNode(n Node) bool {
	if _, exists := g.Nodes[n.ID]; exists {
		return false
	}
	g.Nodes[n.ID] = n
	return true
}

// addEdgePair inserts a→b and b→a with the same strength and type. Both
// endpoints must already be nodes.
func (g *Graph) addEdgePair(a, b string, strength int, edgeType string) bool {
	if !g.HasNode(a) || !g.HasNode(b) {
		return false
	}
	g.Adjacency[a] = append(g.Adjacency[a], Edge{From: a, To: b, Strength: strength, Type: edgeType})
	g.Adjacency[b] = append(g.Adjacency[b], Edge{From: b, To: a, Strength: strength, Type: edgeType})
	return true
}
