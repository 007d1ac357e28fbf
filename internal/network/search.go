package network

import (
	"cmp"
	"container/heap"
	"math"
	"slices"

	"github.com/vanshika/trustpath/internal/domain"
	"github.com/vanshika/trustpath/internal/metrics"
)

// Search defaults.
const (
	// DefaultMaxHops is the maximum path length in edges.
	DefaultMaxHops = 4

	// DefaultTopK is the maximum number of ranked paths returned.
	DefaultTopK = 5

	// DefaultCandidateFactor bounds search work: expansion stops once
	// CandidateFactor*TopK paths reaching the target have been found, so
	// some longer paths may be missed on high fan-out graphs. Removing the
	// bound makes worst-case work exponential in degree and depth.
	DefaultCandidateFactor = 2
)

// Success-rate mapping from weakest-link strength.
const (
	successRateBase        = 0.10
	successRatePerStrength = 0.15
	maxSuccessRate         = 0.9
)

// SearchOptions tunes FindPaths. Non-positive fields take their defaults.
type SearchOptions struct {
	MaxHops         int
	TopK            int
	CandidateFactor int
}

// DefaultSearchOptions returns the documented defaults.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		MaxHops:         DefaultMaxHops,
		TopK:            DefaultTopK,
		CandidateFactor: DefaultCandidateFactor,
	}
}

func (o SearchOptions) withDefaults() SearchOptions {
	if o.MaxHops <= 0 {
		o.MaxHops = DefaultMaxHops
	}
	if o.TopK <= 0 {
		o.TopK = DefaultTopK
	}
	if o.CandidateFactor <= 0 {
		o.CandidateFactor = DefaultCandidateFactor
	}
	return o
}

// PathResult is one introduction route from the user to a target.
type PathResult struct {
	Nodes                []Node  `json:"nodes"`
	Edges                []Edge  `json:"edges"`
	PathStrength         int     `json:"pathStrength"`
	Hops                 int     `json:"hops"`
	EstimatedSuccessRate float64 `json:"estimatedSuccessRate"`
}

// IsDirect reports whether the target is already a direct connection.
func (p PathResult) IsDirect() bool {
	return p.Hops == 1
}

// EstimateSuccessRate maps a weakest-link strength to a probability-like
// score capped at 0.9.
func EstimateSuccessRate(strength int) float64 {
	return math.Min(maxSuccessRate, float64(strength)*successRatePerStrength+successRateBase)
}

// FindPaths returns up to topK simple paths from the user's node to targetID
// using at most maxHops edges, ranked by weakest-link strength then hop count.
// An unknown target yields an empty result.
func FindPaths(g *Graph, targetID string, maxHops, topK int) []PathResult {
	return Search(g, targetID, SearchOptions{MaxHops: maxHops, TopK: topK})
}

// Search is FindPaths with full control over the search bounds.
func Search(g *Graph, targetID string, opts SearchOptions) []PathResult {
	opts = opts.withDefaults()
	results := []PathResult{}

	if g == nil || !g.HasNode(targetID) {
		metrics.PathSearches.WithLabelValues("unknown_target").Inc()
		return results
	}
	if targetID == g.SelfID() {
		metrics.PathSearches.WithLabelValues("self").Inc()
		return results
	}

	self := g.SelfID()
	queue := &workQueue{}
	queue.push(searchItem{
		current:     self,
		path:        []string{self},
		minStrength: domain.MaxStrength,
	})

	limit := opts.TopK * opts.CandidateFactor
	expansions := 0
	for queue.Len() > 0 && len(results) < limit {
		item := queue.pop()
		expansions++

		if item.current == targetID {
			results = append(results, materialize(g, item))
			continue
		}
		if item.hops() >= opts.MaxHops {
			continue
		}
		for _, edge := range g.Neighbors(item.current) {
			if item.visits(edge.To) {
				continue
			}
			queue.push(item.extend(edge))
		}
	}

	metrics.PathCandidates.Observe(float64(len(results)))
	metrics.QueueExpansions.Observe(float64(expansions))

	rankPaths(results)
	if len(results) > opts.TopK {
		results = results[:opts.TopK]
	}

	outcome := "found"
	if len(results) == 0 {
		outcome = "empty"
	}
	metrics.PathSearches.WithLabelValues(outcome).Inc()
	return results
}

// rankPaths orders by strength descending, then hops ascending.
func rankPaths(paths []PathResult) {
	slices.SortStableFunc(paths, func(a, b PathResult) int {
		if c := cmp.Compare(b.PathStrength, a.PathStrength); c != 0 {
			return c
		}
		return cmp.Compare(a.Hops, b.Hops)
	})
}

func materialize(g *Graph, item searchItem) PathResult {
	nodes := make([]Node, 0, len(item.path))
	for _, id := range item.path {
		nodes = append(nodes, g.Nodes[id])
	}
	return PathResult{
		Nodes:                nodes,
		Edges:                item.edges,
		PathStrength:         item.minStrength,
		Hops:                 item.hops(),
		EstimatedSuccessRate: EstimateSuccessRate(item.minStrength),
	}
}

type searchItem struct {
	current     string
	path        []string
	edges       []Edge
	minStrength int
	seq         int
}

func (s searchItem) hops() int {
	return len(s.path) - 1
}

func (s searchItem) visits(id string) bool {
	return slices.Contains(s.path, id)
}

func (s searchItem) extend(e Edge) searchItem {
	path := make([]string, len(s.path), len(s.path)+1)
	copy(path, s.path)
	edges := make([]Edge, len(s.edges), len(s.edges)+1)
	copy(edges, s.edges)
	return searchItem{
		current:     e.To,
		path:        append(path, e.To),
		edges:       append(edges, e),
		minStrength: min(s.minStrength, e.Strength),
	}
}

// workQueue pops the item with the highest minStrength; ties go to the item
// pushed first.
type workQueue struct {
	items []searchItem
	next  int
}

func (q *workQueue) push(item searchItem) {
	item.seq = q.next
	q.next++
	heap.Push(q, item)
}

func (q *workQueue) pop() searchItem {
	return heap.Pop(q).(searchItem)
}

func (q *workQueue) Len() int { return len(q.items) }

func (q *workQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.minStrength != b.minStrength {
		return a.minStrength > b.minStrength
	}
	return a.seq < b.seq
}

func (q *workQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *workQueue) Push(x any) { q.items = append(q.items, x.(searchItem)) }

func (q *workQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}
