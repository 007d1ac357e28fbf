package graph

import (
	"context"
	"strings"
	"sync"
)

// MemoryClient is a scripted Client for repository tests. Results can be
// registered per query (matched on the trimmed Cypher text) or queued for
// whichever read comes next. Every call is recorded.
type MemoryClient struct {
	mu           sync.Mutex
	writeCalls   []ExecutedQuery
	readCalls    []ExecutedQuery
	byQuery      map[string][]Result
	readResults  []Result
	err          error
	failOn       map[string]error
	connectivity error
}

// ExecutedQuery captures a cypher statement and parameters executed against the graph.
type ExecutedQuery struct {
	Query  string
	Params map[string]any
}

// NewMemoryClient returns an empty scripted client.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		byQuery: make(map[string][]Result),
		failOn:  make(map[string]error),
	}
}

// WithError makes every subsequent call fail with err.
func (m *MemoryClient) WithError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// FailOn makes calls running cypher fail with err.
func (m *MemoryClient) FailOn(cypher string, err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failOn[normalize(cypher)] = err
	return m
}

// WithConnectivityError forces VerifyConnectivity to return the supplied error.
func (m *MemoryClient) WithConnectivityError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

// On queues res to be returned the next time cypher is executed.
func (m *MemoryClient) On(cypher string, res Result) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := normalize(cypher)
	m.byQuery[key] = append(m.byQuery[key], res)
	return m
}

// PushReadResult queues a result for the next read with no per-query script.
func (m *MemoryClient) PushReadResult(res Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readResults = append(m.readResults, res)
}

func (m *MemoryClient) ExecuteWrite(_ context.Context, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(cypher); err != nil {
		return Result{}, err
	}
	m.writeCalls = append(m.writeCalls, ExecutedQuery{Query: cypher, Params: cloneMap(params)})
	res, _ := m.scripted(cypher)
	return res, nil
}

func (m *MemoryClient) ExecuteRead(_ context.Context, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(cypher); err != nil {
		return Result{}, err
	}
	m.readCalls = append(m.readCalls, ExecutedQuery{Query: cypher, Params: cloneMap(params)})

	if res, ok := m.scripted(cypher); ok {
		return res, nil
	}
	if len(m.readResults) == 0 {
		return Result{}, nil
	}
	res := m.readResults[0]
	m.readResults = m.readResults[1:]
	return res, nil
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryClient) Close(context.Context) error {
	return nil
}

// WriteCalls returns a snapshot of executed write queries.
func (m *MemoryClient) WriteCalls() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.writeCalls...)
}

// ReadCalls returns a snapshot of executed read queries.
func (m *MemoryClient) ReadCalls() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.readCalls...)
}

func (m *MemoryClient) failure(cypher string) error {
	if m.err != nil {
		return m.err
	}
	return m.failOn[normalize(cypher)]
}

func (m *MemoryClient) scripted(cypher string) (Result, bool) {
	key := normalize(cypher)
	queue := m.byQuery[key]
	if len(queue) == 0 {
		return Result{}, false
	}
	m.byQuery[key] = queue[1:]
	return queue[0], true
}

func normalize(cypher string) string {
	return strings.TrimSpace(cypher)
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
