package lsp

import "sync"

// document is an open file and its latest analysis.
type document struct {
	content string
	result  *AnalysisResult
}

// DocumentStore holds open document contents and their analysis keyed by URI.
type DocumentStore struct {
	mu      sync.RWMutex
	docs    map[string]document
	tickets map[string]uint64 // latest Update ticket per URI
	next    uint64
	analyze func(uri, content string) *AnalysisResult
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs:    make(map[string]document),
		tickets: make(map[string]uint64),
		analyze: Analyze,
	}
}

// Open stores content and analyzes it.
func (s *DocumentStore) Open(uri, content string) *AnalysisResult {
	return s.Update(uri, content)
}

// Update replaces content and re-analyzes it. Analysis runs outside the lock.
// If a later Update or a Close for uri lands first, the stale analysis is
// discarded and the stored result is returned instead.
func (s *DocumentStore) Update(uri, content string) *AnalysisResult {
	s.mu.Lock()
	s.next++
	ticket := s.next
	s.tickets[uri] = ticket
	s.mu.Unlock()

	result := s.analyze(uri, content)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tickets[uri] != ticket {
		return s.docs[uri].result
	}
	result.inherit(s.docs[uri].result)
	s.docs[uri] = document{content: content, result: result}
	return result
}

func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
	delete(s.tickets, uri)
}

func (s *DocumentStore) Get(uri string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc.content, ok
}

// Result returns the latest analysis of uri, or nil if it is not open.
func (s *DocumentStore) Result(uri string) *AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[uri].result
}
