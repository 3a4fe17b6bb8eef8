package wiki

import "sync"

// VisitedSet is the run-scoped set of URLs already claimed for expansion.
// Check-and-claim is a single atomic operation so that branches racing on the
// same URL cannot both proceed past the claim.
type VisitedSet struct {
	mu   sync.Mutex
	urls map[string]struct{}
}

// NewVisitedSet creates an empty visited set for one crawl run.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{urls: make(map[string]struct{})}
}

// Claim atomically records the URL as visited. It returns true when the
// caller won the claim and false when the URL was already claimed.
func (s *VisitedSet) Claim(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.urls[url]; exists {
		return false
	}
	s.urls[url] = struct{}{}
	return true
}

// Len returns the number of claimed URLs.
func (s *VisitedSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.urls)
}
