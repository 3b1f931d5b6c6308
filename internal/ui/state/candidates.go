package state

// Store is the immutable candidate snapshot for one session. Order is the
// order the candidates were discovered in and duplicates are kept.
type Store struct {
	items []string
}

// NewStore copies the supplied candidates into a new store.
func NewStore(candidates []string) *Store {
	return &Store{items: CloneCandidates(candidates)}
}

// Len returns the number of candidates.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// At returns the candidate at index i.
func (s *Store) At(i int) string {
	return s.items[i]
}

// Candidates returns a copy of the stored candidates.
func (s *Store) Candidates() []string {
	if s == nil {
		return nil
	}
	return CloneCandidates(s.items)
}

// CloneCandidates produces a shallow copy of the provided candidates.
func CloneCandidates(items []string) []string {
	dup := make([]string, len(items))
	copy(dup, items)
	return dup
}
