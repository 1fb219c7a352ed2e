package domain

// ErrorRecord is a single error code and its explanation text.
type ErrorRecord struct {
	Code        string
	Explanation string
}

// Store maps error codes to explanations and remembers insertion order.
// Setting an existing code replaces its explanation in place, so the last
// write wins while the code keeps its original position.
//
// A Store handed out by the refresh coordinator is a snapshot and must not be
// mutated.
type Store struct {
	codes        []string
	explanations map[string]string
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{explanations: make(map[string]string)}
}

// Set inserts or overwrites the explanation for code.
func (s *Store) Set(code, explanation string) {
	if _, ok := s.explanations[code]; !ok {
		s.codes = append(s.codes, code)
	}
	s.explanations[code] = explanation
}

// Get returns the explanation for an exact code.
func (s *Store) Get(code string) (string, bool) {
	v, ok := s.explanations[code]
	return v, ok
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.codes) }

// Codes returns the codes in iteration order.
func (s *Store) Codes() []string {
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}

// Records returns all records in iteration order.
func (s *Store) Records() []ErrorRecord {
	out := make([]ErrorRecord, len(s.codes))
	for i, code := range s.codes {
		out[i] = ErrorRecord{Code: code, Explanation: s.explanations[code]}
	}
	return out
}

// Clone returns a deep copy.
func (s *Store) Clone() *Store {
	c := &Store{
		codes:        s.Codes(),
		explanations: make(map[string]string, len(s.explanations)),
	}
	for k, v := range s.explanations {
		c.explanations[k] = v
	}
	return c
}

// Equal reports whether both stores hold the same mapping. Order is ignored.
func (s *Store) Equal(other *Store) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.explanations) != len(other.explanations) {
		return false
	}
	for k, v := range s.explanations {
		if ov, ok := other.explanations[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
