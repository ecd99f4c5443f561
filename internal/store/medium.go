// Package store persists day records, plans, goals and timer state through a
// generic key-value medium. The SQLite medium is the real backend; MemMedium
// backs tests.
package store

import "sort"

// Medium is the generic persistence contract: string keys, string values,
// plus key enumeration for history scans. Implementations are assumed
// single-writer-single-reader; cross-process locking is out of scope.
type Medium interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)
	// Set stores a value, overwriting any previous one.
	Set(key, value string) error
	// Keys returns all stored keys, in no particular order.
	Keys() ([]string, error)
}

// MemMedium is an in-memory Medium for tests and ephemeral use.
type MemMedium struct {
	m map[string]string
}

func NewMemMedium() *MemMedium {
	return &MemMedium{m: map[string]string{}}
}

func (s *MemMedium) Get(key string) (string, bool, error) {
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *MemMedium) Set(key, value string) error {
	s.m[key] = value
	return nil
}

func (s *MemMedium) Delete(key string) error {
	delete(s.m, key)
	return nil
}

func (s *MemMedium) Keys() ([]string, error) {
	out := make([]string, 0, len(s.m))
	for k := range s.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}
