package models

import "sort"

// URLSet is an unordered set of URL strings.
// The zero value is not usable; create one with NewURLSet.
type URLSet struct {
	items map[string]struct{}
}

// NewURLSet creates a set pre-populated with the given URLs.
func NewURLSet(urls ...string) *URLSet {
	s := &URLSet{items: make(map[string]struct{}, len(urls))}
	s.AddAll(urls)
	return s
}

// Add inserts a URL. Empty strings are ignored.
func (s *URLSet) Add(u string) {
	if u == "" {
		return
	}
	s.items[u] = struct{}{}
}

// AddAll inserts every URL in urls.
func (s *URLSet) AddAll(urls []string) {
	for _, u := range urls {
		s.Add(u)
	}
}

// Contains reports whether u is in the set.
func (s *URLSet) Contains(u string) bool {
	_, ok := s.items[u]
	return ok
}

// Len returns the number of URLs in the set.
func (s *URLSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Sorted returns the members in lexical order. A nil or empty set yields an empty, non-nil slice.
func (s *URLSet) Sorted() []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, 0, len(s.items))
	for u := range s.items {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}
