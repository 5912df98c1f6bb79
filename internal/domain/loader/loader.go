// Package loader implements the reference-counted busy indicator.
package loader

import "sync"

// Loader is visible while at least one operation is in flight.
type Loader struct {
	mu    sync.Mutex
	count int
}

func (l *Loader) Show() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count++
}

// Hide decrements the counter. It never goes below zero.
func (l *Loader) Hide() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.count > 0 {
		l.count--
	}
}

func (l *Loader) Visible() bool {
	return l.Count() > 0
}

func (l *Loader) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Track shows the loader and returns the matching Hide, for use with defer.
func (l *Loader) Track() func() {
	l.Show()
	var once sync.Once
	return func() { once.Do(l.Hide) }
}

// Set keeps one loader per flow. Idle loaders are dropped.
type Set struct {
	mu      sync.Mutex
	loaders map[string]*Loader
}

func NewSet() *Set {
	return &Set{loaders: map[string]*Loader{}}
}

// Track shows the flow's loader and returns its Hide.
func (s *Set) Track(flowID string) func() {
	s.mu.Lock()
	l, ok := s.loaders[flowID]
	if !ok {
		l = &Loader{}
		s.loaders[flowID] = l
	}
	l.Show()
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			l.Hide()
			if !l.Visible() && s.loaders[flowID] == l {
				delete(s.loaders, flowID)
			}
		})
	}
}

func (s *Set) Visible(flowID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.loaders[flowID]
	return ok && l.Visible()
}

// Len returns the number of flows with a visible loader.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loaders)
}
