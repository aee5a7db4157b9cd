// Package status holds lock-free counters and labels read by the HUD and headless reports
package status

import (
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
)

// Registry is the central metrics facade
// Callers cache pointers during init; frame code writes directly to atomics
type Registry struct {
	mu       sync.RWMutex
	counters map[string]*atomic.Int64
	labels   map[string]*Label
}

// Label is an atomically replaced string value
type Label struct {
	v atomic.Pointer[string]
}

// Store replaces the label value
func (l *Label) Store(s string) {
	l.v.Store(&s)
}

// Load returns the label value, empty if never stored
func (l *Label) Load() string {
	if p := l.v.Load(); p != nil {
		return *p
	}
	return ""
}

// Metric is one formatted snapshot row
type Metric struct {
	Name  string
	Value string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[string]*atomic.Int64),
		labels:   make(map[string]*Label),
	}
}

// Counter returns the counter for name, creating it on first use
func (r *Registry) Counter(name string) *atomic.Int64 {
	r.mu.RLock()
	c, ok := r.counters[name]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok = r.counters[name]; ok {
		return c
	}
	c = new(atomic.Int64)
	r.counters[name] = c
	return c
}

// Label returns the label for name, creating it on first use
func (r *Registry) Label(name string) *Label {
	r.mu.RLock()
	l, ok := r.labels[name]
	r.mu.RUnlock()
	if ok {
		return l
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok = r.labels[name]; ok {
		return l
	}
	l = new(Label)
	r.labels[name] = l
	return l
}

// Snapshot returns all metrics sorted by name
func (r *Registry) Snapshot() []Metric {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Metric, 0, len(r.counters)+len(r.labels))
	for name, c := range r.counters {
		out = append(out, Metric{Name: name, Value: strconv.FormatInt(c.Load(), 10)})
	}
	for name, l := range r.labels {
		out = append(out, Metric{Name: name, Value: l.Load()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
