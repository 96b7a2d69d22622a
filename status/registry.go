package status

import (
	"sort"
	"strconv"
	"sync/atomic"
)

// Registry groups metric maps by value type
// Writers cache pointers once; readers on any goroutine see atomic values
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns the number of metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Metric is one formatted key/value pair
type Metric struct {
	Key   string
	Value string
}

// Snapshot formats every metric, sorted by key
func (r *Registry) Snapshot() []Metric {
	out := make([]Metric, 0, r.TotalCount())
	r.Bools.Range(func(k string, p *atomic.Bool) {
		out = append(out, Metric{k, strconv.FormatBool(p.Load())})
	})
	r.Ints.Range(func(k string, p *atomic.Int64) {
		out = append(out, Metric{k, strconv.FormatInt(p.Load(), 10)})
	})
	r.Floats.Range(func(k string, p *AtomicFloat) {
		out = append(out, Metric{k, strconv.FormatFloat(p.Get(), 'f', -1, 64)})
	})
	r.Strings.Range(func(k string, p *AtomicString) {
		out = append(out, Metric{k, p.Load()})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
