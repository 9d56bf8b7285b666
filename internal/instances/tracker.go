// Package instances keeps the bidirectional index between instance nodes and
// the parameter-source nodes they mirror.
//
// The forward direction answers "which source does this instance copy" and
// the reverse direction "which instances were created from this source".
// Both sides change together so they can never disagree.
package instances

import (
	"cmp"
	"slices"

	"github.com/hashicorp/go-set/v3"
)

// Tracker is the alias-edge index. The zero value is not usable; call New.
type Tracker[K cmp.Ordered] struct {
	sources   map[K]K
	instances map[K]*set.Set[K]
}

// New creates an empty Tracker.
func New[K cmp.Ordered]() *Tracker[K] {
	return &Tracker[K]{
		sources:   make(map[K]K),
		instances: make(map[K]*set.Set[K]),
	}
}

// Link records instance as a copy of source, replacing any previous source.
func (t *Tracker[K]) Link(instance, source K) {
	t.Unlink(instance)

	t.sources[instance] = source

	bucket, ok := t.instances[source]
	if !ok {
		bucket = set.New[K](1)
		t.instances[source] = bucket
	}

	bucket.Insert(instance)
}

// Unlink removes the edge leaving instance. It returns the former source and
// whether there was one.
func (t *Tracker[K]) Unlink(instance K) (K, bool) {
	source, ok := t.sources[instance]
	if !ok {
		return source, false
	}

	delete(t.sources, instance)

	if bucket, exists := t.instances[source]; exists {
		bucket.Remove(instance)

		if bucket.Empty() {
			delete(t.instances, source)
		}
	}

	return source, true
}

// SourceOf returns the source instance was linked to.
func (t *Tracker[K]) SourceOf(instance K) (K, bool) {
	source, ok := t.sources[instance]
	return source, ok
}

// InstancesOf returns the instances directly linked to source, in ascending order.
func (t *Tracker[K]) InstancesOf(source K) []K {
	bucket, ok := t.instances[source]
	if !ok {
		return nil
	}

	out := bucket.Slice()
	slices.Sort(out)

	return out
}

// HasInstances reports whether anything is linked to source.
func (t *Tracker[K]) HasInstances(source K) bool {
	_, ok := t.instances[source]
	return ok
}

// Sources returns every key that has at least one instance, in ascending order.
func (t *Tracker[K]) Sources() []K {
	out := make([]K, 0, len(t.instances))
	for source := range t.instances {
		out = append(out, source)
	}

	slices.Sort(out)

	return out
}

// Len returns the number of edges.
func (t *Tracker[K]) Len() int {
	return len(t.sources)
}

// Clone returns an independent copy of the index.
func (t *Tracker[K]) Clone() *Tracker[K] {
	c := &Tracker[K]{
		sources:   make(map[K]K, len(t.sources)),
		instances: make(map[K]*set.Set[K], len(t.instances)),
	}

	for instance, source := range t.sources {
		c.sources[instance] = source
	}

	for source, bucket := range t.instances {
		c.instances[source] = bucket.Copy()
	}

	return c
}
