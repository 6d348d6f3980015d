// Package rowfilter builds composable filter-and-sort pipelines over
// in-memory record snapshots. The backing tabular store has no query
// engine, so listing reads the full snapshot and evaluates predicates
// client-side.
package rowfilter

import (
	"iter"
	"sort"
)

// Predicate decides whether an item passes the filter.
type Predicate[T any] func(T) bool

// Direction represents sort order.
type Direction int

const (
	// Asc represents ascending order.
	Asc Direction = iota
	// Desc represents descending order.
	Desc
)

// Builder constructs a filter/sort pipeline. Builders are immutable:
// every method returns a copy, so a partially configured builder can be
// shared and extended without interference.
type Builder[T any] struct {
	preds   []Predicate[T]
	compare func(a, b T) int
	dir     Direction
}

// New creates an empty Builder that passes every item through unchanged.
func New[T any]() *Builder[T] {
	return &Builder[T]{}
}

// Where adds a predicate. Multiple predicates are combined with AND logic.
func (b *Builder[T]) Where(pred Predicate[T]) *Builder[T] {
	nb := b.clone()
	nb.preds = append(nb.preds, pred)
	return nb
}

// OrderBy sets the sort comparison and direction. compare follows the
// cmp.Compare contract: negative when a sorts before b.
func (b *Builder[T]) OrderBy(compare func(a, b T) int, dir Direction) *Builder[T] {
	nb := b.clone()
	nb.compare = compare
	nb.dir = dir
	return nb
}

// Each returns a restartable sequence over the items that pass all
// predicates. Without an OrderBy the sequence is lazy over the input
// snapshot; with one, the matching items are collected and sorted first.
func (b *Builder[T]) Each(items []T) iter.Seq[T] {
	if b.compare == nil {
		return func(yield func(T) bool) {
			for _, item := range items {
				if !b.matches(item) {
					continue
				}
				if !yield(item) {
					return
				}
			}
		}
	}

	sorted := b.Apply(items)
	return func(yield func(T) bool) {
		for _, item := range sorted {
			if !yield(item) {
				return
			}
		}
	}
}

// Apply returns the matching items as a new slice, sorted when an OrderBy
// is configured. The input slice is never modified.
func (b *Builder[T]) Apply(items []T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if b.matches(item) {
			out = append(out, item)
		}
	}

	if b.compare != nil {
		compare := b.compare
		dir := b.dir
		sort.SliceStable(out, func(i, j int) bool {
			c := compare(out[i], out[j])
			if dir == Desc {
				return c > 0
			}
			return c < 0
		})
	}

	return out
}

func (b *Builder[T]) matches(item T) bool {
	for _, pred := range b.preds {
		if !pred(item) {
			return false
		}
	}
	return true
}

func (b *Builder[T]) clone() *Builder[T] {
	nb := &Builder[T]{
		preds:   make([]Predicate[T], len(b.preds)),
		compare: b.compare,
		dir:     b.dir,
	}
	copy(nb.preds, b.preds)
	return nb
}
