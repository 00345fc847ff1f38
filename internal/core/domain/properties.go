package domain

import (
	"iter"
	"slices"
	"strings"
)

// Property is a named value of a Properties map.
type Property[V any] struct {
	Name  string
	Value V
}

// Properties is an immutable map ordered by property name.
type Properties[V any] struct {
	items []Property[V]
}

// NewProperties builds a name-ordered Properties from m.
func NewProperties[V any](m map[string]V) Properties[V] {
	items := make([]Property[V], 0, len(m))
	for name, v := range m {
		items = append(items, Property[V]{Name: name, Value: v})
	}
	slices.SortFunc(items, func(a, b Property[V]) int { return strings.Compare(a.Name, b.Name) })
	return Properties[V]{items: items}
}

// Len returns the number of properties.
func (p Properties[V]) Len() int {
	return len(p.items)
}

// Get returns the value recorded for name.
func (p Properties[V]) Get(name string) (V, bool) {
	i, found := slices.BinarySearchFunc(p.items, name, func(e Property[V], n string) int {
		return strings.Compare(e.Name, n)
	})
	if !found {
		var zero V
		return zero, false
	}
	return p.items[i].Value, true
}

// Names returns the property names in order.
func (p Properties[V]) Names() []string {
	names := make([]string, len(p.items))
	for i, item := range p.items {
		names[i] = item.Name
	}
	return names
}

// All yields name/value pairs in name order.
func (p Properties[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, item := range p.items {
			if !yield(item.Name, item.Value) {
				return
			}
		}
	}
}

// Map returns a copy of the properties as a plain map.
func (p Properties[V]) Map() map[string]V {
	m := make(map[string]V, len(p.items))
	for _, item := range p.items {
		m[item.Name] = item.Value
	}
	return m
}
