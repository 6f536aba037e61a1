// Package catalog holds the immutable component catalog and the read-only
// queries served over it.
//
// A Catalog is built once, either from the built-in samples or from the maps
// produced by the loader package, and is never mutated afterwards. Every
// query returns copies, so a single *Catalog can be shared by any number of
// concurrent request handlers without locking.
package catalog

import (
	"slices"
	"strings"
)

// Catalog is a frozen snapshot of components and documentation topics.
type Catalog struct {
	components    map[string]Component
	documentation map[string]Documentation
}

// New builds a catalog from the given maps. The maps and their records are
// deep-copied; later changes by the caller have no effect.
func New(components map[string]Component, docs map[string]Documentation) *Catalog {
	c := &Catalog{
		components:    make(map[string]Component, len(components)),
		documentation: make(map[string]Documentation, len(docs)),
	}
	for name, comp := range components {
		c.components[name] = comp.Clone()
	}
	for topic, doc := range docs {
		c.documentation[topic] = doc.Clone()
	}
	return c
}

// Empty returns a catalog with no components and no documentation.
func Empty() *Catalog {
	return New(nil, nil)
}

// Len returns the number of components.
func (c *Catalog) Len() int {
	return len(c.components)
}

// TopicCount returns the number of documentation topics.
func (c *Catalog) TopicCount() int {
	return len(c.documentation)
}

// ComponentNames returns every component key in ascending order.
func (c *Catalog) ComponentNames() []string {
	return sortedKeys(c.components)
}

// Component returns a copy of the component stored under exactly name.
func (c *Catalog) Component(name string) (Component, bool) {
	comp, ok := c.components[name]
	if !ok {
		return Component{}, false
	}
	return comp.Clone(), true
}

// Documentation returns a copy of the topic stored under exactly topic.
func (c *Catalog) Documentation(topic string) (Documentation, bool) {
	doc, ok := c.documentation[topic]
	if !ok {
		return Documentation{}, false
	}
	return doc.Clone(), true
}

// lookupFold finds a component by exact key, falling back to a
// case-insensitive key match. Keys are walked in sorted order so the
// fallback is deterministic when several keys fold to the same value.
func (c *Catalog) lookupFold(name string) (Component, bool) {
	if comp, ok := c.components[name]; ok {
		return comp, true
	}
	for _, key := range sortedKeys(c.components) {
		if strings.EqualFold(key, name) {
			return c.components[key], true
		}
	}
	return Component{}, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
