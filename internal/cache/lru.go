// Package cache provides caching utilities for compiled schemas.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// SchemaCache provides thread-safe LRU caching of compiled schema sets keyed
// by normalized version.
type SchemaCache[T any] struct {
	cache *lru.Cache[string, T]
}

// NewSchemaCache creates a new LRU cache holding at most maxVersions entries.
func NewSchemaCache[T any](maxVersions int) (*SchemaCache[T], error) {
	c, err := lru.New[string, T](maxVersions)
	if err != nil {
		return nil, err
	}
	return &SchemaCache[T]{cache: c}, nil
}

// Get retrieves the compiled set for a version.
// Returns the value and true if found, the zero value and false otherwise.
func (c *SchemaCache[T]) Get(version string) (T, bool) {
	return c.cache.Get(version)
}

// Put adds or replaces the compiled set for a version.
func (c *SchemaCache[T]) Put(version string, v T) {
	c.cache.Add(version, v)
}

// Len returns the current number of cached versions.
func (c *SchemaCache[T]) Len() int {
	return c.cache.Len()
}

// Purge drops every cached version.
func (c *SchemaCache[T]) Purge() {
	c.cache.Purge()
}
