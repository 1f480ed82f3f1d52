// Package idgen generates participant and session identifiers.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator hands out identifiers that are never repeated for the lifetime
// of the generator.
type Generator interface {
	NewID() string
}

// UUID generates random (version 4) UUIDs.
type UUID struct{}

// NewID returns a new UUID string.
func (UUID) NewID() string {
	return uuid.New().String()
}

// Counter generates prefix1, prefix2, ... Safe for concurrent use.
type Counter struct {
	prefix string
	next   atomic.Uint64
}

// NewCounter creates a Counter whose IDs start with prefix.
func NewCounter(prefix string) *Counter {
	return &Counter{prefix: prefix}
}

// NewID returns the next identifier in sequence.
func (c *Counter) NewID() string {
	return fmt.Sprintf("%s%d", c.prefix, c.next.Add(1))
}
