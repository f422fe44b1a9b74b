// Package identity provides ID generation for feeds and posts.
package identity

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// UUID allocates random identifiers. Safe for concurrent use.
type UUID struct{}

// NextID returns a new random UUID string.
func (UUID) NextID() string {
	return uuid.NewString()
}

// Sequence allocates monotonically increasing decimal identifiers.
// Useful where reproducible IDs matter, such as tests.
type Sequence struct {
	n atomic.Uint64
}

// NextID returns the next identifier in the sequence, starting at "1".
func (s *Sequence) NextID() string {
	return strconv.FormatUint(s.n.Add(1), 10)
}
