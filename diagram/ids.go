package diagram

import (
	"strconv"

	"github.com/google/uuid"
)

// IDAllocator hands out node identifiers. Every operation that creates nodes
// takes an allocator instead of relying on a process-wide counter.
type IDAllocator interface {
	NextID() NodeID
}

// CounterAllocator allocates sequential IDs "0", "1", "2", ...
// It is not safe for concurrent use; give each editing session its own.
type CounterAllocator struct {
	next int
}

// NewCounterAllocator returns a CounterAllocator whose first ID is start.
func NewCounterAllocator(start int) *CounterAllocator {
	return &CounterAllocator{next: start}
}

func (a *CounterAllocator) NextID() NodeID {
	id := NodeID(strconv.Itoa(a.next))
	a.next++
	return id
}

// UUIDAllocator allocates random (version 4) UUIDs. It is safe for concurrent use.
type UUIDAllocator struct{}

func (UUIDAllocator) NextID() NodeID {
	return NodeID(uuid.NewString())
}

