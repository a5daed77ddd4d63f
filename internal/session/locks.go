package session

import (
	"hash/fnv"
	"sync"
)

const lockStripes = 64

// Locks serializes request handling per session ID so concurrent requests
// for one session cannot race the append-once result invariant. Striping
// bounds memory regardless of how many sessions exist.
type Locks struct {
	stripes [lockStripes]sync.Mutex
}

func NewLocks() *Locks { return &Locks{} }

// For returns the mutex guarding the given session ID.
func (l *Locks) For(id string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &l.stripes[h.Sum32()%lockStripes]
}
