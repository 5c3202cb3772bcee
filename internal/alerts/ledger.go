package alerts

import (
	"sort"
	"sync"
)

// Ledger is the set of product ids that already have an outstanding low stock alert.
// It lives for the process lifetime and is never persisted.
type Ledger struct {
	mu  sync.Mutex
	ids map[uint]struct{}
}

func NewLedger() *Ledger {
	return &Ledger{ids: make(map[uint]struct{})}
}

// MarkIfAbsent adds id and reports true, or reports false if it was already present.
// The check and the insert happen under one lock.
func (l *Ledger) MarkIfAbsent(id uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.ids[id]; ok {
		return false
	}
	l.ids[id] = struct{}{}
	return true
}

// Remove deletes id and reports whether it was present
func (l *Ledger) Remove(id uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.ids[id]; !ok {
		return false
	}
	delete(l.ids, id)
	return true
}

// Reset empties the ledger and returns how many entries were dropped
func (l *Ledger) Reset() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.ids)
	l.ids = make(map[uint]struct{})
	return n
}

// IDs returns the alerted ids in ascending order
func (l *Ledger) IDs() []uint {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := make([]uint, 0, len(l.ids))
	for id := range l.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ids)
}
