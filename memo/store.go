package memo

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// SlotStore is the registry's backing table from call-site identity to slot.
// Stores are not required to be safe for concurrent use; the Registry applies
// its own locking when sharding is enabled.
//
// A store may evict entries under its own residency policy. By contract an
// evicted identity is indistinguishable from a retired one: the next SlotFor
// yields a fresh empty slot. The default map store never evicts.
type SlotStore interface {
	Load(id CallSiteID) (*Slot, bool)
	// LoadOrStore returns the resident slot for id, inserting slot when id is
	// absent. The bool reports whether the slot was already resident.
	LoadOrStore(id CallSiteID, slot *Slot) (*Slot, bool)
	Delete(id CallSiteID)
	Len() int
}

type mapStore map[CallSiteID]*Slot

// NewMapStore returns the default unbounded store.
func NewMapStore() SlotStore {
	return mapStore{}
}

func (m mapStore) Load(id CallSiteID) (*Slot, bool) {
	s, ok := m[id]
	return s, ok
}

func (m mapStore) LoadOrStore(id CallSiteID, slot *Slot) (*Slot, bool) {
	if cur, ok := m[id]; ok {
		return cur, true
	}
	m[id] = slot
	return slot, false
}

func (m mapStore) Delete(id CallSiteID) {
	delete(m, id)
}

func (m mapStore) Len() int {
	return len(m)
}

type lruStore struct {
	cache *lru.Cache[CallSiteID, *Slot]
}

// NewLRUStore returns a bounded store that evicts the least recently used
// call site beyond capacity. Eviction policy is deliberately the host's
// choice, not the slot's: picking this store is how a host opts into bounded
// residency.
func NewLRUStore(capacity int) (SlotStore, error) {
	c, err := lru.New[CallSiteID, *Slot](capacity)
	if err != nil {
		return nil, err
	}
	return lruStore{cache: c}, nil
}

func (s lruStore) Load(id CallSiteID) (*Slot, bool) {
	return s.cache.Get(id)
}

func (s lruStore) LoadOrStore(id CallSiteID, slot *Slot) (*Slot, bool) {
	if cur, ok := s.cache.Get(id); ok {
		return cur, true
	}
	s.cache.Add(id, slot)
	return slot, false
}

func (s lruStore) Delete(id CallSiteID) {
	s.cache.Remove(id)
}

func (s lruStore) Len() int {
	return s.cache.Len()
}
