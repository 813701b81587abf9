package memo

import (
	"slices"
	"time"

	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/zap"
)

// entry is the snapshot/value pair of one successful recomputation. A slot
// replaces its entry wholesale, never field by field, so a reader holding the
// pointer always sees a matched pair.
type entry struct {
	snap  Snapshot
	value any
}

// Slot is the persistent cache unit for one call site. A slot holds the last
// computed value together with the snapshot that produced it, and decides
// reuse versus recompute on every Get.
//
// A slot is not internally locked. The host serializes access per call site,
// either by construction or through a sharded Registry.
type Slot struct {
	id     CallSiteID
	logger *zap.Logger
	verify bool

	entry         *entry
	generation    uint64
	lastRecompute TimeSpan
}

func newSlot(id CallSiteID, logger *zap.Logger, verify bool) *Slot {
	return &Slot{id: id, logger: logger, verify: verify}
}

// Get is the memoized-read operation. When snap matches the stored snapshot,
// the stored value is returned and derive is not invoked. Otherwise derive
// runs (twice under verification mode), and on success the slot stores the new
// pair and bumps its generation.
//
// An error from derive propagates unchanged and leaves the stored pair
// untouched, so a later Get with the old snapshot still reuses the last good
// value. The same holds when derive panics: the store happens only after a
// successful return.
func (s *Slot) Get(snap Snapshot, derive func() (any, error)) (any, error) {
	if e := s.entry; e != nil {
		if len(e.snap) != len(snap) {
			// Arity change is a caller bug, but it must heal, not fault.
			s.logger.Warn("dependency list length changed",
				zap.String("call_site", string(s.id)),
				zap.Int("stored_len", len(e.snap)),
				zap.Int("next_len", len(snap)),
			)
		} else if unchanged(e.snap, snap) {
			return e.value, nil
		}
	}

	from := time.Now()
	value, err := s.run(derive)
	if err != nil {
		return nil, err
	}
	// The snapshot is cloned so a host reusing its deps buffer across cycles
	// cannot mutate the stored pair in place.
	s.entry = &entry{snap: slices.Clone(snap), value: value}
	s.generation++
	s.lastRecompute = timespan.BetweenTimes(from, time.Now())
	return value, nil
}

func (s *Slot) run(derive func() (any, error)) (any, error) {
	if s.verify {
		return s.runVerified(derive)
	}
	return derive()
}

// Generation returns the number of successful recomputations so far. It is
// monotone per slot, which lets a host detect stale reads across speculative
// cycles and lets tests pin down exactly when derive ran.
func (s *Slot) Generation() uint64 {
	return s.generation
}

// LastRecompute returns the time span of the most recent recomputation, or
// the zero span when the slot has never computed.
func (s *Slot) LastRecompute() TimeSpan {
	return s.lastRecompute
}

// drop releases the stored pair so a retired slot leaks no history even to a
// host that kept the pointer around.
func (s *Slot) drop() {
	s.entry = nil
}
