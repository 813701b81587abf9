package memo

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/on-the-ground/memo_ive_go/shared/helper"
)

// Registry owns the live slots of one host, keyed by call-site identity.
// Multiple registries are fully independent, so independent hosts (or test
// harnesses) never cross-contaminate.
//
// By default a registry is not safe for concurrent use: the host serializes
// cycles per call site, as most single-threaded or externally scheduled hosts
// already do. WithShards opts into striped locking for hosts that cannot.
type Registry struct {
	store  SlotStore
	logger *zap.Logger
	verify bool

	// stripes serialize Get/Use per call site; tableMu guards the store.
	// Both are nil/unused unless sharding is enabled.
	stripes []sync.Mutex
	tableMu sync.Mutex
	sharded bool
}

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithLogger sets the logger receiving diagnostic warnings (dependency arity
// changes, impurity reports). Without it the registry stays silent.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithVerification turns on the double-invocation impurity check for every
// recomputation in this registry. Diagnostic builds only: derive runs twice
// per recompute while this is on.
func WithVerification() Option {
	return func(r *Registry) { r.verify = true }
}

// WithStore replaces the default unbounded map store.
func WithStore(store SlotStore) Option {
	return func(r *Registry) { r.store = store }
}

// WithShards enables internal locking with n lock stripes. Registry.Get and
// Use then serialize per call site, so concurrent cycles on the same identity
// never interleave a partial read of a slot's snapshot/value pair.
func WithShards(n int) Option {
	return func(r *Registry) {
		if n <= 0 {
			n = 1
		}
		r.stripes = make([]sync.Mutex, n)
		r.sharded = true
	}
}

// New constructs an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		store:  NewMapStore(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// lock acquires the stripe serializing id and returns its release func.
// A no-op when sharding is off.
func (r *Registry) lock(id CallSiteID) func() {
	if !r.sharded {
		return func() {}
	}
	stripe := &r.stripes[xxhash.Sum64String(string(id))%uint64(len(r.stripes))]
	stripe.Lock()
	return stripe.Unlock
}

// SlotFor returns the slot bound to id, creating an empty one on first
// request. Repeated calls with the same identity yield the same slot instance
// until the identity is retired or evicted by the store's residency policy.
//
// In a sharded registry, accessing the returned slot directly bypasses the
// stripe locks; concurrent hosts should go through Get or Use instead.
func (r *Registry) SlotFor(id CallSiteID) *Slot {
	if r.sharded {
		r.tableMu.Lock()
		defer r.tableMu.Unlock()
	}
	slot, _ := r.store.LoadOrStore(id, newSlot(id, r.logger, r.verify))
	return slot
}

// Retire removes and releases the slot bound to id. The identity is treated
// as permanently gone: a later SlotFor with the same token creates a brand
// new, empty slot with no trace of the retired one's history.
func (r *Registry) Retire(id CallSiteID) {
	unlock := r.lock(id)
	defer unlock()
	if r.sharded {
		r.tableMu.Lock()
		defer r.tableMu.Unlock()
	}
	if slot, ok := r.store.Load(id); ok {
		slot.drop()
		r.store.Delete(id)
	}
}

// Len returns the number of live slots.
func (r *Registry) Len() int {
	if r.sharded {
		r.tableMu.Lock()
		defer r.tableMu.Unlock()
	}
	return r.store.Len()
}

// Get performs the memoized read for id in one step: slot lookup (creating
// the slot if needed), snapshot comparison, and recompute-or-reuse. This is
// the serialized path in a sharded registry.
func (r *Registry) Get(id CallSiteID, deps Snapshot, derive func() (any, error)) (any, error) {
	unlock := r.lock(id)
	defer unlock()
	return r.SlotFor(id).Get(deps, derive)
}

// Use is the typed memoized read. It reuses or recomputes exactly like
// Registry.Get and asserts the stored value to T.
//
// One call site must keep one result type: reusing an identity with a
// different T yields a type error, not a silent recompute.
func Use[T any](r *Registry, id CallSiteID, deps Snapshot, derive func() (T, error)) (T, error) {
	return helper.GetTypedValueOf[T](func() (any, error) {
		return r.Get(id, deps, func() (any, error) {
			return derive()
		})
	})
}

// UseFunc caches a function reference gated on deps: while the snapshot is
// unchanged the previously stored reference is returned, so downstream
// identity checks (e.g. a comparator seeing the func as a dependency of its
// own) keep passing. The candidate fn is only stored when deps changed.
func UseFunc[F any](r *Registry, id CallSiteID, deps Snapshot, fn F) F {
	return helper.MustGetTypedValue[F](func() (any, error) {
		return r.Get(id, deps, func() (any, error) {
			return fn, nil
		})
	})
}
