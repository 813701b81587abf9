package memo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/on-the-ground/memo_ive_go/memo"
)

const impurityWarning = "impure derivation detected"

func newVerifyingRegistry(t *testing.T) (*memo.Registry, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.WarnLevel)
	reg := memo.New(
		memo.WithLogger(zap.New(core)),
		memo.WithVerification(),
	)
	return reg, logs
}

func TestVerification_PureDeriveProducesNoWarning(t *testing.T) {
	reg, logs := newVerifyingRegistry(t)
	id := memo.CallSiteID("pure")

	calls := 0
	for _, deps := range []memo.Snapshot{{2, 3}, {2, 4}, {5, 5}} {
		d := deps
		v, err := memo.Use(reg, id, d, func() (int, error) {
			calls++
			return d[0].(int) + d[1].(int), nil
		})
		require.NoError(t, err)
		assert.Equal(t, d[0].(int)+d[1].(int), v)
	}

	// three recomputes, each double-invoked, none impure
	assert.Equal(t, 6, calls)
	assert.Equal(t, 0, logs.FilterMessage(impurityWarning).Len())
}

func TestVerification_ImpureDeriveWarnsAndKeepsSecondResult(t *testing.T) {
	reg, logs := newVerifyingRegistry(t)
	id := memo.CallSiteID("leaky-counter")

	counter := 0
	v, err := memo.Use(reg, id, memo.Snapshot{"go"}, func() (int, error) {
		counter++ // reads state outside the declared dependencies
		return counter, nil
	})
	require.NoError(t, err)

	// second invocation wins, cycle is not aborted
	assert.Equal(t, 2, v)

	warned := logs.FilterMessage(impurityWarning)
	require.Equal(t, 1, warned.Len())
	fields := warned.All()[0].ContextMap()
	assert.Equal(t, "leaky-counter", fields["call_site"])
	assert.Equal(t, int64(1), fields["first"])
	assert.Equal(t, int64(2), fields["second"])
	assert.NotEmpty(t, fields["diff"])

	// the impure second result is what got cached
	cached, err := memo.Use(reg, id, memo.Snapshot{"go"}, func() (int, error) {
		t.Fatal("unchanged snapshot must not recompute")
		return 0, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, cached)
}

func TestVerification_CompoundResultComparedByIdentity(t *testing.T) {
	reg, logs := newVerifyingRegistry(t)
	id := memo.CallSiteID("allocating")

	// a derive that allocates a fresh compound result per call is impure
	// under the identity rule, exactly like a dependency would be
	v, err := memo.Use(reg, id, memo.Snapshot{1}, func() (*struct{ N int }, error) {
		return &struct{ N int }{N: 7}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v.N)
	assert.Equal(t, 1, logs.FilterMessage(impurityWarning).Len())

	// a stable shared result stays silent
	shared := &struct{ N int }{N: 8}
	_, err = memo.Use(reg, memo.CallSiteID("stable"), memo.Snapshot{1}, func() (*struct{ N int }, error) {
		return shared, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage(impurityWarning).Len())
}

func TestVerification_OffByDefault(t *testing.T) {
	reg := memo.New()
	id := memo.CallSiteID("prod")

	calls := 0
	_, err := memo.Use(reg, id, memo.Snapshot{1}, func() (int, error) {
		calls++
		return calls, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestVerification_SecondFailurePropagates(t *testing.T) {
	reg, _ := newVerifyingRegistry(t)
	id := memo.CallSiteID("flaky")

	calls := 0
	_, err := memo.Use(reg, id, memo.Snapshot{1}, func() (int, error) {
		calls++
		if calls == 2 {
			return 0, assert.AnError
		}
		return 1, nil
	})
	require.ErrorIs(t, err, assert.AnError)

	// failure left the slot empty: the next call computes from scratch
	assert.Equal(t, uint64(0), reg.SlotFor(id).Generation())
}
