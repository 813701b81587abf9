package memo

import (
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

// runVerified invokes derive twice in immediate succession and compares the
// two results under the same equality rule the comparator applies to
// dependencies. Unequal results mean derive read something outside its
// declared dependencies or mutated state between the calls; that is surfaced
// as a non-fatal warning naming the call site, and the second result is still
// the one stored and returned. The harness never aborts the host cycle.
func (s *Slot) runVerified(derive func() (any, error)) (any, error) {
	first, err := derive()
	if err != nil {
		return nil, err
	}
	second, err := derive()
	if err != nil {
		return nil, err
	}
	if !same(first, second) {
		s.logger.Warn("impure derivation detected",
			zap.String("call_site", string(s.id)),
			zap.Any("first", first),
			zap.Any("second", second),
			zap.String("diff", resultDiff(first, second)),
		)
	}
	return second, nil
}

// resultDiff renders a structural diff of the two results for the warning.
// cmp panics on unexported fields, so the diff is best effort only.
func resultDiff(first, second any) (diff string) {
	defer func() {
		if recover() != nil {
			diff = "(values not diffable)"
		}
	}()
	return cmp.Diff(first, second)
}
