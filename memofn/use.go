package memofn

import (
	"github.com/on-the-ground/memo_ive_go/memo"
)

func UseI1[D1 comparable, O any](
	reg *memo.Registry,
	id memo.CallSiteID,
	d1 D1,
	derive func() (O, error),
) (O, error) {
	return memo.Use(reg, id, memo.Snapshot{d1}, derive)
}

func UseI2[D1, D2 comparable, O any](
	reg *memo.Registry,
	id memo.CallSiteID,
	d1 D1, d2 D2,
	derive func() (O, error),
) (O, error) {
	return memo.Use(reg, id, memo.Snapshot{d1, d2}, derive)
}

func UseI3[D1, D2, D3 comparable, O any](
	reg *memo.Registry,
	id memo.CallSiteID,
	d1 D1, d2 D2, d3 D3,
	derive func() (O, error),
) (O, error) {
	return memo.Use(reg, id, memo.Snapshot{d1, d2, d3}, derive)
}

func UseI4[D1, D2, D3, D4 comparable, O any](
	reg *memo.Registry,
	id memo.CallSiteID,
	d1 D1, d2 D2, d3 D3, d4 D4,
	derive func() (O, error),
) (O, error) {
	return memo.Use(reg, id, memo.Snapshot{d1, d2, d3, d4}, derive)
}
