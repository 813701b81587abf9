package memo

import (
	"github.com/google/uuid"
)

// CallSiteID is a stable, opaque token identifying one logical computation
// location across cycles. The host owns identity: the token must stay the same
// for the lifetime of a logical call location and must not be derived from
// argument values. The cache never invents or guesses identity.
type CallSiteID string

// NewCallSiteID mints a fresh token for hosts that have no natural key for a
// call location (an arena index or graph-node id works just as well).
func NewCallSiteID() CallSiteID {
	return CallSiteID(uuid.New().String())
}
