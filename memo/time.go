package memo

import (
	"github.com/rickb777/date/v2/timespan"
)

// TimeSpan bounds one recomputation in time. See Slot.LastRecompute.
type TimeSpan = timespan.TimeSpan
