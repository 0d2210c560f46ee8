package util

import (
	"github.com/oklog/ulid/v2"
)

// NewRunID returns a ULID used to correlate the logs, cache entries and rows of one harvest run.
// ulid.Make draws from a process-wide monotonic entropy source, so IDs sort by creation time.
func NewRunID() string {
	return ulid.Make().String()
}
