package numa

import (
	"github.com/pkg/errors"
)

// ErrNoCapacity reports that no zone can absorb the requested CPU quantity.
// Callers fall back to launching unpinned; pinning is an optimization, not a
// correctness requirement.
var ErrNoCapacity = errors.New("no NUMA zone has sufficient remaining capacity")

// PlacementRequest is one launch's claim: the wrapper pid that will become
// the container runtime, and the CPU quantity the scheduler granted it.
type PlacementRequest struct {
	Pid  int
	Cpus float64
}

// Place picks a zone for the request, first-fit in ascending zone id. The
// ascending scan is a deliberate deterministic tie-break: zones are fixed
// hardware, not bins to be opened on demand, so when nothing fits the answer
// is ErrNoCapacity rather than a new zone. On success the request's entry
// has been appended to the chosen zone and its id is returned.
func Place(ledger *Ledger, req PlacementRequest) (int, error) {
	for i := range ledger.Zones {
		zone := &ledger.Zones[i]
		if zone.Committed()+req.Cpus <= zone.CoreCapacity {
			zone.Entries = append(zone.Entries, PlacementEntry{Pid: req.Pid, Cpus: req.Cpus})
			return zone.Id, nil
		}
	}
	return -1, ErrNoCapacity
}
