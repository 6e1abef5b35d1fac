package numa

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// PlacementEntry is one live container's claim on a zone's capacity. The pid
// is the wrapper's own pid at placement time; exec replaces the process
// image, so after handoff that pid is the container runtime itself and the
// entry goes stale exactly when the container exits.
type PlacementEntry struct {
	Pid  int     `json:"pid"`
	Cpus float64 `json:"cpus"`
}

type Zone struct {
	Id           int              `json:"id"`
	CoreCapacity float64          `json:"coreCapacity"`
	Entries      []PlacementEntry `json:"entries"`
}

// Committed sums the CPU claims currently held against this zone.
func (z *Zone) Committed() float64 {
	total := 0.0
	for _, e := range z.Entries {
		total += e.Cpus
	}
	return total
}

// Ledger is the persisted record of per-zone commitments, shared by every
// concurrently-launching wrapper on the host. Zones are kept in ascending
// Id order.
type Ledger struct {
	Zones []Zone `json:"zones"`
}

// ReclaimDead drops every entry whose owner pid is no longer running and
// returns the number of entries removed. Launched containers terminate
// without deregistering, so this must run before every placement decision.
// Idempotent: a dead entry removed once cannot reappear.
func ReclaimDead(ledger *Ledger, procs ProcessTable) int {
	removed := 0
	for i := range ledger.Zones {
		zone := &ledger.Zones[i]
		live := zone.Entries[:0]
		for _, e := range zone.Entries {
			if procs.IsAlive(e.Pid) {
				live = append(live, e)
			} else {
				removed++
			}
		}
		zone.Entries = live
	}
	return removed
}

// Store persists the ledger at a well-known URL. IO goes through afs so
// tests can point it at mem:// storage.
type Store struct {
	fs   afs.Service
	url  string
	topo *Topology
}

func NewStore(url string, topo *Topology) *Store {
	return &Store{fs: afs.New(), url: url, topo: topo}
}

// Load reads persisted zone state. It never fails: absent, unreadable or
// corrupt state yields a fresh ledger built from live topology, because the
// container must still launch even if placement history is gone. Persisted
// zone capacities are always replaced by live topology core counts, and
// persisted zones unknown to topology are dropped.
func (s *Store) Load(ctx context.Context) *Ledger {
	fresh := s.freshLedger()

	ok, err := s.fs.Exists(ctx, s.url)
	if err != nil || !ok {
		return fresh
	}
	data, err := s.fs.DownloadWithURL(ctx, s.url)
	if err != nil {
		log.WithFields(log.Fields{"url": s.url}).Warnf("Unreadable placement ledger, starting fresh: %v", err)
		return fresh
	}
	persisted := &Ledger{}
	if err := json.Unmarshal(data, persisted); err != nil {
		log.WithFields(log.Fields{"url": s.url}).Warnf("Corrupt placement ledger, starting fresh: %v", err)
		return fresh
	}

	entriesByZone := map[int][]PlacementEntry{}
	for _, z := range persisted.Zones {
		entriesByZone[z.Id] = z.Entries
	}
	for i := range fresh.Zones {
		fresh.Zones[i].Entries = entriesByZone[fresh.Zones[i].Id]
	}
	return fresh
}

// Save persists the ledger durably so the next invocation sees it.
func (s *Store) Save(ctx context.Context, ledger *Ledger) error {
	data, err := json.Marshal(ledger)
	if err != nil {
		return errors.Wrap(err, "marshaling placement ledger")
	}
	if err := s.fs.Upload(ctx, s.url, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return errors.Wrapf(err, "storing placement ledger at %s", s.url)
	}
	return nil
}

func (s *Store) freshLedger() *Ledger {
	ledger := &Ledger{}
	for _, zone := range s.topo.Zones() {
		ledger.Zones = append(ledger.Zones, Zone{
			Id:           zone,
			CoreCapacity: float64(len(s.topo.CoresForZone(zone))),
		})
	}
	sort.Slice(ledger.Zones, func(i, j int) bool { return ledger.Zones[i].Id < ledger.Zones[j].Id })
	return ledger
}
