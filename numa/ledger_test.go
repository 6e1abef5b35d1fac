package numa

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/ycaihua/paasta/numa/mocks"
)

var ledgerSeq = 0

func memLedgerURL() string {
	ledgerSeq++
	return fmt.Sprintf("mem://localhost/ledger_test/%d/numa_ledger.json", ledgerSeq)
}

func TestLoadFreshWhenAbsent(t *testing.T) {
	topo := fakeTopology(t, 2, 2)
	store := NewStore(memLedgerURL(), topo)

	ledger := store.Load(context.Background())
	if len(ledger.Zones) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(ledger.Zones))
	}
	for i, zone := range ledger.Zones {
		if zone.Id != i || zone.CoreCapacity != 2 || len(zone.Entries) != 0 {
			t.Errorf("unexpected fresh zone %d: %+v", i, zone)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	topo := fakeTopology(t, 2, 2)
	store := NewStore(memLedgerURL(), topo)

	ledger := store.Load(ctx)
	ledger.Zones[0].Entries = append(ledger.Zones[0].Entries, PlacementEntry{Pid: 100, Cpus: 1.5})
	ledger.Zones[1].Entries = append(ledger.Zones[1].Entries, PlacementEntry{Pid: 200, Cpus: 0.5})
	if err := store.Save(ctx, ledger); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := store.Load(ctx)
	if len(loaded.Zones) != 2 {
		t.Fatalf("expected 2 zones after reload, got %d", len(loaded.Zones))
	}
	if got := loaded.Zones[0].Entries; len(got) != 1 || got[0] != (PlacementEntry{Pid: 100, Cpus: 1.5}) {
		t.Errorf("zone 0 entries did not round-trip: %+v", got)
	}
	if got := loaded.Zones[1].Entries; len(got) != 1 || got[0] != (PlacementEntry{Pid: 200, Cpus: 0.5}) {
		t.Errorf("zone 1 entries did not round-trip: %+v", got)
	}
}

func TestLoadCorruptFallsBackToFresh(t *testing.T) {
	ctx := context.Background()
	topo := fakeTopology(t, 2)
	url := memLedgerURL()

	fs := afs.New()
	if err := fs.Upload(ctx, url, file.DefaultFileOsMode, bytes.NewReader([]byte("not json at all"))); err != nil {
		t.Fatalf("seeding corrupt ledger: %v", err)
	}

	ledger := NewStore(url, topo).Load(ctx)
	if len(ledger.Zones) != 1 || len(ledger.Zones[0].Entries) != 0 {
		t.Errorf("corrupt state should load as a fresh ledger, got %+v", ledger)
	}
}

func TestLoadDropsZonesUnknownToTopology(t *testing.T) {
	ctx := context.Background()
	url := memLedgerURL()

	// Persist with a 2-zone topology, reload after "losing" a zone.
	wide := NewStore(url, fakeTopology(t, 1, 1))
	ledger := wide.Load(ctx)
	ledger.Zones[1].Entries = append(ledger.Zones[1].Entries, PlacementEntry{Pid: 300, Cpus: 1})
	if err := wide.Save(ctx, ledger); err != nil {
		t.Fatalf("Save: %v", err)
	}

	narrow := NewStore(url, fakeTopology(t, 1)).Load(ctx)
	if len(narrow.Zones) != 1 || narrow.Zones[0].Id != 0 {
		t.Errorf("expected only topology-known zones, got %+v", narrow.Zones)
	}
}

func TestReclaimDead(t *testing.T) {
	ledger := &Ledger{Zones: []Zone{
		{Id: 0, CoreCapacity: 2, Entries: []PlacementEntry{{Pid: 100, Cpus: 1}, {Pid: 200, Cpus: 1}}},
		{Id: 1, CoreCapacity: 2, Entries: []PlacementEntry{{Pid: 300, Cpus: 2}}},
	}}
	procs := NewInMemoryProcessTable(100)

	if removed := ReclaimDead(ledger, procs); removed != 2 {
		t.Errorf("expected 2 reclaimed entries, got %d", removed)
	}
	if len(ledger.Zones[0].Entries) != 1 || ledger.Zones[0].Entries[0].Pid != 100 {
		t.Errorf("live entry should survive reclamation: %+v", ledger.Zones[0].Entries)
	}
	if len(ledger.Zones[1].Entries) != 0 {
		t.Errorf("dead entry should be gone: %+v", ledger.Zones[1].Entries)
	}

	// Idempotent: running again removes nothing and resurrects nothing.
	if removed := ReclaimDead(ledger, procs); removed != 0 {
		t.Errorf("second reclamation removed %d entries, expected 0", removed)
	}
	if len(ledger.Zones[0].Entries) != 1 || len(ledger.Zones[1].Entries) != 0 {
		t.Errorf("second reclamation changed the ledger: %+v", ledger.Zones)
	}
}

func TestReclaimDeadProbesEveryEntryOnce(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	procs := mocks.NewMockProcessTable(mockCtrl)
	procs.EXPECT().IsAlive(100).Return(true)
	procs.EXPECT().IsAlive(200).Return(false)

	ledger := &Ledger{Zones: []Zone{
		{Id: 0, CoreCapacity: 2, Entries: []PlacementEntry{{Pid: 100, Cpus: 1}, {Pid: 200, Cpus: 1}}},
	}}
	if removed := ReclaimDead(ledger, procs); removed != 1 {
		t.Errorf("expected 1 reclaimed entry, got %d", removed)
	}
}

func TestUnixProcessTable(t *testing.T) {
	procs := NewProcessTable()
	if !procs.IsAlive(os.Getpid()) {
		t.Errorf("expected this test's own pid to read as alive")
	}
}
