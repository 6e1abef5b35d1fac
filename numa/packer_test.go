package numa

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func twoZoneLedger(capacity float64) *Ledger {
	return &Ledger{Zones: []Zone{
		{Id: 0, CoreCapacity: capacity},
		{Id: 1, CoreCapacity: capacity},
	}}
}

func TestPlaceFirstFit(t *testing.T) {
	ledger := twoZoneLedger(4)

	// Both fit in zone 0; the low-numbered zone wins ties.
	for i := 0; i < 2; i++ {
		zone, err := Place(ledger, PlacementRequest{Pid: 100 + i, Cpus: 1})
		if err != nil || zone != 0 {
			t.Errorf("request %d: got zone %d err %v, expected zone 0", i, zone, err)
		}
	}
	// 2 cpus left in zone 0, so 3 spill to zone 1.
	zone, err := Place(ledger, PlacementRequest{Pid: 102, Cpus: 3})
	if err != nil || zone != 1 {
		t.Errorf("got zone %d err %v, expected zone 1", zone, err)
	}
}

func TestPlaceSequentialFill(t *testing.T) {
	ledger := twoZoneLedger(1)

	first, err := Place(ledger, PlacementRequest{Pid: 101, Cpus: 1})
	if err != nil || first != 0 {
		t.Errorf("first request: got zone %d err %v, expected zone 0", first, err)
	}
	second, err := Place(ledger, PlacementRequest{Pid: 102, Cpus: 1})
	if err != nil || second != 1 {
		t.Errorf("second request: got zone %d err %v, expected zone 1", second, err)
	}
	if _, err := Place(ledger, PlacementRequest{Pid: 103, Cpus: 1}); err != ErrNoCapacity {
		t.Errorf("third request: expected ErrNoCapacity, got %v", err)
	}
}

func TestPlaceOversizedRequest(t *testing.T) {
	ledger := twoZoneLedger(2)
	// 3 cpus fit nowhere even though 4 are free in total: a request never
	// spans zones.
	if _, err := Place(ledger, PlacementRequest{Pid: 100, Cpus: 3}); err != ErrNoCapacity {
		t.Errorf("expected ErrNoCapacity for oversized request, got %v", err)
	}
}

func TestPlaceSkipsZeroCapacityZone(t *testing.T) {
	ledger := &Ledger{Zones: []Zone{
		{Id: 0, CoreCapacity: 0},
		{Id: 1, CoreCapacity: 2},
	}}
	zone, err := Place(ledger, PlacementRequest{Pid: 100, Cpus: 1})
	if err != nil || zone != 1 {
		t.Errorf("got zone %d err %v, expected unusable zone 0 skipped", zone, err)
	}
}

func TestPlaceProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 1000
	properties := gopter.NewProperties(parameters)

	properties.Property("requests that fit in aggregate all place in range", prop.ForAll(
		func(numZones, capacity, reqSize int) bool {
			ledger := &Ledger{}
			for z := 0; z < numZones; z++ {
				ledger.Zones = append(ledger.Zones, Zone{Id: z, CoreCapacity: float64(capacity)})
			}
			perZone := capacity / reqSize
			total := numZones * perZone
			for i := 0; i < total; i++ {
				zone, err := Place(ledger, PlacementRequest{Pid: 1000 + i, Cpus: float64(reqSize)})
				if err != nil {
					return false
				}
				if zone < 0 || zone >= numZones {
					return false
				}
			}
			for _, z := range ledger.Zones {
				if z.Committed() > z.CoreCapacity {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 4),
		gen.IntRange(1, 16),
		gen.IntRange(1, 16),
	))

	properties.Property("a full ledger always reports exhaustion", prop.ForAll(
		func(numZones, capacity int, extra float64) bool {
			ledger := &Ledger{}
			for z := 0; z < numZones; z++ {
				ledger.Zones = append(ledger.Zones, Zone{
					Id:           z,
					CoreCapacity: float64(capacity),
					Entries:      []PlacementEntry{{Pid: 1, Cpus: float64(capacity)}},
				})
			}
			_, err := Place(ledger, PlacementRequest{Pid: 2, Cpus: extra})
			return err == ErrNoCapacity
		},
		gen.IntRange(1, 4),
		gen.IntRange(1, 16),
		gen.Float64Range(0.01, 32),
	))

	properties.TestingRun(t)
}
