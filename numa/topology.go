package numa

import (
	"bufio"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var errMalformedCpuTable = errors.New("malformed cpu descriptor table")

// Topology reads the host's physical CPU layout from procfs. The layout is
// immutable for the lifetime of the host, so there is nothing to cache or
// synchronize; every accessor re-reads the descriptor table.
type Topology struct {
	// CpuInfoPath is the CPU descriptor table, normally /proc/cpuinfo.
	CpuInfoPath string
	// NumaMapsPath signals per-process NUMA memory mapping support.
	// Its absence means "not NUMA capable", not an error.
	NumaMapsPath string
}

func NewTopology() *Topology {
	return &Topology{
		CpuInfoPath:  "/proc/cpuinfo",
		NumaMapsPath: "/proc/1/numa_maps",
	}
}

func (t *Topology) IsNumaCapable() bool {
	_, err := os.Stat(t.NumaMapsPath)
	return err == nil
}

// CoresForZone returns the logical core indices whose physical id matches
// zone, in ascending order. Malformed or unreadable topology yields nil;
// callers treat an empty core set as "zone unusable".
func (t *Topology) CoresForZone(zone int) []int {
	var cores []int
	err := t.scanPhysicalIds(func(core, physicalId int) {
		if physicalId == zone {
			cores = append(cores, core)
		}
	})
	if err != nil {
		return nil
	}
	return cores
}

// Zones returns the distinct physical ids present in the CPU table, sorted
// ascending. Unreadable topology yields nil.
func (t *Topology) Zones() []int {
	seen := map[int]bool{}
	err := t.scanPhysicalIds(func(core, physicalId int) {
		seen[physicalId] = true
	})
	if err != nil {
		return nil
	}
	zones := make([]int, 0, len(seen))
	for z := range seen {
		zones = append(zones, z)
	}
	sort.Ints(zones)
	return zones
}

// scanPhysicalIds walks the CPU table calling fn once per logical core.
// The core index increments with each "physical id" line, matching the
// order the kernel lists processors.
func (t *Topology) scanPhysicalIds(fn func(core, physicalId int)) error {
	f, err := os.Open(t.CpuInfoPath)
	if err != nil {
		return err
	}
	defer f.Close()

	core := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "physical id") {
			continue
		}
		fields := strings.SplitN(line, ":", 2)
		if len(fields) != 2 {
			return errMalformedCpuTable
		}
		physicalId, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return errMalformedCpuTable
		}
		fn(core, physicalId)
		core++
	}
	return scanner.Err()
}
