package wrapper

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ycaihua/paasta/common/stats"
	"github.com/ycaihua/paasta/numa"
)

// Rewriter produces the final runtime argument vector: NUMA pinning flags
// and a derived hostname, both inserted directly after the "run" token.
// The two stages are independent; either may fail without affecting the
// other or the launch itself.
type Rewriter struct {
	Topo   *numa.Topology
	Store  *numa.Store
	Procs  numa.ProcessTable
	Locker numa.Locker

	// OwnerPid identifies this launch in the placement ledger. After exec it
	// is the container runtime's pid.
	OwnerPid int

	// Fqdn resolves the host's own name.
	Fqdn func() string

	Stat stats.StatsReceiver
}

func NewRewriter(topo *numa.Topology, store *numa.Store, locker numa.Locker, stat stats.StatsReceiver) *Rewriter {
	return &Rewriter{
		Topo:     topo,
		Store:    store,
		Procs:    numa.NewProcessTable(),
		Locker:   locker,
		OwnerPid: os.Getpid(),
		Fqdn:     hostFqdn,
		Stat:     stat,
	}
}

// Rewrite transforms the received argument vector. argv is the vector
// intended for the runtime, program-name placeholder included.
func (r *Rewriter) Rewrite(ctx context.Context, argv []string) []string {
	env := ParseEnvArgs(argv)

	if PinRequested(env) {
		argv = r.pin(ctx, argv, env)
	}

	if taskId := TaskId(env); taskId != "" && !HasHostnameArg(argv) {
		hostname := GenerateHostname(r.Fqdn(), taskId)
		argv = InsertAfterRun(argv, "--hostname="+hostname)
		r.Stat.Counter(stats.HostnameInjectedCounter).Inc(1)
		log.WithFields(log.Fields{"hostname": hostname, "taskID": taskId}).Info("Assigned container hostname")
	}

	return argv
}

// pin runs the placement critical section and, on success, inserts the
// cpuset flags. Every failure mode logs and returns argv untouched: NUMA
// pinning is best-effort and must never block the launch.
func (r *Rewriter) pin(ctx context.Context, argv []string, env map[string]string) []string {
	if !r.Topo.IsNumaCapable() {
		r.Stat.Counter(stats.NumaNotCapableCounter).Inc(1)
		log.Info("Host is not NUMA capable, launching unpinned")
		return argv
	}

	cpus := RequestedCpus(env)

	if err := r.Locker.Lock(); err != nil {
		r.Stat.Counter(stats.NumaLockBusyCounter).Inc(1)
		log.Warnf("Could not lock placement ledger, launching unpinned: %v", err)
		return argv
	}
	defer r.Locker.Unlock()

	ledger := r.Store.Load(ctx)
	if reclaimed := numa.ReclaimDead(ledger, r.Procs); reclaimed > 0 {
		r.Stat.Counter(stats.NumaReclaimedCounter).Inc(int64(reclaimed))
		log.Infof("Reclaimed %d dead placement entries", reclaimed)
	}

	zone, err := numa.Place(ledger, numa.PlacementRequest{Pid: r.OwnerPid, Cpus: cpus})
	if err != nil {
		r.Stat.Counter(stats.NumaExhaustedCounter).Inc(1)
		log.WithFields(log.Fields{"cpus": cpus}).Warn("All NUMA zones exhausted, launching unpinned")
		// Persist the reclamation even though placement failed.
		if err := r.Store.Save(ctx, ledger); err != nil {
			log.Warnf("Could not store placement ledger: %v", err)
		}
		return argv
	}

	if err := r.Store.Save(ctx, ledger); err != nil {
		// The pinning flags still go out; only the claim's visibility to
		// later launches is degraded.
		log.Warnf("Could not store placement ledger: %v", err)
	}

	cores := r.Topo.CoresForZone(zone)
	argv = InsertAfterRun(argv, "--cpuset-cpus="+joinCores(cores))
	argv = InsertAfterRun(argv, fmt.Sprintf("--cpuset-mems=%d", zone))

	r.Stat.Counter(stats.NumaPlacedCounter).Inc(1)
	for i := range ledger.Zones {
		if ledger.Zones[i].Id == zone {
			r.Stat.Gauge(stats.NumaZoneCommittedGauge_milli).Update(int64(ledger.Zones[i].Committed() * 1000))
		}
	}
	log.WithFields(log.Fields{
		"zone":  zone,
		"cores": cores,
		"cpus":  cpus,
		"pid":   r.OwnerPid,
	}).Info("Pinned container to NUMA zone")

	return argv
}

func joinCores(cores []int) string {
	strs := make([]string, len(cores))
	for i, c := range cores {
		strs[i] = strconv.Itoa(c)
	}
	return strings.Join(strs, ",")
}

func hostFqdn() string {
	hostname, err := os.Hostname()
	if err != nil {
		return ""
	}
	return hostname
}
