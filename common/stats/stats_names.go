package stats

/*
This file defines all the metrics being collected.   As new metrics are added please follow this pattern.
*/

const (
	/************************* NUMA placement metrics **************************/
	/*
		the number of containers this wrapper pinned to a NUMA zone
	*/
	NumaPlacedCounter = "placedCounter"

	/*
		the number of placement requests that found no zone with capacity
	*/
	NumaExhaustedCounter = "exhaustedCounter"

	/*
		the number of stale ledger entries dropped because their owner pid was gone
	*/
	NumaReclaimedCounter = "reclaimedCounter"

	/*
		the number of launches that skipped pinning because the ledger lock stayed busy
	*/
	NumaLockBusyCounter = "lockBusyCounter"

	/*
		the number of launches that skipped pinning because the host is not NUMA capable
	*/
	NumaNotCapableCounter = "notCapableCounter"

	/*
		the CPU quantity committed to the chosen zone after this placement, x1000
	*/
	NumaZoneCommittedGauge_milli = "zoneCommittedGauge_milli"

	/************************* Hostname rewrite metrics **************************/
	/*
		the number of launches that received an injected --hostname flag
	*/
	HostnameInjectedCounter = "hostnameInjectedCounter"
)
