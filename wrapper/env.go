package wrapper

import (
	"strconv"

	log "github.com/sirupsen/logrus"
)

// Scheduler-provided variables, captured from the runtime argument vector's
// -e/--env tokens.
const (
	// Marathon sets MESOS_TASK_ID whereas Chronos sets mesos_task_id.
	marathonTaskIdVar = "MESOS_TASK_ID"
	chronosTaskIdVar  = "mesos_task_id"

	// Presence requests NUMA pinning for this launch.
	pinToNumaVar = "PIN_TO_NUMA_NODE"

	// The CPU quantity the scheduler granted this task.
	resourceCpusVar = "MARATHON_APP_RESOURCE_CPUS"
)

const defaultRequestedCpus = 1.0

// TaskId returns the scheduler task id, first non-empty recognized variable
// wins. Empty means no task id was supplied.
func TaskId(env map[string]string) string {
	if id := env[marathonTaskIdVar]; id != "" {
		return id
	}
	return env[chronosTaskIdVar]
}

// PinRequested reports whether this launch asked for NUMA pinning.
func PinRequested(env map[string]string) bool {
	return env[pinToNumaVar] != ""
}

// RequestedCpus returns the CPU quantity to place. A bogus or missing value
// falls back to one full core rather than abandoning the launch.
func RequestedCpus(env map[string]string) float64 {
	raw, ok := env[resourceCpusVar]
	if !ok {
		return defaultRequestedCpus
	}
	cpus, err := strconv.ParseFloat(raw, 64)
	if err != nil || cpus <= 0 {
		log.Warnf("Ignoring bogus %s=%q, assuming %v cpus", resourceCpusVar, raw, defaultRequestedCpus)
		return defaultRequestedCpus
	}
	return cpus
}
