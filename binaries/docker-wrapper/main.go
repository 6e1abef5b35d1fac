package main

import (
	"context"
	"os"

	uuid "github.com/nu7hatch/gouuid"
	log "github.com/sirupsen/logrus"

	paastaerrors "github.com/ycaihua/paasta/common/errors"
	"github.com/ycaihua/paasta/common/log/hooks"
	"github.com/ycaihua/paasta/common/stats"
	"github.com/ycaihua/paasta/config/wrapperconfig"
	"github.com/ycaihua/paasta/numa"
	"github.com/ycaihua/paasta/wrapper"
)

// Stands in for the container runtime binary: the scheduler agent invokes
// this instead of docker, the argument vector gets hostname and NUMA pinning
// flags injected, and the process image is replaced by the real runtime.
func main() {
	log.AddHook(hooks.NewContextHook())

	cfg := wrapperconfig.Load()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	if id, err := uuid.NewV4(); err == nil {
		log.AddHook(invocationHook{id.String()})
	}

	stat := stats.DefaultStatsReceiver().Scope("dockerWrapper")
	topo := numa.NewTopology()
	store := numa.NewStore(cfg.LedgerURL, topo)
	locker := numa.NewFlockLocker(cfg.LockPath, cfg.LockWait)

	rewriter := wrapper.NewRewriter(topo, store, locker, stat)
	argv := rewriter.Rewrite(context.Background(), os.Args[1:])

	log.Debugf("Invocation stats: %s", stat.Render())

	// The received vector's first element is the program name placeholder;
	// the runtime's own name replaces it on exec.
	if len(argv) > 0 {
		argv = argv[1:]
	}
	if err := wrapper.NewExecer().Exec(cfg.RuntimePath, argv); err != nil {
		log.Errorf("Could not exec %s: %v", cfg.RuntimePath, err)
		os.Exit(int(paastaerrors.ExitStatus(err)))
	}
}

// invocationHook tags every entry with this launch's id so interleaved
// wrapper logs on a busy host can be told apart.
type invocationHook struct {
	id string
}

func (h invocationHook) Levels() []log.Level {
	return log.AllLevels
}

func (h invocationHook) Fire(entry *log.Entry) error {
	entry.Data["invocationID"] = h.id
	return nil
}
