package numacl

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ycaihua/paasta/numa"
)

type statusCmd struct {
}

func (c *statusCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "status",
		Short: "show per-zone capacity, commitments and owner liveness",
	}
	return r
}

func (c *statusCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	ledger := cl.store().Load(context.Background())
	procs := numa.NewProcessTable()

	for _, zone := range ledger.Zones {
		fmt.Printf("zone %d: %.2f/%.2f cpus committed, %d entries\n",
			zone.Id, zone.Committed(), zone.CoreCapacity, len(zone.Entries))
		for _, e := range zone.Entries {
			state := "live"
			if !procs.IsAlive(e.Pid) {
				state = "dead"
			}
			fmt.Printf("  pid %d: %.2f cpus (%s)\n", e.Pid, e.Cpus, state)
		}
	}
	return nil
}
