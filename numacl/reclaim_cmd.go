package numacl

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ycaihua/paasta/numa"
)

type reclaimCmd struct {
}

func (c *reclaimCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "reclaim",
		Short: "drop ledger entries whose owner process is gone",
	}
	return r
}

func (c *reclaimCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	locker := cl.locker()
	if err := locker.Lock(); err != nil {
		return fmt.Errorf("could not lock ledger: %v", err)
	}
	defer locker.Unlock()

	ctx := context.Background()
	store := cl.store()
	ledger := store.Load(ctx)
	removed := numa.ReclaimDead(ledger, numa.NewProcessTable())
	if err := store.Save(ctx, ledger); err != nil {
		return err
	}
	fmt.Printf("reclaimed %d entries\n", removed)
	return nil
}
