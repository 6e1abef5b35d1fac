package numacl

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type clearCmd struct {
}

func (c *clearCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "clear",
		Short: "reset the ledger to empty zones from live topology",
	}
	return r
}

func (c *clearCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	locker := cl.locker()
	if err := locker.Lock(); err != nil {
		return fmt.Errorf("could not lock ledger: %v", err)
	}
	defer locker.Unlock()

	ctx := context.Background()
	store := cl.store()
	ledger := store.Load(ctx)
	for i := range ledger.Zones {
		ledger.Zones[i].Entries = nil
	}
	return store.Save(ctx, ledger)
}
