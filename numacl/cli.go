// Package numacl is a command-line client to the host's NUMA placement
// ledger, for operators debugging placement decisions. The wrapper itself
// never needs it; it exists because the ledger outlives every wrapper
// invocation and somebody has to be able to look at it.
package numacl

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ycaihua/paasta/config/wrapperconfig"
	"github.com/ycaihua/paasta/numa"
)

type CLIClient interface {
	Exec() error
}

// Implements CLIClient - basic
type simpleCLIClient struct {
	rootCmd *cobra.Command
	cfg     *wrapperconfig.Config

	ledgerURL string
	lockPath  string
	lockWait  time.Duration
}

func (c *simpleCLIClient) Exec() error {
	return c.rootCmd.Execute()
}

func NewSimpleCLIClient() (CLIClient, error) {
	c := &simpleCLIClient{cfg: wrapperconfig.Load()}

	c.rootCmd = &cobra.Command{
		Use:   "numacl",
		Short: "numacl inspects and maintains the host's NUMA placement ledger",
		Run:   func(*cobra.Command, []string) {},
	}

	c.addCmd(&statusCmd{})
	c.addCmd(&reclaimCmd{})
	c.addCmd(&clearCmd{})

	return c, nil
}

func (c *simpleCLIClient) addCmd(cmd command) {
	cobraCmd := cmd.registerFlags()
	cobraCmd.Flags().StringVar(&c.ledgerURL, "ledger", c.cfg.LedgerURL, "placement ledger URL")
	cobraCmd.Flags().StringVar(&c.lockPath, "lock", c.cfg.LockPath, "ledger lock file")
	cobraCmd.Flags().DurationVar(&c.lockWait, "lock_wait", c.cfg.LockWait, "max wait for the ledger lock")
	cobraCmd.RunE = func(innerCmd *cobra.Command, args []string) error {
		return cmd.run(c, innerCmd, args)
	}
	c.rootCmd.AddCommand(cobraCmd)
}

func (c *simpleCLIClient) store() *numa.Store {
	return numa.NewStore(c.ledgerURL, numa.NewTopology())
}

func (c *simpleCLIClient) locker() numa.Locker {
	return numa.NewFlockLocker(c.lockPath, c.lockWait)
}

type command interface {
	registerFlags() *cobra.Command
	run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error
}
