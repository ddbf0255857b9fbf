package main

import (
	"github.com/spf13/cobra"

	"github.com/osse101/TaskQuest_Go/internal/progression"
)

type rootOptions struct {
	balanceFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "questctl",
		Short:         "TaskQuest operator tool",
		Long:          "questctl inspects the progression tables and manages the TaskQuest schema.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.balanceFile, "balance", "", "balance YAML overriding the built-in tables")

	cmd.AddCommand(
		newLevelsCmd(opts),
		newTitleCmd(opts),
		newRewardCmd(opts),
		newBossDamageCmd(),
		newMigrateCmd(),
		newDeadLettersCmd(),
	)
	return cmd
}

// rules loads the balance file named by --balance, or the defaults
func (o *rootOptions) rules() (*progression.Rules, error) {
	return progression.LoadRules(o.balanceFile)
}
