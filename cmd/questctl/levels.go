package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

const defaultLevelRows = 10

func newLevelsCmd(opts *rootOptions) *cobra.Command {
	var maxLevel int

	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Print the XP curve with titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxLevel < 1 {
				return fmt.Errorf("--max must be at least 1, got %d", maxLevel)
			}
			rules, err := opts.rules()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printHeader(out, "Level curve")
			fmt.Fprintf(out, "%-6s %-12s %-10s %s\n", "LEVEL", "TOTAL XP", "TO NEXT", "TITLE")
			for level := 1; level <= maxLevel; level++ {
				fmt.Fprintf(out, "%-6d %-12d %-10d %s\n",
					level,
					rules.Character.XPForLevel(level),
					rules.Character.XPForNextLevel(level),
					rules.TitleForLevel(level))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxLevel, "max", defaultLevelRows, "highest level to print")
	return cmd
}

func newTitleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "title <level>",
		Short: "Print the title held at a level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid level %q: %w", args[0], err)
			}
			rules, err := opts.rules()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rules.TitleForLevel(level))
			return nil
		},
	}
}
