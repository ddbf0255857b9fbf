package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/osse101/TaskQuest_Go/internal/config"
	"github.com/osse101/TaskQuest_Go/internal/event"
)

func newDeadLettersCmd() *cobra.Command {
	var (
		path  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "deadletters",
		Short: "List events the publisher gave up on",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open dead-letter file: %w", err)
			}
			defer f.Close()

			entries, err := event.ReadDeadLetters(f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printHeader(out, "Dead letters")
			if len(entries) == 0 {
				printStatus(out, "✓", "no undelivered events", color.FgGreen)
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %-18s attempts=%d",
					e.Timestamp.Format("2006-01-02 15:04:05"), e.Event.Type, e.Attempts)
				if e.LastError != "" {
					mutedColor.Fprintf(out, "  %s", e.LastError)
				}
				fmt.Fprintln(out)
			}
			printStatus(out, "!", fmt.Sprintf("%d event(s) shown", len(entries)), color.FgYellow)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "file", config.DefaultDeadLetterPath, "dead-letter JSONL file")
	cmd.Flags().IntVar(&limit, "tail", 0, "only show the newest N entries")
	return cmd
}
