package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/osse101/TaskQuest_Go/internal/progression"
)

func newRewardCmd(opts *rootOptions) *cobra.Command {
	var (
		base       int
		difficulty string
		streak     int
	)

	cmd := &cobra.Command{
		Use:   "reward",
		Short: "Preview a reward after difficulty and streak multipliers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if base < 0 || streak < 0 {
				return fmt.Errorf("--base and --streak must not be negative")
			}
			rules, err := opts.rules()
			if err != nil {
				return err
			}

			d := progression.Difficulty(difficulty).Normalize()
			out := cmd.OutOrStdout()
			printHeader(out, "Reward preview")
			printField(out, "Base", base)
			printField(out, "Difficulty", fmt.Sprintf("%s (x%.2f)", d, rules.DifficultyMultiplier(d)))
			printField(out, "Streak", fmt.Sprintf("%d days (x%.2f)", streak, rules.StreakMultiplier(streak)))
			printField(out, "Final", rules.FinalReward(base, d, streak))
			return nil
		},
	}
	cmd.Flags().IntVar(&base, "base", 0, "base XP or gold")
	cmd.Flags().StringVar(&difficulty, "difficulty", string(progression.DifficultyNormal), "difficulty tier")
	cmd.Flags().IntVar(&streak, "streak", 0, "current streak in days")
	return cmd
}

func newBossDamageCmd() *cobra.Command {
	var taskXP, maxHP, totalXP, hp int

	cmd := &cobra.Command{
		Use:   "boss-damage",
		Short: "Preview the damage a completed task deals to a quest boss",
		RunE: func(cmd *cobra.Command, args []string) error {
			damage := progression.CalculateBossDamage(taskXP, maxHP, totalXP)
			current := hp
			if current < 0 {
				current = maxHP
			}
			remaining := progression.ApplyBossDamage(current, maxHP, damage, true)

			out := cmd.OutOrStdout()
			printHeader(out, "Boss damage")
			printField(out, "Damage", damage)
			printField(out, "HP", fmt.Sprintf("%d -> %d / %d", current, remaining, maxHP))
			if remaining == 0 && maxHP > 0 {
				printStatus(out, "✓", "Boss defeated", color.FgGreen)
			} else {
				mutedColor.Fprintln(out, "Boss still standing")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&taskXP, "task-xp", 0, "XP of the completed task")
	cmd.Flags().IntVar(&maxHP, "max-hp", 0, "boss max HP")
	cmd.Flags().IntVar(&totalXP, "total-xp", 0, "XP summed over every task of the quest")
	cmd.Flags().IntVar(&hp, "hp", -1, "boss HP before the hit (defaults to max HP)")
	_ = cmd.MarkFlagRequired("task-xp")
	_ = cmd.MarkFlagRequired("max-hp")
	_ = cmd.MarkFlagRequired("total-xp")
	return cmd
}
