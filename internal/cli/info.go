package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/studyquest/internal/rewards"
	"github.com/sandeepkv93/studyquest/internal/views"
)

func parseXP(raw string) (int, error) {
	xp, err := strconv.Atoi(raw)
	if err != nil || xp < 0 {
		return 0, fmt.Errorf("xp must be a non-negative integer, got %q", raw)
	}
	return xp, nil
}

func newRankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank <xp>",
		Short: "Show the rank earned at an XP total",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			xp, err := parseXP(args[0])
			if err != nil {
				return err
			}
			cur := rewards.CalculateRank(xp)
			out := cmd.OutOrStdout()
			writeOut(out, "%s %s\n", cur.Icon, cur.Name)
			if next, ok := rewards.NextRank(xp); ok {
				writeOut(out, "next: %s at %d XP (%d%%, %d to go)\n", next.Name, next.MinXP, rewards.RankProgress(xp), next.MinXP-xp)
			} else {
				writeOut(out, "top rank reached\n")
			}
			return nil
		},
	}
}

func newStoryCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "story <xp>",
		Short: "List the archive fragments unlocked at an XP total",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			xp, err := parseXP(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, f := range rewards.GetFragmentsForXP(xp) {
				if !full {
					writeOut(out, "%-8s %6d  %s\n", f.ID, f.MinXP, f.Title)
					continue
				}
				writeOut(out, "%s\n\n", views.RenderMarkdown(fmt.Sprintf("### %s · %s\n\n%s", f.ID, f.Title, f.Content)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "render each fragment's content")
	return cmd
}
