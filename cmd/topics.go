package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/progress"
	"github.com/abhisek/maestro/internal/store"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the curriculum with your lesson states",
	RunE: func(cmd *cobra.Command, args []string) error {
		levelVal, _ := cmd.Flags().GetString("level")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		p, err := s.ProgressRepo().Load(context.Background())
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}

		topics := curriculum.AllTopics()
		if levelVal != "" {
			lvl := curriculum.Level(levelVal)
			if !lvl.Valid() {
				return fmt.Errorf("unknown level %q: must be Beginner, Intermediate, or Expert", levelVal)
			}
			topics = curriculum.ByLevel(lvl)
		}

		for _, t := range topics {
			state := "locked"
			switch {
			case p.TopicCompleted(t.ID):
				state = "completed"
			case p.TopicUnlocked(t.ID):
				state = "unlocked"
			}
			fmt.Printf("%s %s (%s, %s) — %s\n", t.Emoji, t.Title, t.RequiredLevel, state, t.ID)

			for _, st := range t.SubTopics {
				ls := progress.StateOf(p, st.ID)
				fmt.Printf("    %s %-14s %s — %s\n", ls.Icon(), ls.Label(), st.Title, st.ID)
			}
		}

		fmt.Println(strings.Repeat("─", 60))
		fmt.Printf("%d topics, %d lessons\n", len(topics), curriculum.SubTopicCount())
		return nil
	},
}

func init() {
	topicsCmd.Flags().String("level", "", "Filter by required level (Beginner, Intermediate, Expert)")
}
