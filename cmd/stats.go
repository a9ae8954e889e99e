package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a learning progress summary",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		name := p.UserName
		if name == "" {
			name = "(anonymous)"
		}
		level := string(p.Level)
		if !p.HasLevel() {
			level = "(not chosen yet)"
		}

		fmt.Println("Learner")
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("%-18s %s\n", "Name", name)
		fmt.Printf("%-18s %s\n", "Level", level)
		fmt.Printf("%-18s %d\n", "XP", p.XP)
		fmt.Printf("%-18s %d day(s)\n", "Streak", p.Streak)
		fmt.Printf("%-18s %d\n", "Words learned", p.WordsLearned)

		fmt.Println()
		fmt.Println("Curriculum")
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("%-18s %d/%d\n", "Topics done", len(p.CompletedTopicIDs), curriculum.TopicCount())
		fmt.Printf("%-18s %d/%d\n", "Lessons done", len(p.CompletedSubTopicIDs), curriculum.SubTopicCount())

		started := 0
		for _, msgs := range p.TopicHistory {
			if len(msgs) > 0 {
				started++
			}
		}
		fmt.Printf("%-18s %d\n", "Chats started", started)
		return nil
	},
}
