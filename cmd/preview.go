package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/llm"
	"github.com/abhisek/maestro/internal/quiz"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview a generated quiz for a lesson (no database)",
	Long: `Generate and interactively answer a quiz for a specific lesson.

This is a stateless developer tool — no database, no progress tracking,
no events. Useful for evaluating quiz quality across levels.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("lesson", "", "SubTopic ID (required; see 'maestro topics')")
	previewCmd.Flags().String("level", string(curriculum.LevelBeginner), "Learner level: Beginner, Intermediate, or Expert")
	_ = previewCmd.MarkFlagRequired("lesson")
}

func runPreview(cmd *cobra.Command, args []string) error {
	lessonVal, _ := cmd.Flags().GetString("lesson")
	levelVal, _ := cmd.Flags().GetString("level")

	sub, err := curriculum.GetSubTopic(lessonVal)
	if err != nil {
		return fmt.Errorf("unknown lesson %q: %w", lessonVal, err)
	}
	topic, ok := curriculum.ParentTopic(sub.ID)
	if !ok {
		return fmt.Errorf("lesson %q has no parent topic", sub.ID)
	}

	level := curriculum.Level(levelVal)
	if !level.Valid() {
		return fmt.Errorf("invalid level %q: must be Beginner, Intermediate, or Expert", levelVal)
	}

	// Create LLM provider (no EventRepo — logging skipped).
	ctx := context.Background()
	provider, err := llm.NewProviderFromEnv(ctx, nil)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	fmt.Printf("Lesson: %s — %s (%s, %s)\n", sub.ID, sub.Title, topic.Title, level)
	fmt.Printf("Generating %d questions...\n\n", quiz.QuestionCount)

	questions, err := quiz.New(provider).Generate(ctx, topic, sub, level)
	if err != nil {
		return fmt.Errorf("generate quiz: %w", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	answers := make([]int, 0, len(questions))

	for i, q := range questions {
		fmt.Printf("── Question %d/%d ──\n", i+1, len(questions))
		fmt.Println(q.Question)
		for j, opt := range q.Options {
			fmt.Printf("  %d) %s\n", j+1, opt)
		}

		fmt.Print("\nYour answer (1-4): ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || choice < 1 || choice > len(q.Options) {
			fmt.Println("(skipped)")
			fmt.Println()
			answers = append(answers, -1)
			continue
		}
		answers = append(answers, choice-1)

		if choice-1 == q.CorrectAnswerIndex {
			fmt.Println("\033[32m✓ ¡Correcto!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", q.Options[q.CorrectAnswerIndex])
		}
		if q.Explanation != "" {
			fmt.Printf("Explanation: %s\n", q.Explanation)
		}
		fmt.Println()
	}

	result := quiz.Grade(questions, answers)
	verdict := "not passed"
	if result.Passed {
		verdict = "passed"
	}
	fmt.Printf("── Summary: %d/%d correct (%s) ──\n", result.Score, result.Total, verdict)
	return nil
}
