package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/maestro/internal/app"
	"github.com/abhisek/maestro/internal/flashcards"
	"github.com/abhisek/maestro/internal/llm"
	"github.com/abhisek/maestro/internal/quiz"
	"github.com/abhisek/maestro/internal/speech"
	"github.com/abhisek/maestro/internal/store"
	"github.com/abhisek/maestro/internal/tutor"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo, err := st.EventRepo()
	if err != nil {
		return fmt.Errorf("open event repo: %w", err)
	}

	progressRepo := st.ProgressRepo()
	prog, err := progressRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	opts := app.Options{
		Progress:        progressRepo,
		InitialProgress: prog,
	}

	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
	} else {
		opts.Tutor = tutor.New(provider, tutor.DefaultConfig())
		opts.Quiz = quiz.New(provider)
		opts.Flashcards = flashcards.New(provider)
	}

	// Speech needs a Gemini key and a system playback command; the app
	// runs silently without either.
	cfg := llm.ConfigFromEnv()
	if cfg.Gemini.APIKey == "" {
		if discovered, ok := llm.DiscoverConfig(); ok && discovered.Gemini.APIKey != "" {
			cfg = discovered
		}
	}
	if cfg.Gemini.APIKey != "" {
		if synth, err := speech.NewSynthesizer(ctx, cfg.Gemini); err == nil {
			opts.Synth = synth
			if player, err := speech.NewCommandPlayer(speech.SampleRate); err == nil {
				opts.Player = player
			} else {
				fmt.Fprintln(os.Stderr, "Audio playback unavailable:", err)
			}
		} else {
			fmt.Fprintln(os.Stderr, "Speech synthesis unavailable:", err)
		}
	}

	return app.Run(opts)
}
