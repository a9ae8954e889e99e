package speech

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/abhisek/maestro/internal/llm"
)

// SampleRate is the PCM sample rate the TTS model emits.
const SampleRate = 24000

// Synthesizer turns tutor text into speech through the Gemini TTS model.
type Synthesizer struct {
	client      *genai.Client
	model       string
	maxRetries  int
	initialWait time.Duration
}

// NewSynthesizer creates a Synthesizer from Gemini configuration.
func NewSynthesizer(ctx context.Context, cfg llm.GeminiConfig) (*Synthesizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &Synthesizer{
		client:      client,
		model:       cfg.SpeechModel,
		maxRetries:  2,
		initialWait: 800 * time.Millisecond,
	}, nil
}

// Synthesize produces 16-bit mono PCM at SampleRate for the given text.
// Text that cleans down to nothing returns (nil, nil).
func (s *Synthesizer) Synthesize(ctx context.Context, text string, voice Voice) ([]byte, error) {
	clean := Clean(text)
	if clean == "" {
		return nil, nil
	}
	if !voice.Valid() {
		voice = DefaultVoice
	}

	var lastErr error
	wait := s.initialWait
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			wait *= 2
		}

		pcm, err := s.generate(ctx, clean, voice)
		if err == nil {
			return pcm, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("speech synthesis failed: %w", lastErr)
}

func (s *Synthesizer) generate(ctx context.Context, text string, voice Voice) ([]byte, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: string(voice),
				},
			},
		},
	}

	contents := []*genai.Content{
		{Parts: []*genai.Part{{Text: "Say: " + text}}},
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		return nil, err
	}

	pcm := extractAudio(result)
	if pcm == nil {
		return nil, fmt.Errorf("model returned non-audio response content")
	}
	return pcm, nil
}

func extractAudio(result *genai.GenerateContentResponse) []byte {
	for _, cand := range result.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data
			}
		}
	}
	return nil
}
