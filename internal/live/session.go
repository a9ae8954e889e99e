package live

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"google.golang.org/genai"

	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/llm"
	"github.com/abhisek/maestro/internal/speech"
	"github.com/abhisek/maestro/internal/tutor"
)

// InputSampleRate is the PCM sample rate the microphone must deliver.
const InputSampleRate = 16000

const inputMIMEType = "audio/pcm;rate=16000"

// Callbacks receive server events from a live session. All callbacks
// fire on the session's receive goroutine; nil callbacks are skipped.
type Callbacks struct {
	// OnAudio delivers a chunk of 24kHz 16-bit mono model speech.
	OnAudio func(pcm []byte)

	// OnTranscription delivers rolling transcription text. fromModel
	// distinguishes the tutor's speech from the learner's.
	OnTranscription func(text string, fromModel bool)

	// OnTurnComplete fires when the model finishes a spoken turn.
	OnTurnComplete func()

	// OnError fires once when the receive loop dies unexpectedly.
	OnError func(err error)
}

// Config describes the lesson a live call is pinned to.
type Config struct {
	Gemini   llm.GeminiConfig
	Level    curriculum.Level
	Topic    curriculum.Topic
	SubTopic curriculum.SubTopic
	UserName string
	Voice    speech.Voice
}

// conn is the slice of the genai live session the Session depends on.
type conn interface {
	Receive() (*genai.LiveServerMessage, error)
	SendRealtimeInput(input genai.LiveRealtimeInput) error
	Close() error
}

// Session is an open voice call with the tutor.
type Session struct {
	conn      conn
	callbacks Callbacks

	closeOnce sync.Once
	closed    chan struct{}
}

// Open connects a live voice lesson and starts dispatching server
// events to the callbacks. The caller must Close the session.
func Open(ctx context.Context, cfg Config, callbacks Callbacks) (*Session, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	voice := cfg.Voice
	if !voice.Valid() {
		voice = speech.DefaultVoice
	}

	instruction := tutor.LiveSystemInstruction(cfg.Level, &cfg.Topic, &cfg.SubTopic, cfg.UserName)

	live, err := client.Live.Connect(ctx, cfg.Gemini.LiveModel, &genai.LiveConnectConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		},
		ResponseModalities: []genai.Modality{genai.ModalityAudio},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: string(voice),
				},
			},
		},
		InputAudioTranscription:  &genai.AudioTranscriptionConfig{},
		OutputAudioTranscription: &genai.AudioTranscriptionConfig{},
	})
	if err != nil {
		return nil, fmt.Errorf("connect live session: %w", err)
	}

	return start(live, callbacks), nil
}

// start wires the receive loop around an established connection.
func start(c conn, callbacks Callbacks) *Session {
	s := &Session{
		conn:      c,
		callbacks: callbacks,
		closed:    make(chan struct{}),
	}
	go s.receiveLoop()
	return s
}

func (s *Session) receiveLoop() {
	for {
		msg, err := s.conn.Receive()
		if err != nil {
			select {
			case <-s.closed:
				// Expected teardown.
			default:
				if !isClosedErr(err) && s.callbacks.OnError != nil {
					s.callbacks.OnError(err)
				}
			}
			return
		}
		s.dispatch(msg)
	}
}

func (s *Session) dispatch(msg *genai.LiveServerMessage) {
	content := msg.ServerContent
	if content == nil {
		return
	}

	if content.ModelTurn != nil && s.callbacks.OnAudio != nil {
		for _, part := range content.ModelTurn.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				s.callbacks.OnAudio(part.InlineData.Data)
			}
		}
	}

	if s.callbacks.OnTranscription != nil {
		if content.OutputTranscription != nil && content.OutputTranscription.Text != "" {
			s.callbacks.OnTranscription(content.OutputTranscription.Text, true)
		}
		if content.InputTranscription != nil && content.InputTranscription.Text != "" {
			s.callbacks.OnTranscription(content.InputTranscription.Text, false)
		}
	}

	if content.TurnComplete && s.callbacks.OnTurnComplete != nil {
		s.callbacks.OnTurnComplete()
	}
}

// SendAudio pushes a chunk of 16kHz 16-bit mono microphone PCM.
func (s *Session) SendAudio(pcm []byte) error {
	select {
	case <-s.closed:
		return fmt.Errorf("session is closed")
	default:
	}
	return s.conn.SendRealtimeInput(genai.LiveRealtimeInput{
		Media: &genai.Blob{
			MIMEType: inputMIMEType,
			Data:     pcm,
		},
	})
}

// Close tears the connection down. Safe to call more than once.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closed)
		err = s.conn.Close()
	})
	return err
}

func isClosedErr(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}
