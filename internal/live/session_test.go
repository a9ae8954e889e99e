package live

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"google.golang.org/genai"
)

// fakeConn feeds canned server messages to the receive loop and
// records outbound audio.
type fakeConn struct {
	mu       sync.Mutex
	messages chan *genai.LiveServerMessage
	sent     []genai.LiveRealtimeInput
	closed   bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{messages: make(chan *genai.LiveServerMessage, 16)}
}

func (f *fakeConn) Receive() (*genai.LiveServerMessage, error) {
	msg, ok := <-f.messages
	if !ok {
		return nil, io.EOF
	}
	return msg, nil
}

func (f *fakeConn) SendRealtimeInput(input genai.LiveRealtimeInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return errors.New("closed")
	}
	f.sent = append(f.sent, input)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.messages)
	}
	return nil
}

func audioMsg(pcm []byte) *genai.LiveServerMessage {
	return &genai.LiveServerMessage{
		ServerContent: &genai.LiveServerContent{
			ModelTurn: &genai.Content{
				Parts: []*genai.Part{
					{InlineData: &genai.Blob{MIMEType: "audio/pcm", Data: pcm}},
				},
			},
		},
	}
}

func TestSessionDispatch(t *testing.T) {
	fake := newFakeConn()

	var mu sync.Mutex
	var audio [][]byte
	var transcripts []string
	var fromModel []bool
	turns := 0

	s := start(fake, Callbacks{
		OnAudio: func(pcm []byte) {
			mu.Lock()
			audio = append(audio, pcm)
			mu.Unlock()
		},
		OnTranscription: func(text string, model bool) {
			mu.Lock()
			transcripts = append(transcripts, text)
			fromModel = append(fromModel, model)
			mu.Unlock()
		},
		OnTurnComplete: func() {
			mu.Lock()
			turns++
			mu.Unlock()
		},
	})
	defer s.Close()

	fake.messages <- audioMsg([]byte{1, 2, 3})
	fake.messages <- &genai.LiveServerMessage{
		ServerContent: &genai.LiveServerContent{
			OutputTranscription: &genai.Transcription{Text: "¡Hola!"},
		},
	}
	fake.messages <- &genai.LiveServerMessage{
		ServerContent: &genai.LiveServerContent{
			InputTranscription: &genai.Transcription{Text: "hello"},
		},
	}
	fake.messages <- &genai.LiveServerMessage{
		ServerContent: &genai.LiveServerContent{TurnComplete: true},
	}

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(audio) == 1 && len(transcripts) == 2 && turns == 1
	})

	mu.Lock()
	defer mu.Unlock()
	if string(audio[0]) != string([]byte{1, 2, 3}) {
		t.Errorf("audio = %v", audio[0])
	}
	if transcripts[0] != "¡Hola!" || !fromModel[0] {
		t.Errorf("model transcript = %q fromModel=%v", transcripts[0], fromModel[0])
	}
	if transcripts[1] != "hello" || fromModel[1] {
		t.Errorf("user transcript = %q fromModel=%v", transcripts[1], fromModel[1])
	}
}

func TestSessionSendAudio(t *testing.T) {
	fake := newFakeConn()
	s := start(fake, Callbacks{})

	if err := s.SendAudio([]byte{9, 8, 7}); err != nil {
		t.Fatalf("send: %v", err)
	}

	fake.mu.Lock()
	sent := fake.sent
	fake.mu.Unlock()
	if len(sent) != 1 {
		t.Fatalf("got %d sends, want 1", len(sent))
	}
	if sent[0].Media == nil || sent[0].Media.MIMEType != inputMIMEType {
		t.Errorf("media = %+v, want %s", sent[0].Media, inputMIMEType)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := s.SendAudio([]byte{1}); err == nil {
		t.Error("send after close should fail")
	}
}

func TestSessionCloseSuppressesEOF(t *testing.T) {
	fake := newFakeConn()

	var mu sync.Mutex
	var gotErr error
	s := start(fake, Callbacks{
		OnError: func(err error) {
			mu.Lock()
			gotErr = err
			mu.Unlock()
		},
	})

	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("double close: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if gotErr != nil {
		t.Errorf("OnError fired on clean close: %v", gotErr)
	}
}

func TestSessionReceiveErrorReported(t *testing.T) {
	fake := newFakeConn()

	var mu sync.Mutex
	var gotErr error
	start(fake, Callbacks{
		OnError: func(err error) {
			mu.Lock()
			gotErr = err
			mu.Unlock()
		},
	})

	// Closing the underlying conn without Session.Close simulates a
	// dropped connection. EOF is treated as a clean shutdown.
	fake.Close()

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if gotErr != nil {
		t.Errorf("EOF should not be reported, got %v", gotErr)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		if cond() {
			return
		}
		select {
		case <-deadline:
			t.Fatal("condition never met")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
