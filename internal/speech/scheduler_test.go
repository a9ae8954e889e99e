package speech

import (
	"sync"
	"testing"
	"time"
)

type recordingPlayer struct {
	mu     sync.Mutex
	chunks [][]byte
}

func (p *recordingPlayer) Play(pcm []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chunks = append(p.chunks, pcm)
	return nil
}

func TestSchedulerDuration(t *testing.T) {
	s := NewScheduler(&recordingPlayer{}, SampleRate, 1.0)

	// One second of 16-bit mono audio.
	pcm := make([]byte, SampleRate*2)
	if got := s.Duration(pcm); got != time.Second {
		t.Errorf("duration = %v, want 1s", got)
	}

	fast := NewScheduler(&recordingPlayer{}, SampleRate, 2.0)
	if got := fast.Duration(pcm); got != 500*time.Millisecond {
		t.Errorf("duration at 2x = %v, want 500ms", got)
	}

	// Invalid speed falls back to 1x.
	fallback := NewScheduler(&recordingPlayer{}, SampleRate, 0)
	if got := fallback.Duration(pcm); got != time.Second {
		t.Errorf("duration at fallback speed = %v, want 1s", got)
	}
}

func TestSchedulerGaplessOffsets(t *testing.T) {
	s := NewScheduler(&recordingPlayer{}, SampleRate, 1.0)

	base := time.Unix(1000, 0)
	s.now = func() time.Time { return base }

	chunk := make([]byte, SampleRate*2) // 1s

	s.Schedule(chunk)
	if got := s.next.Sub(base); got != time.Second {
		t.Fatalf("first chunk ends at +%v, want +1s", got)
	}

	s.Schedule(chunk)
	if got := s.next.Sub(base); got != 2*time.Second {
		t.Fatalf("second chunk ends at +%v, want +2s (back-to-back)", got)
	}

	// After the queue drains, scheduling restarts from now.
	s.now = func() time.Time { return base.Add(10 * time.Second) }
	s.Schedule(chunk)
	if got := s.next.Sub(base); got != 11*time.Second {
		t.Fatalf("post-drain chunk ends at +%v, want +11s", got)
	}

	s.Stop()
}

func TestSchedulerPlaysImmediately(t *testing.T) {
	p := &recordingPlayer{}
	s := NewScheduler(p, SampleRate, 1.0)

	s.Schedule([]byte{1, 2})

	deadline := time.After(time.Second)
	for {
		p.mu.Lock()
		n := len(p.chunks)
		p.mu.Unlock()
		if n == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first chunk never played")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSchedulerStopCancelsPending(t *testing.T) {
	p := &recordingPlayer{}
	s := NewScheduler(p, SampleRate, 1.0)

	// Long first chunk pushes the second well into the future.
	s.Schedule(make([]byte, SampleRate*2*10))
	s.Schedule([]byte{1, 2})
	s.Stop()

	time.Sleep(50 * time.Millisecond)
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.chunks) > 1 {
		t.Errorf("pending chunk played after Stop, got %d chunks", len(p.chunks))
	}
}

func TestWrapWAV(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04}
	wav := WrapWAV(pcm, SampleRate)

	if len(wav) != 44+len(pcm) {
		t.Fatalf("wav length = %d, want %d", len(wav), 44+len(pcm))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}
	if string(wav[36:40]) != "data" {
		t.Error("missing data chunk marker")
	}
	if string(wav[44:]) != string(pcm) {
		t.Error("payload mismatch")
	}
}
