package speech

import (
	"sync"
	"time"
)

// Player starts playback of a PCM chunk immediately. Device plumbing
// lives behind this interface so the scheduler stays testable.
type Player interface {
	Play(pcm []byte) error
}

// Scheduler queues PCM chunks so they play back-to-back. Each chunk is
// started when the previous one ends; chunks never overlap and never
// leave a gap while the queue is non-empty.
type Scheduler struct {
	player     Player
	sampleRate int
	speed      float64

	mu     sync.Mutex
	next   time.Time
	timers []*time.Timer
	now    func() time.Time
}

// NewScheduler creates a gapless playback scheduler. Speed scales
// playback rate; values <= 0 are treated as 1.0.
func NewScheduler(player Player, sampleRate int, speed float64) *Scheduler {
	if speed <= 0 {
		speed = 1.0
	}
	return &Scheduler{
		player:     player,
		sampleRate: sampleRate,
		speed:      speed,
		now:        time.Now,
	}
}

// Schedule enqueues a chunk and returns its playback duration.
func (s *Scheduler) Schedule(pcm []byte) time.Duration {
	duration := s.Duration(pcm)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	start := s.next
	if start.Before(now) {
		start = now
	}
	s.next = start.Add(duration)

	delay := start.Sub(now)
	t := time.AfterFunc(delay, func() {
		s.player.Play(pcm)
	})
	s.timers = append(s.timers, t)

	return duration
}

// Duration reports how long a 16-bit mono PCM chunk plays for at the
// configured speed.
func (s *Scheduler) Duration(pcm []byte) time.Duration {
	samples := len(pcm) / 2
	seconds := float64(samples) / float64(s.sampleRate) / s.speed
	return time.Duration(seconds * float64(time.Second))
}

// Stop cancels all pending chunks and resets the queue.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
	s.next = time.Time{}
}
