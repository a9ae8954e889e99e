package speech

import (
	"errors"
	"os"
	"os/exec"
)

// ErrNoPlayer is returned when no playback command is installed.
var ErrNoPlayer = errors.New("speech: no audio player found (tried afplay, paplay, aplay, ffplay)")

// playerCommands are tried in order. Each entry takes a WAV file path as
// its final argument.
var playerCommands = [][]string{
	{"afplay"},
	{"paplay"},
	{"aplay", "-q"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
}

// CommandPlayer plays PCM through whichever system playback command is
// installed. Playback blocks until the command exits, which suits the
// scheduler's one-chunk-at-a-time timers.
type CommandPlayer struct {
	cmd        []string
	sampleRate int
}

// NewCommandPlayer probes for a usable playback command.
func NewCommandPlayer(sampleRate int) (*CommandPlayer, error) {
	for _, candidate := range playerCommands {
		if _, err := exec.LookPath(candidate[0]); err == nil {
			return &CommandPlayer{cmd: candidate, sampleRate: sampleRate}, nil
		}
	}
	return nil, ErrNoPlayer
}

// Play wraps the chunk as WAV, writes it to a temp file, and runs the
// playback command over it.
func (p *CommandPlayer) Play(pcm []byte) error {
	f, err := os.CreateTemp("", "maestro-*.wav")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(WrapWAV(pcm, p.sampleRate)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	args := append(append([]string(nil), p.cmd[1:]...), f.Name())
	return exec.Command(p.cmd[0], args...).Run()
}
