package session

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/flashcards"
	"github.com/abhisek/maestro/internal/progress"
	"github.com/abhisek/maestro/internal/quiz"
	"github.com/abhisek/maestro/internal/router"
	"github.com/abhisek/maestro/internal/screen"
	flashscreen "github.com/abhisek/maestro/internal/screens/flashcards"
	quizscreen "github.com/abhisek/maestro/internal/screens/quiz"
	"github.com/abhisek/maestro/internal/speech"
	"github.com/abhisek/maestro/internal/store"
	"github.com/abhisek/maestro/internal/tutor"
	"github.com/abhisek/maestro/internal/ui/components"
	"github.com/abhisek/maestro/internal/ui/layout"
)

const spinnerInterval = 150 * time.Millisecond

// Deps are the services the lesson chat needs.
type Deps struct {
	Progress store.ProgressRepo
	Tutor    *tutor.Service
	Quiz     *quiz.Service
	Cards    *flashcards.Service
	Synth    *speech.Synthesizer
	Player   speech.Player
}

// SessionScreen is one lesson's chat with the tutor.
type SessionScreen struct {
	deps  Deps
	prog  progress.UserProgress
	topic curriculum.Topic
	sub   curriculum.SubTopic

	msgs      []progress.Message
	input     components.TextInput
	scheduler *speech.Scheduler

	waiting          bool   // tutor turn in flight
	generating       string // "quiz" or "flashcards" while generation runs
	suggestQuiz      bool
	suggestionReason string
	completed        bool
	confirmingQuit   bool
	spinnerFrame     int
	notice           string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New opens the lesson chat for the given subtopic. An empty transcript
// gets the tutor's scripted greeting as its first message.
func New(deps Deps, p progress.UserProgress, topic curriculum.Topic, sub curriculum.SubTopic) *SessionScreen {
	s := &SessionScreen{
		deps:      deps,
		prog:      p,
		topic:     topic,
		sub:       sub,
		msgs:      append([]progress.Message(nil), p.History(sub.ID)...),
		input:     components.NewTextInput("Escribe aquí...", false, 60),
		completed: p.SubTopicCompleted(sub.ID),
	}
	if deps.Player != nil && deps.Synth != nil {
		s.scheduler = speech.NewScheduler(deps.Player, speech.SampleRate, p.Preferences.PlaybackSpeed)
	}
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.input.Init()}
	if len(s.msgs) == 0 {
		intro := progress.NewMessage(progress.RoleModel, tutor.IntroMessage(s.topic, s.prog.UserName))
		s.msgs = append(s.msgs, intro)
		cmds = append(cmds, s.persist())
		if cmd := s.speak(intro); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (s *SessionScreen) Title() string {
	return s.topic.Title
}

// XP and Streak feed the header stats.
func (s *SessionScreen) XP() int     { return s.prog.XP }
func (s *SessionScreen) Streak() int { return s.prog.Streak }

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.confirmingQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave lesson"},
			{Key: "N", Description: "Stay"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
	if s.suggestQuiz || s.completed {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+T", Description: "Take quiz"})
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+F", Description: "Flashcards"})
	if s.canSpeak() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Replay audio"})
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+N", Description: "Restart lesson"})
	return hints
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		return s.handleReply(msg)

	case quizReadyMsg:
		return s.handleQuizReady(msg)

	case deckReadyMsg:
		return s.handleDeckReady(msg)

	case quizDoneMsg:
		s.prog = msg.Progress
		s.suggestQuiz = false
		if msg.Passed {
			s.completed = true
			s.notice = "🎉 ¡Felicidades! Lesson complete. Press Esc to head back."
		} else {
			s.notice = "Not quite 70% yet. Keep practicing and try the quiz again."
		}
		return s, nil

	case deckDoneMsg:
		s.prog = msg.Progress
		s.notice = "Flashcards reviewed. +XP"
		return s, nil

	case audioReadyMsg:
		return s.handleAudioReady(msg)

	case audioDoneMsg:
		for i := range s.msgs {
			if s.msgs[i].ID == msg.MessageID {
				s.msgs[i].IsAudioPlaying = false
			}
		}
		return s, nil

	case savedMsg:
		if msg.Err != nil {
			s.notice = "Save failed; progress may be lost: " + msg.Err.Error()
		}
		return s, nil

	case spinnerTickMsg:
		if !s.waiting && s.generating == "" {
			return s, nil
		}
		s.spinnerFrame++
		return s, spinnerTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmingQuit {
		switch key {
		case "y", "Y":
			return s, s.leave()
		case "n", "N", "esc":
			s.confirmingQuit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		if s.waiting || s.generating != "" {
			s.confirmingQuit = true
			return s, nil
		}
		return s, s.leave()

	case "enter":
		return s.submit()

	case "ctrl+t":
		return s.startQuiz()

	case "ctrl+f":
		return s.startFlashcards()

	case "ctrl+r":
		return s, s.replayLast()

	case "ctrl+n":
		return s.restart()
	}

	if s.waiting {
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// leave stops playback, pops back to home, and tells it to reload the
// profile it cached.
func (s *SessionScreen) leave() tea.Cmd {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	return tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return screen.RefreshMsg{} },
	)
}

// restart wipes the transcript and the lesson's completion so it can be
// taken again from the greeting. Busy turns must finish first.
func (s *SessionScreen) restart() (screen.Screen, tea.Cmd) {
	if s.waiting || s.generating != "" {
		return s, nil
	}
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	s.prog = progress.RestartLesson(s.prog, s.sub.ID)
	s.completed = false
	s.suggestQuiz = false
	s.suggestionReason = ""
	s.msgs = nil

	intro := progress.NewMessage(progress.RoleModel, tutor.IntroMessage(s.topic, s.prog.UserName))
	s.msgs = append(s.msgs, intro)
	s.notice = "Lesson restarted."

	cmds := []tea.Cmd{s.persist()}
	if cmd := s.speak(intro); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return s, tea.Batch(cmds...)
}

func (s *SessionScreen) submit() (screen.Screen, tea.Cmd) {
	text := s.input.Value()
	if text == "" || s.waiting || s.deps.Tutor == nil {
		return s, nil
	}

	s.msgs = append(s.msgs, progress.NewMessage(progress.RoleUser, text))
	s.input = components.NewTextInput("Escribe aquí...", false, 60)
	s.waiting = true
	s.notice = ""

	return s, tea.Batch(s.persist(), s.sendTurn(text), spinnerTick(), s.input.Init())
}

// sendTurn runs the tutor call off the UI thread. The new message is
// already in s.msgs; history excludes it so it is not sent twice.
func (s *SessionScreen) sendTurn(text string) tea.Cmd {
	svc := s.deps.Tutor
	input := tutor.SendInput{
		History:    append([]progress.Message(nil), s.msgs[:len(s.msgs)-1]...),
		NewMessage: text,
		Level:      s.prog.Level,
		Topic:      &s.topic,
		SubTopic:   &s.sub,
		UserName:   s.prog.UserName,
	}
	return func() tea.Msg {
		resp, err := svc.Send(context.Background(), input)
		return replyMsg{Response: resp, Err: err}
	}
}

func (s *SessionScreen) handleReply(msg replyMsg) (screen.Screen, tea.Cmd) {
	s.waiting = false

	text := tutor.FallbackReply
	if msg.Err == nil {
		text = msg.Response.Text
		s.suggestQuiz = msg.Response.SuggestQuiz
		s.suggestionReason = msg.Response.SuggestionReason
	}

	reply := progress.NewMessage(progress.RoleModel, text)
	s.msgs = append(s.msgs, reply)

	cmds := []tea.Cmd{s.persist()}
	if msg.Err == nil {
		if cmd := s.speak(reply); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return s, tea.Batch(cmds...)
}

// persist writes the transcript into the profile in the background.
// Failures surface as a notice, never as a broken lesson.
func (s *SessionScreen) persist() tea.Cmd {
	s.prog = progress.SetTopicHistory(s.prog, s.sub.ID, s.msgs)
	repo := s.deps.Progress
	p := s.prog
	return func() tea.Msg {
		return savedMsg{Err: repo.Save(context.Background(), p)}
	}
}

func (s *SessionScreen) canSpeak() bool {
	return s.deps.Synth != nil && s.scheduler != nil
}

// speak synthesizes a model message when autoplay is on.
func (s *SessionScreen) speak(m progress.Message) tea.Cmd {
	if !s.canSpeak() || !s.prog.Preferences.AutoPlayAudio {
		return nil
	}
	return s.synthesize(m)
}

func (s *SessionScreen) synthesize(m progress.Message) tea.Cmd {
	synth := s.deps.Synth
	voice := speech.Normalize(s.prog.Preferences.VoiceName)
	return func() tea.Msg {
		pcm, err := synth.Synthesize(context.Background(), m.Text, voice)
		return audioReadyMsg{MessageID: m.ID, PCM: pcm, Err: err}
	}
}

func (s *SessionScreen) handleAudioReady(msg audioReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil || len(msg.PCM) == 0 || s.scheduler == nil {
		return s, nil
	}
	for i := range s.msgs {
		if s.msgs[i].ID == msg.MessageID {
			s.msgs[i].Audio = msg.PCM
			s.msgs[i].IsAudioPlaying = true
		}
	}
	dur := s.scheduler.Schedule(msg.PCM)
	id := msg.MessageID
	return s, tea.Tick(dur, func(time.Time) tea.Msg {
		return audioDoneMsg{MessageID: id}
	})
}

// replayLast re-plays the newest model message, reusing cached audio.
func (s *SessionScreen) replayLast() tea.Cmd {
	if !s.canSpeak() {
		return nil
	}
	for i := len(s.msgs) - 1; i >= 0; i-- {
		if s.msgs[i].Role != progress.RoleModel {
			continue
		}
		m := s.msgs[i]
		if len(m.Audio) > 0 {
			s.msgs[i].IsAudioPlaying = true
			dur := s.scheduler.Schedule(m.Audio)
			return tea.Tick(dur, func(time.Time) tea.Msg {
				return audioDoneMsg{MessageID: m.ID}
			})
		}
		return s.synthesize(m)
	}
	return nil
}

func (s *SessionScreen) startQuiz() (screen.Screen, tea.Cmd) {
	if s.deps.Quiz == nil || s.generating != "" || s.waiting {
		return s, nil
	}
	s.generating = "quiz"
	s.notice = ""

	svc := s.deps.Quiz
	topic, sub, level := s.topic, s.sub, s.prog.Level
	return s, tea.Batch(spinnerTick(), func() tea.Msg {
		questions, err := svc.Generate(context.Background(), topic, sub, level)
		return quizReadyMsg{Questions: questions, Err: err}
	})
}

func (s *SessionScreen) handleQuizReady(msg quizReadyMsg) (screen.Screen, tea.Cmd) {
	s.generating = ""
	if msg.Err != nil {
		s.notice = "Quiz generation failed: " + msg.Err.Error()
		return s, nil
	}

	repo := s.deps.Progress
	return s, func() tea.Msg {
		return router.PushScreenMsg{
			Screen: quizscreen.New(quizscreen.Params{
				Repo:      repo,
				Progress:  s.prog,
				TopicID:   s.topic.ID,
				SubTopic:  s.sub,
				Questions: msg.Questions,
				Done: func(passed bool, p progress.UserProgress) tea.Msg {
					return quizDoneMsg{Passed: passed, Progress: p}
				},
			}),
		}
	}
}

func (s *SessionScreen) startFlashcards() (screen.Screen, tea.Cmd) {
	if s.deps.Cards == nil || s.generating != "" || s.waiting {
		return s, nil
	}
	s.generating = "flashcards"
	s.notice = ""

	svc := s.deps.Cards
	topic, sub, level := s.topic, s.sub, s.prog.Level
	return s, tea.Batch(spinnerTick(), func() tea.Msg {
		cards, err := svc.Generate(context.Background(), topic, sub, level)
		return deckReadyMsg{Cards: cards, Err: err}
	})
}

func (s *SessionScreen) handleDeckReady(msg deckReadyMsg) (screen.Screen, tea.Cmd) {
	s.generating = ""
	if msg.Err != nil {
		s.notice = "Flashcard generation failed: " + msg.Err.Error()
		return s, nil
	}

	repo := s.deps.Progress
	return s, func() tea.Msg {
		return router.PushScreenMsg{
			Screen: flashscreen.New(flashscreen.Params{
				Repo:     repo,
				Progress: s.prog,
				SubTopic: s.sub,
				Cards:    msg.Cards,
				Done: func(p progress.UserProgress) tea.Msg {
					return deckDoneMsg{Progress: p}
				},
			}),
		}
	}
}

// spinnerTick drives the typing indicator animation.
func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
