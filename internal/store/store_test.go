package store

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/progress"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only checked with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestProgressLoad_FirstRun(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	p, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Streak != 1 {
		t.Errorf("first-run streak = %d, want 1", p.Streak)
	}
	want := []string{curriculum.FirstTopic().ID}
	if !slices.Equal(p.UnlockedTopicIDs, want) {
		t.Errorf("unlocked = %v, want %v", p.UnlockedTopicIDs, want)
	}

	// The first load must have persisted the streak evaluation.
	again, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if again.Streak != 1 {
		t.Errorf("second load streak = %d, want 1 (same day)", again.Streak)
	}
}

func TestProgressSaveLoad_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	p := progress.SelectLevel(progress.Default(), curriculum.LevelIntermediate)
	p = progress.UpdateName(p, "Sam")
	p = progress.CompleteSubTopic(p, "module-7", "7.1")

	msg := progress.NewMessage(progress.RoleModel, "¡Hola Sam!")
	msg.IsAudioPlaying = true
	msg.Audio = []byte{0x01, 0x02}
	p = progress.SetTopicHistory(p, "7.1", []progress.Message{msg})
	p.LastLoginDate = time.Now() // keep the streak rule from rewriting on load

	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got.UserName != "Sam" || got.Level != curriculum.LevelIntermediate {
		t.Errorf("identity fields lost: name=%q level=%q", got.UserName, got.Level)
	}
	if got.XP != p.XP || got.WordsLearned != p.WordsLearned {
		t.Errorf("counters lost: xp=%d words=%d", got.XP, got.WordsLearned)
	}
	if !slices.Equal(got.UnlockedTopicIDs, p.UnlockedTopicIDs) {
		t.Errorf("unlocked = %v, want %v", got.UnlockedTopicIDs, p.UnlockedTopicIDs)
	}
	if !slices.Equal(got.CompletedSubTopicIDs, p.CompletedSubTopicIDs) {
		t.Errorf("completed subtopics = %v, want %v", got.CompletedSubTopicIDs, p.CompletedSubTopicIDs)
	}

	hist := got.History("7.1")
	if len(hist) != 1 || hist[0].Text != "¡Hola Sam!" {
		t.Fatalf("history lost: %+v", hist)
	}
	// Transient playback fields never survive a round trip.
	if hist[0].IsAudioPlaying || hist[0].Audio != nil {
		t.Error("transient message fields must be stripped on save")
	}
}

func TestProgressSave_Overwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	p := progress.Default()
	p.LastLoginDate = time.Now()
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	p = progress.UpdateName(p, "Ana")
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("second save: %v", err)
	}

	n, err := s.Client().ProgressRecord.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("progress rows = %d, want exactly 1", n)
	}
}

func TestProgressReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	if _, err := repo.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	p, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load after reset: %v", err)
	}
	if p.XP != 0 || p.UserName != "" {
		t.Error("reset should yield a fresh default profile")
	}
}

func TestDecodeProgress_CorruptPayloadDegradesToDefault(t *testing.T) {
	got := decodeProgress(map[string]any{
		"xp":               "not-a-number",
		"unlockedTopicIds": []any{"module-1"},
	})
	if got.XP != 0 {
		t.Errorf("xp = %d, want 0 (default)", got.XP)
	}
	if !slices.Equal(got.UnlockedTopicIDs, []string{curriculum.FirstTopic().ID}) {
		t.Errorf("unlocked = %v, want first topic only", got.UnlockedTopicIDs)
	}
}

func TestNormalize_StaleIDScheme(t *testing.T) {
	p := progress.Default()
	p.UnlockedTopicIDs = []string{"greetings", "basics"} // pre-rename topic ids
	p.CompletedSubTopicIDs = []string{"1.1", "old-9.9"}
	p.TopicHistory = map[string][]progress.Message{
		"1.1":     {progress.NewMessage(progress.RoleModel, "hola")},
		"old-9.9": {progress.NewMessage(progress.RoleModel, "stale")},
	}

	got := normalize(p)

	if !slices.Equal(got.UnlockedTopicIDs, []string{curriculum.FirstTopic().ID}) {
		t.Errorf("unlocked = %v, want fallback to first topic", got.UnlockedTopicIDs)
	}
	if !slices.Equal(got.CompletedSubTopicIDs, []string{"1.1"}) {
		t.Errorf("completed = %v, want [1.1]", got.CompletedSubTopicIDs)
	}
	if _, ok := got.TopicHistory["old-9.9"]; ok {
		t.Error("history entries for unknown subtopics must be dropped")
	}
}

func TestNormalize_PreferenceDefaults(t *testing.T) {
	p := progress.Default()
	p.Preferences.PlaybackSpeed = 0
	p.Preferences.VoiceName = ""

	got := normalize(p)
	if got.Preferences.PlaybackSpeed != 1.0 {
		t.Errorf("playback speed = %v, want 1.0", got.Preferences.PlaybackSpeed)
	}
	if got.Preferences.VoiceName != progress.DefaultVoice {
		t.Errorf("voice = %q, want %q", got.Preferences.VoiceName, progress.DefaultVoice)
	}
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo, err := s.EventRepo()
	if err != nil {
		t.Fatalf("event repo: %v", err)
	}
	ctx := context.Background()

	for i, purpose := range []string{"chat", "chat", "quiz"} {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "gemini",
			Model:        "gemini-2.0-flash",
			Purpose:      purpose,
			InputTokens:  100 + i,
			OutputTokens: 50,
			LatencyMs:    200,
			Success:      true,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Sequence <= events[1].Sequence {
		t.Error("events should be newest first")
	}

	stats, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	byPurpose := make(map[string]LLMUsageStats)
	for _, st := range stats {
		byPurpose[st.Purpose] = st
	}
	if byPurpose["chat"].Calls != 2 || byPurpose["quiz"].Calls != 1 {
		t.Errorf("unexpected usage stats: %+v", stats)
	}
}
