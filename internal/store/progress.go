package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/maestro/ent"
	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/progress"
)

// progressRepo implements ProgressRepo using the ent client.
type progressRepo struct {
	client *ent.Client
}

func (r *progressRepo) Load(ctx context.Context) (progress.UserProgress, error) {
	rec, err := r.client.ProgressRecord.Query().First(ctx)
	if err != nil {
		if !ent.IsNotFound(err) {
			return progress.UserProgress{}, fmt.Errorf("query progress: %w", err)
		}
		return r.touchAndSave(ctx, progress.Default())
	}

	p := decodeProgress(rec.Data)
	return r.touchAndSave(ctx, p)
}

// touchAndSave applies the streak rule and persists when it changed.
func (r *progressRepo) touchAndSave(ctx context.Context, p progress.UserProgress) (progress.UserProgress, error) {
	touched, changed := progress.Touch(p, time.Now())
	if changed {
		if err := r.Save(ctx, touched); err != nil {
			return touched, err
		}
	}
	return touched, nil
}

func (r *progressRepo) Save(ctx context.Context, p progress.UserProgress) error {
	data, err := progressToMap(p.Sanitized())
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	existing, err := r.client.ProgressRecord.Query().First(ctx)
	if err != nil {
		if !ent.IsNotFound(err) {
			return fmt.Errorf("query progress: %w", err)
		}
		_, err = r.client.ProgressRecord.Create().
			SetSchemaVersion(SchemaVersion).
			SetData(data).
			Save(ctx)
		if err != nil {
			return fmt.Errorf("create progress: %w", err)
		}
		return nil
	}

	_, err = existing.Update().
		SetSchemaVersion(SchemaVersion).
		SetData(data).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	return nil
}

func (r *progressRepo) Reset(ctx context.Context) error {
	if _, err := r.client.ProgressRecord.Delete().Exec(ctx); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}

// decodeProgress turns the stored JSON payload back into UserProgress.
// Missing fields keep their defaults (additive schema evolution) and the
// result is normalized against the current curriculum. A payload that
// fails to decode degrades to the default profile.
func decodeProgress(data map[string]any) progress.UserProgress {
	raw, err := json.Marshal(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: corrupt progress payload, starting fresh: %v\n", err)
		return progress.Default()
	}

	p := progress.Default()
	if err := json.Unmarshal(raw, &p); err != nil {
		fmt.Fprintf(os.Stderr, "warning: corrupt progress payload, starting fresh: %v\n", err)
		return progress.Default()
	}

	return normalize(p)
}

// normalize repairs a decoded profile against the current curriculum:
// unknown IDs are dropped (stale id schemes from older catalogs), empty
// unlock sets fall back to the first topic, and a level value the app no
// longer knows is cleared.
func normalize(p progress.UserProgress) progress.UserProgress {
	if p.Level != "" && !p.Level.Valid() {
		p.Level = ""
	}
	if p.Preferences.PlaybackSpeed <= 0 {
		p.Preferences.PlaybackSpeed = 1.0
	}
	if p.Preferences.VoiceName == "" {
		p.Preferences.VoiceName = progress.DefaultVoice
	}

	p.UnlockedTopicIDs = keepKnownTopics(p.UnlockedTopicIDs)
	if len(p.UnlockedTopicIDs) == 0 {
		p.UnlockedTopicIDs = []string{curriculum.FirstTopic().ID}
	}
	p.CompletedTopicIDs = keepKnownTopics(p.CompletedTopicIDs)

	subs := make([]string, 0, len(p.CompletedSubTopicIDs))
	for _, id := range p.CompletedSubTopicIDs {
		if _, err := curriculum.GetSubTopic(id); err == nil {
			subs = append(subs, id)
		}
	}
	p.CompletedSubTopicIDs = subs

	if p.TopicHistory == nil {
		p.TopicHistory = map[string][]progress.Message{}
	}
	for id := range p.TopicHistory {
		if _, err := curriculum.GetSubTopic(id); err != nil {
			delete(p.TopicHistory, id)
		}
	}

	return p
}

func keepKnownTopics(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := curriculum.GetTopic(id); err == nil {
			out = append(out, id)
		}
	}
	return out
}

// progressToMap converts UserProgress to map[string]any for ent JSON storage.
func progressToMap(p progress.UserProgress) (map[string]any, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
