package progress

import (
	"testing"
	"time"
)

var noon = time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

func TestTouch_FirstRun(t *testing.T) {
	p, changed := Touch(Default(), noon)
	if !changed {
		t.Fatal("first run should change state")
	}
	if p.Streak != 1 {
		t.Errorf("streak = %d, want 1", p.Streak)
	}
	if !p.LastLoginDate.Equal(noon) {
		t.Errorf("lastLoginDate = %v, want %v", p.LastLoginDate, noon)
	}
}

func TestTouch_SameDayUnchanged(t *testing.T) {
	p := Default()
	p.Streak = 4
	p.LastLoginDate = noon.Add(-6 * time.Hour) // this morning

	got, changed := Touch(p, noon)
	if changed {
		t.Fatal("same-day login should not change state")
	}
	if got.Streak != 4 {
		t.Errorf("streak = %d, want 4", got.Streak)
	}
}

func TestTouch_YesterdayIncrements(t *testing.T) {
	p := Default()
	p.Streak = 4
	p.LastLoginDate = noon.AddDate(0, 0, -1)

	got, changed := Touch(p, noon)
	if !changed {
		t.Fatal("next-day login should change state")
	}
	if got.Streak != 5 {
		t.Errorf("streak = %d, want 5", got.Streak)
	}
}

func TestTouch_GapResets(t *testing.T) {
	p := Default()
	p.Streak = 9
	p.LastLoginDate = noon.AddDate(0, 0, -3)

	got, _ := Touch(p, noon)
	if got.Streak != 1 {
		t.Errorf("streak = %d, want 1 after a 3-day gap", got.Streak)
	}
}

func TestTouch_LateNightToEarlyMorning(t *testing.T) {
	// 23:50 yesterday to 00:10 today is consecutive calendar days.
	p := Default()
	p.Streak = 2
	p.LastLoginDate = time.Date(2025, 6, 14, 23, 50, 0, 0, time.Local)

	got, _ := Touch(p, time.Date(2025, 6, 15, 0, 10, 0, 0, time.Local))
	if got.Streak != 3 {
		t.Errorf("streak = %d, want 3", got.Streak)
	}
}
