package progress

import "time"

// Touch applies the daily-streak rule for a session starting at now:
// nothing changes when the last login was today; the streak grows by one
// when it was exactly yesterday; anything else (including first run)
// starts a new streak at 1. The second return reports whether the state
// changed and needs persisting.
func Touch(p UserProgress, now time.Time) (UserProgress, bool) {
	if !p.LastLoginDate.IsZero() && sameDay(p.LastLoginDate, now) {
		return p, false
	}

	out := p.clone()
	switch {
	case !p.LastLoginDate.IsZero() && sameDay(p.LastLoginDate, now.AddDate(0, 0, -1)):
		out.Streak = p.Streak + 1
	default:
		out.Streak = 1
	}
	out.LastLoginDate = now
	return out, true
}

// sameDay reports whether a and b fall on the same calendar day in
// local time.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
