package service

import (
	"testing"
	"time"
)

func TestAdvanceProgressionStreak(t *testing.T) {
	day := func(d, hour int) time.Time {
		return time.Date(2026, 3, d, hour, 0, 0, 0, time.UTC)
	}
	last := day(10, 9)

	tests := []struct {
		name        string
		state       progressionState
		now         time.Time
		wantStreak  int
		wantMax     int
		wantUpdated bool
	}{
		{
			"first ever activity starts at 1",
			progressionState{},
			day(10, 9),
			1, 1, true,
		},
		{
			"same day keeps streak",
			progressionState{CurrentStreak: 3, MaxStreak: 5, LastActivityAt: &last},
			day(10, 23),
			3, 5, false,
		},
		{
			"next calendar day extends",
			progressionState{CurrentStreak: 3, MaxStreak: 5, LastActivityAt: &last},
			day(11, 0),
			4, 5, true,
		},
		{
			"extension past max raises max",
			progressionState{CurrentStreak: 5, MaxStreak: 5, LastActivityAt: &last},
			day(11, 12),
			6, 6, true,
		},
		{
			"two day gap resets to 1",
			progressionState{CurrentStreak: 7, MaxStreak: 9, LastActivityAt: &last},
			day(12, 8),
			1, 9, true,
		},
		{
			"long gap resets to 1",
			progressionState{CurrentStreak: 7, MaxStreak: 9, LastActivityAt: &last},
			day(25, 8),
			1, 9, true,
		},
		{
			"clock moved backwards counts as same day",
			progressionState{CurrentStreak: 4, MaxStreak: 4, LastActivityAt: &last},
			day(9, 12),
			4, 4, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := advanceProgression(tt.state, 0, tt.now)
			if tr.Streak != tt.wantStreak {
				t.Errorf("Streak = %d, want %d", tr.Streak, tt.wantStreak)
			}
			if tr.MaxStreak != tt.wantMax {
				t.Errorf("MaxStreak = %d, want %d", tr.MaxStreak, tt.wantMax)
			}
			if tr.StreakUpdated != tt.wantUpdated {
				t.Errorf("StreakUpdated = %v, want %v", tr.StreakUpdated, tt.wantUpdated)
			}
		})
	}
}

func TestAdvanceProgressionMaxStreakNeverDecreases(t *testing.T) {
	last := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	st := progressionState{CurrentStreak: 2, MaxStreak: 30, LastActivityAt: &last}

	// Reset after a gap keeps the historical max.
	tr := advanceProgression(st, 0, last.AddDate(0, 0, 5))
	if tr.Streak != 1 {
		t.Errorf("Streak = %d, want 1", tr.Streak)
	}
	if tr.MaxStreak != 30 {
		t.Errorf("MaxStreak = %d, want 30", tr.MaxStreak)
	}
}

func TestAdvanceProgressionXPAndLevel(t *testing.T) {
	last := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		xp        int
		earned    int
		wantXP    int
		wantLevel int
	}{
		{"no xp stays level 1", 0, 0, 0, 1},
		{"just below threshold", 0, 999, 999, 1},
		{"exact threshold levels up", 900, 100, 1000, 2},
		{"accumulates across levels", 2100, 400, 2500, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := progressionState{CurrentStreak: 1, MaxStreak: 1, LastActivityAt: &last, XP: tt.xp, Level: levelForXP(tt.xp)}
			tr := advanceProgression(st, tt.earned, last)
			if tr.XP != tt.wantXP {
				t.Errorf("XP = %d, want %d", tr.XP, tt.wantXP)
			}
			if tr.Level != tt.wantLevel {
				t.Errorf("Level = %d, want %d", tr.Level, tt.wantLevel)
			}
		})
	}
}

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{999, 1},
		{1000, 2},
		{1999, 2},
		{2500, 3},
		{-50, 1},
	}

	for _, tt := range tests {
		if got := levelForXP(tt.xp); got != tt.want {
			t.Errorf("levelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestCalendarDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{
			"same day different hours",
			time.Date(2026, 3, 10, 0, 1, 0, 0, time.UTC),
			time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC),
			0,
		},
		{
			"across midnight is one day",
			time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC),
			time.Date(2026, 3, 11, 0, 1, 0, 0, time.UTC),
			1,
		},
		{
			"month boundary",
			time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
			2,
		},
		{
			"backwards is negative",
			time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC),
			-1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calendarDaysBetween(tt.from, tt.to); got != tt.want {
				t.Errorf("calendarDaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakView(t *testing.T) {
	now := time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC)
	at := func(d int) *time.Time {
		t := time.Date(2026, 3, d, 9, 0, 0, 0, time.UTC)
		return &t
	}

	tests := []struct {
		name       string
		state      progressionState
		wantStreak int
		wantReset  bool
		wantDays   int
		wantStatus StreakStatus
	}{
		{
			"no activity yet",
			progressionState{MaxStreak: 4},
			0, false, 0,
			StreakStatus{},
		},
		{
			"active today",
			progressionState{CurrentStreak: 3, MaxStreak: 4, LastActivityAt: at(12)},
			3, false, 0,
			StreakStatus{IsActive: true, CanContinueToday: true},
		},
		{
			"yesterday, needs activity today",
			progressionState{CurrentStreak: 3, MaxStreak: 4, LastActivityAt: at(11)},
			3, false, 1,
			StreakStatus{IsActive: true, NeedsActivityToday: true},
		},
		{
			"missed a day, stale streak shows as zero",
			progressionState{CurrentStreak: 3, MaxStreak: 4, LastActivityAt: at(10)},
			0, true, 2,
			StreakStatus{MissedDays: 1},
		},
		{
			"long gap counts missed days",
			progressionState{CurrentStreak: 9, MaxStreak: 9, LastActivityAt: at(5)},
			0, true, 7,
			StreakStatus{MissedDays: 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := streakView(tt.state, now)
			if view.CurrentStreak != tt.wantStreak {
				t.Errorf("CurrentStreak = %d, want %d", view.CurrentStreak, tt.wantStreak)
			}
			if view.MaxStreak != tt.state.MaxStreak {
				t.Errorf("MaxStreak = %d, want %d", view.MaxStreak, tt.state.MaxStreak)
			}
			if view.ShouldReset != tt.wantReset {
				t.Errorf("ShouldReset = %v, want %v", view.ShouldReset, tt.wantReset)
			}
			if view.DaysSinceLastActivity != tt.wantDays {
				t.Errorf("DaysSinceLastActivity = %d, want %d", view.DaysSinceLastActivity, tt.wantDays)
			}
			if view.Status != tt.wantStatus {
				t.Errorf("Status = %+v, want %+v", view.Status, tt.wantStatus)
			}
		})
	}
}
