package streak

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-03-18 is a Monday.
var monday = time.Date(2024, time.March, 18, 9, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return monday.AddDate(0, 0, offset)
}

func days(offsets ...int) []time.Time {
	out := make([]time.Time, 0, len(offsets))
	for _, o := range offsets {
		out = append(out, day(o))
	}
	return out
}

var daily = Goal{Type: GoalDaily, Value: 1}

func TestEvaluateDaily(t *testing.T) {
	tests := []struct {
		name     string
		checkins []time.Time
		now      time.Time
		want     Result
	}{
		{
			name:     "empty history",
			checkins: nil,
			now:      day(0),
			want:     Result{PeriodTarget: 1},
		},
		{
			name:     "three consecutive days ending today",
			checkins: days(0, 1, 2),
			now:      day(2),
			want:     Result{CurrentStreak: 3, LongestStreak: 3, PeriodSatisfied: true, PeriodCount: 1, PeriodTarget: 1},
		},
		{
			name:     "gap then today",
			checkins: days(0, 1, 5),
			now:      day(5),
			want:     Result{CurrentStreak: 1, LongestStreak: 2, PeriodSatisfied: true, PeriodCount: 1, PeriodTarget: 1},
		},
		{
			name:     "today not yet checked in keeps yesterday's run",
			checkins: days(0, 1, 2),
			now:      day(3),
			want:     Result{CurrentStreak: 3, LongestStreak: 3, PeriodTarget: 1},
		},
		{
			name:     "missed a full day breaks the streak",
			checkins: days(0, 1, 2),
			now:      day(4),
			want:     Result{CurrentStreak: 0, LongestStreak: 3, PeriodTarget: 1},
		},
		{
			name:     "duplicates on the same day count once",
			checkins: []time.Time{day(0), day(0).Add(time.Hour), day(0).Add(2 * time.Hour)},
			now:      day(0),
			want:     Result{CurrentStreak: 1, LongestStreak: 1, PeriodSatisfied: true, PeriodCount: 1, PeriodTarget: 1},
		},
		{
			name:     "out of order input",
			checkins: days(2, 0, 1),
			now:      day(2),
			want:     Result{CurrentStreak: 3, LongestStreak: 3, PeriodSatisfied: true, PeriodCount: 1, PeriodTarget: 1},
		},
		{
			name:     "future check-ins are ignored",
			checkins: days(0, 1, 9),
			now:      day(1),
			want:     Result{CurrentStreak: 2, LongestStreak: 2, PeriodSatisfied: true, PeriodCount: 1, PeriodTarget: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(daily, tt.checkins, tt.now, time.UTC)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateDailyMidnightBoundary(t *testing.T) {
	midnight := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	checkins := []time.Time{
		time.Date(2024, time.March, 18, 23, 59, 59, 0, time.UTC),
		time.Date(2024, time.March, 19, 12, 0, 0, 0, time.UTC),
	}

	got := Evaluate(daily, checkins, midnight, time.UTC)
	assert.Equal(t, 2, got.CurrentStreak)
	assert.False(t, got.PeriodSatisfied, "midnight opens a new day")

	got = Evaluate(daily, append(checkins, midnight), midnight, time.UTC)
	assert.Equal(t, 3, got.CurrentStreak)
	assert.True(t, got.PeriodSatisfied)
}

func TestEvaluateUsesLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 20:00 UTC on the 18th and 19th are the 19th and 20th in Tokyo.
	checkins := []time.Time{
		time.Date(2024, time.March, 18, 20, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 19, 20, 0, 0, 0, time.UTC),
	}
	now := time.Date(2024, time.March, 20, 1, 0, 0, 0, time.UTC) // 10:00 on the 20th in Tokyo

	inTokyo := Evaluate(daily, checkins, now, tokyo)
	assert.Equal(t, 2, inTokyo.CurrentStreak)
	assert.True(t, inTokyo.PeriodSatisfied)

	inUTC := Evaluate(daily, checkins, now, time.UTC)
	assert.Equal(t, 2, inUTC.CurrentStreak)
	assert.False(t, inUTC.PeriodSatisfied)
}

func TestEvaluateTimesPerWeek(t *testing.T) {
	goal := Goal{Type: GoalTimesPerWeek, Value: 3}

	t.Run("week with three check-ins counts", func(t *testing.T) {
		got := Evaluate(goal, days(0, 2, 4), day(5), time.UTC)
		assert.Equal(t, 1, got.CurrentStreak)
		assert.Equal(t, 1, got.LongestStreak)
		assert.True(t, got.PeriodSatisfied)
		assert.Equal(t, 3, got.PeriodCount)
		assert.Equal(t, 3, got.PeriodTarget)
	})

	t.Run("week with two check-ins does not count", func(t *testing.T) {
		got := Evaluate(goal, days(0, 2), day(5), time.UTC)
		assert.Equal(t, 0, got.CurrentStreak)
		assert.Equal(t, 0, got.LongestStreak)
		assert.False(t, got.PeriodSatisfied)
		assert.Equal(t, 2, got.PeriodCount)
	})

	t.Run("same day check-ins do not add up", func(t *testing.T) {
		checkins := []time.Time{day(0), day(0).Add(time.Hour), day(0).Add(2 * time.Hour)}
		got := Evaluate(goal, checkins, day(1), time.UTC)
		assert.Equal(t, 1, got.PeriodCount)
		assert.False(t, got.PeriodSatisfied)
	})

	t.Run("consecutive qualifying weeks", func(t *testing.T) {
		checkins := days(0, 1, 2, 7, 8, 9, 14, 15, 16)
		got := Evaluate(goal, checkins, day(16), time.UTC)
		assert.Equal(t, 3, got.CurrentStreak)
		assert.Equal(t, 3, got.LongestStreak)
	})

	t.Run("open week does not break the streak", func(t *testing.T) {
		checkins := days(0, 1, 2, 7, 8, 9, 14)
		got := Evaluate(goal, checkins, day(15), time.UTC)
		assert.Equal(t, 2, got.CurrentStreak)
		assert.False(t, got.PeriodSatisfied)
	})

	t.Run("a failed week breaks the streak", func(t *testing.T) {
		checkins := days(0, 1, 2, 7, 14, 15, 16)
		got := Evaluate(goal, checkins, day(16), time.UTC)
		assert.Equal(t, 1, got.CurrentStreak)
		assert.Equal(t, 1, got.LongestStreak)
	})
}

func TestEvaluateWeekly(t *testing.T) {
	goal := Goal{Type: GoalWeekly, Value: 1}

	// Sunday of week 1 and Monday of week 2 are adjacent weeks.
	got := Evaluate(goal, days(6, 7), day(7), time.UTC)
	assert.Equal(t, 2, got.CurrentStreak)
	assert.True(t, got.PeriodSatisfied)

	// Skipping a whole week.
	got = Evaluate(goal, days(0, 14), day(14), time.UTC)
	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, 1, got.LongestStreak)

	// Two weeks without check-ins.
	got = Evaluate(goal, days(0), day(15), time.UTC)
	assert.Equal(t, 0, got.CurrentStreak)
	assert.Equal(t, 1, got.LongestStreak)
}

func TestRunStart(t *testing.T) {
	weekly := Goal{Type: GoalWeekly, Value: 1}

	tests := []struct {
		name     string
		goal     Goal
		checkins []time.Time
		now      time.Time
		want     string
	}{
		{name: "no history", goal: daily, checkins: nil, now: day(0), want: ""},
		{name: "run ending today", goal: daily, checkins: days(0, 1, 2), now: day(2), want: "2024-03-18"},
		{name: "run ending yesterday", goal: daily, checkins: days(0, 1, 2), now: day(3), want: "2024-03-18"},
		{name: "after a gap", goal: daily, checkins: days(0, 1, 5), now: day(5), want: "2024-03-23"},
		{name: "lapsed", goal: daily, checkins: days(0, 1), now: day(5), want: ""},
		{name: "weekly starts on monday", goal: weekly, checkins: days(2, 9), now: day(9), want: "2024-03-18"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RunStart(tt.goal, tt.checkins, tt.now, time.UTC))
		})
	}
}

func TestRunStartSurvivesRefillingAGap(t *testing.T) {
	full := RunStart(daily, days(0, 1, 2, 3, 4, 5, 6), day(6), time.UTC)
	split := RunStart(daily, days(0, 1, 3, 4, 5, 6), day(6), time.UTC)
	refilled := RunStart(daily, days(0, 1, 3, 4, 5, 6, 2), day(6), time.UTC)

	assert.Equal(t, "2024-03-18", full)
	assert.Equal(t, "2024-03-21", split)
	assert.Equal(t, full, refilled)
}

func TestEvaluateUnknownGoal(t *testing.T) {
	got := Evaluate(Goal{Type: "monthly", Value: 1}, days(0, 1), day(1), time.UTC)
	assert.Equal(t, 0, got.CurrentStreak)
	assert.Equal(t, 0, got.LongestStreak)
	assert.False(t, got.PeriodSatisfied)
}

func TestEvaluateProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	goals := []Goal{
		daily,
		{Type: GoalWeekly, Value: 1},
		{Type: GoalTimesPerWeek, Value: 2},
		{Type: GoalTimesPerWeek, Value: 5},
	}

	for i := 0; i < 300; i++ {
		n := rng.Intn(40)
		checkins := make([]time.Time, 0, n)
		for j := 0; j < n; j++ {
			checkins = append(checkins, monday.Add(time.Duration(rng.Intn(60*24))*time.Hour))
		}
		now := monday.Add(time.Duration(rng.Intn(70*24)) * time.Hour)
		goal := goals[i%len(goals)]

		input := make([]time.Time, len(checkins))
		copy(input, checkins)
		first := Evaluate(goal, checkins, now, time.UTC)
		second := Evaluate(goal, checkins, now, time.UTC)

		require.Equal(t, first, second, "evaluation must be deterministic")
		require.GreaterOrEqual(t, first.LongestStreak, first.CurrentStreak)
		require.GreaterOrEqual(t, first.CurrentStreak, 0)
		require.Equal(t, input, checkins, "input must not be modified")

		rng.Shuffle(len(checkins), func(a, b int) { checkins[a], checkins[b] = checkins[b], checkins[a] })
		require.Equal(t, first, Evaluate(goal, checkins, now, time.UTC), "order must not matter")
	}
}
