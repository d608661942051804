// Package streak computes habit streaks from check-in history.
//
// Days and weeks are bucketed in the habit owner's location. Weeks start on
// Monday. Period boundaries are half-open, so a check-in at local midnight
// belongs to the day that starts at that instant.
package streak

import (
	"sort"
	"time"
)

// GoalType is the cadence a habit is tracked at.
type GoalType string

const (
	GoalDaily        GoalType = "daily"
	GoalWeekly       GoalType = "weekly"
	GoalTimesPerWeek GoalType = "timesPerWeek"
)

// Goal defines how many check-ins per period satisfy a habit.
type Goal struct {
	Type  GoalType `bson:"type" json:"type"`
	Value int      `bson:"value" json:"value"`
}

// Valid reports whether t is a known goal type.
func (t GoalType) Valid() bool {
	switch t {
	case GoalDaily, GoalWeekly, GoalTimesPerWeek:
		return true
	}
	return false
}

// Weekly reports whether the goal is bucketed by week.
func (g Goal) Weekly() bool {
	return g.Type == GoalWeekly || g.Type == GoalTimesPerWeek
}

// Required is the number of distinct check-in days a period needs.
func (g Goal) Required() int {
	if g.Type == GoalTimesPerWeek && g.Value > 1 {
		return g.Value
	}
	return 1
}

// Result is the outcome of evaluating a habit's history.
type Result struct {
	CurrentStreak   int  `json:"current_streak"`
	LongestStreak   int  `json:"longest_streak"`
	PeriodSatisfied bool `json:"period_satisfied"`
	PeriodCount     int  `json:"period_count"`
	PeriodTarget    int  `json:"period_target"`
}

// Evaluate computes streaks for goal over checkins as of now.
// The input does not need to be sorted and is not modified. An unknown goal
// type yields a zero Result.
func Evaluate(goal Goal, checkins []time.Time, now time.Time, loc *time.Location) Result {
	res, _ := evaluate(goal, checkins, now, loc)
	return res
}

// RunStart returns the day key of the first day of the current streak's
// first period, or "" when there is no current streak. Two evaluations
// belong to the same run exactly when their RunStart matches.
func RunStart(goal Goal, checkins []time.Time, now time.Time, loc *time.Location) string {
	res, start := evaluate(goal, checkins, now, loc)
	if res.CurrentStreak == 0 {
		return ""
	}
	day := start
	if goal.Weekly() {
		day = start*7 - 3
	}
	return time.Unix(day*secondsPerDay, 0).UTC().Format(dayKeyLayout)
}

// evaluate also returns the period index where the current run began.
func evaluate(goal Goal, checkins []time.Time, now time.Time, loc *time.Location) (Result, int64) {
	if loc == nil {
		loc = time.UTC
	}
	res := Result{PeriodTarget: goal.Required()}
	if !goal.Type.Valid() {
		return res, 0
	}

	current := periodIndex(goal, now, loc)

	// Distinct days per period; duplicates within a day collapse.
	days := make(map[int64]struct{}, len(checkins))
	perPeriod := make(map[int64]int)
	for _, c := range checkins {
		d := dayNumber(c, loc)
		if _, seen := days[d]; seen {
			continue
		}
		days[d] = struct{}{}
		p := d
		if goal.Weekly() {
			p = weekOf(d)
		}
		if p > current {
			continue
		}
		perPeriod[p]++
	}

	required := goal.Required()
	qualifying := make([]int64, 0, len(perPeriod))
	for p, n := range perPeriod {
		if n >= required {
			qualifying = append(qualifying, p)
		}
	}
	sort.Slice(qualifying, func(i, j int) bool { return qualifying[i] < qualifying[j] })

	res.PeriodCount = perPeriod[current]
	res.PeriodSatisfied = res.PeriodCount >= required

	run := 0
	var prev, runStart, currentStart int64
	for i, p := range qualifying {
		if i > 0 && p == prev+1 {
			run++
		} else {
			run = 1
			runStart = p
		}
		prev = p
		if run > res.LongestStreak {
			res.LongestStreak = run
		}
		// The streak is alive if it ends in the current period or the
		// one before it (the current period is still open).
		if p == current || p == current-1 {
			res.CurrentStreak = run
			currentStart = runStart
		}
	}
	return res, currentStart
}
