package streak

import "time"

const (
	secondsPerDay = 24 * 60 * 60
	dayKeyLayout  = "2006-01-02"
)

// dayNumber returns the civil day of t in loc as days since 1970-01-01.
// It is computed from the calendar date so DST shifts never split a day.
func dayNumber(t time.Time, loc *time.Location) int64 {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

// weekOf maps a day number to a Monday-based week number.
// Day 0 (1970-01-01) was a Thursday, three days after a Monday.
func weekOf(day int64) int64 {
	return floorDiv(day+3, 7)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func periodIndex(goal Goal, t time.Time, loc *time.Location) int64 {
	d := dayNumber(t, loc)
	if goal.Weekly() {
		return weekOf(d)
	}
	return d
}

// DayKey formats the local calendar day of t, e.g. "2024-03-18".
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(dayKeyLayout)
}

// PeriodStart returns the start of the day or week containing t.
func PeriodStart(goal Goal, t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	y, m, d := local.Date()
	if goal.Weekly() {
		d -= (int(local.Weekday()) + 6) % 7
	}
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Since returns the check-ins at or after from. A zero from keeps everything.
func Since(checkins []time.Time, from time.Time) []time.Time {
	if from.IsZero() {
		return checkins
	}
	out := make([]time.Time, 0, len(checkins))
	for _, c := range checkins {
		if !c.Before(from) {
			out = append(out, c)
		}
	}
	return out
}

// DayCount is the number of check-ins recorded on one local day.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DailyCounts returns one entry per day for the days ending at end's day,
// oldest first.
func DailyCounts(checkins []time.Time, end time.Time, days int, loc *time.Location) []DayCount {
	if loc == nil {
		loc = time.UTC
	}
	if days <= 0 {
		return []DayCount{}
	}
	last := dayNumber(end, loc)
	first := last - int64(days) + 1

	counts := make(map[int64]int)
	for _, c := range checkins {
		d := dayNumber(c, loc)
		if d >= first && d <= last {
			counts[d]++
		}
	}

	out := make([]DayCount, 0, days)
	for d := first; d <= last; d++ {
		date := time.Unix(d*secondsPerDay, 0).UTC().Format(dayKeyLayout)
		out = append(out, DayCount{Date: date, Count: counts[d]})
	}
	return out
}

// CompletionRate is the share of satisfied periods among the periods that
// overlap the last days days ending at now. It is 0 for an unknown goal.
func CompletionRate(goal Goal, checkins []time.Time, now time.Time, days int, loc *time.Location) float64 {
	if loc == nil {
		loc = time.UTC
	}
	if !goal.Type.Valid() || days <= 0 {
		return 0
	}
	lastDay := dayNumber(now, loc)
	firstDay := lastDay - int64(days) + 1
	first, last := firstDay, lastDay
	if goal.Weekly() {
		first, last = weekOf(firstDay), weekOf(lastDay)
	}

	seen := make(map[int64]struct{})
	perPeriod := make(map[int64]int)
	for _, c := range checkins {
		d := dayNumber(c, loc)
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		p := d
		if goal.Weekly() {
			p = weekOf(d)
		}
		perPeriod[p]++
	}

	satisfied := 0
	for p := first; p <= last; p++ {
		if perPeriod[p] >= goal.Required() {
			satisfied++
		}
	}
	return float64(satisfied) / float64(last-first+1)
}
