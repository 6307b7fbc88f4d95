package domain

import (
	"math"
	"sort"
	"time"
)

const (
	weeklyWindow  = 7 * 24 * time.Hour
	monthlyWindow = 30 * 24 * time.Hour
	dayKeyLayout  = "2006-01-02"
)

// ProgressStats summarises a caller's workouts.
type ProgressStats struct {
	TotalWorkouts     int
	Done              int
	Missed            int
	Planned           int
	CompletionRate    int
	WeeklyDone        int
	MonthlyDone       int
	TotalDurationDone float64
	TotalCaloriesDone float64
	StreakDays        int
	DoneByType        []GroupCount
}

// ComputeProgress aggregates workouts as seen at now. The input must already
// be scoped to the caller and unpaginated.
func ComputeProgress(workouts []Workout, now time.Time) ProgressStats {
	now = now.UTC()
	stats := ProgressStats{TotalWorkouts: len(workouts)}

	done := make([]Workout, 0, len(workouts))
	byType := make(map[string]int64)
	for _, w := range workouts {
		switch w.Status {
		case WorkoutStatusDone:
			stats.Done++
			done = append(done, w)
		case WorkoutStatusMissed:
			stats.Missed++
		case WorkoutStatusPlanned:
			stats.Planned++
		}
	}

	for _, w := range done {
		byType[string(w.Type)]++
		if finite(w.Duration) {
			stats.TotalDurationDone += w.Duration
		}
		if finite(w.Calories) {
			stats.TotalCaloriesDone += w.Calories
		}
		if inWindow(w, now, weeklyWindow) {
			stats.WeeklyDone++
		}
		if inWindow(w, now, monthlyWindow) {
			stats.MonthlyDone++
		}
	}

	stats.CompletionRate = CompletionRate(stats.Done, stats.TotalWorkouts)
	stats.StreakDays = StreakDays(done, now)
	stats.DoneByType = sortedCounts(byType)
	return stats
}

// CompletionRate returns done/total as a rounded percentage, 0 for an empty set.
func CompletionRate(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// StreakDays counts consecutive UTC days, ending today, on which at least one
// of the done workouts took place. Day keys are always UTC so the result does
// not depend on the host time zone.
func StreakDays(done []Workout, now time.Time) int {
	days := make(map[string]struct{}, len(done))
	for _, w := range done {
		if at, ok := w.EffectiveDate(); ok {
			days[at.UTC().Format(dayKeyLayout)] = struct{}{}
		}
	}

	now = now.UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	streak := 0
	for {
		if _, ok := days[day.Format(dayKeyLayout)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

func inWindow(w Workout, now time.Time, window time.Duration) bool {
	at, ok := w.EffectiveDate()
	if !ok {
		return false
	}
	return !at.Before(now.Add(-window)) && !at.After(now)
}

func sortedCounts(counts map[string]int64) []GroupCount {
	out := make([]GroupCount, 0, len(counts))
	for key, count := range counts {
		out = append(out, GroupCount{Key: key, Count: count})
	}
	SortGroupCounts(out)
	return out
}

// SortGroupCounts orders buckets by count descending, then key ascending.
func SortGroupCounts(counts []GroupCount) {
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Key < counts[j].Key
	})
}
