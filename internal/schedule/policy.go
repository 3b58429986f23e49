package schedule

import (
	"sort"

	"github.com/2beens/fitnessxs/pkg"

	"github.com/google/uuid"
)

// ShiftPending returns the moves skip-and-shift applies: every pending instance
// dated on or after from, except skippedID, goes one day forward.
func ShiftPending(instances []Instance, skippedID string, from pkg.Date) []Shift {
	shifts := make([]Shift, 0)
	for _, inst := range instances {
		if inst.ID == skippedID || inst.Status != StatusPending || inst.ScheduledDate.Before(from) {
			continue
		}
		shifts = append(shifts, Shift{
			ID:      inst.ID,
			OldDate: inst.ScheduledDate,
			NewDate: inst.ScheduledDate.AddDays(1),
		})
	}
	return shifts
}

// GenerateInitial places one pending instance per workout on the next
// occurrence of its weekday, today included.
func GenerateInitial(slots []WorkoutSlot, today pkg.Date) []Instance {
	todayIdx := today.DayIndex()
	instances := make([]Instance, 0, len(slots))
	for _, slot := range slots {
		diff := (slot.DayOfWeek - todayIdx + 7) % 7
		instances = append(instances, Instance{
			ID:            uuid.NewString(),
			ProgramID:     slot.ProgramID,
			WorkoutID:     slot.WorkoutID,
			ScheduledDate: today.AddDays(diff),
			Status:        StatusPending,
			DayOfWeek:     slot.DayOfWeek,
		})
	}
	return instances
}

// AggregateDays folds instances into one WorkoutDay per date, ascending.
// A day is done if any instance is done, else skipped if any is skipped.
func AggregateDays(instances []Instance) []WorkoutDay {
	byDate := make(map[string]*WorkoutDay)
	for _, inst := range instances {
		key := inst.ScheduledDate.String()
		day, ok := byDate[key]
		if !ok {
			day = &WorkoutDay{Date: inst.ScheduledDate, Status: StatusPending}
			byDate[key] = day
		}
		day.WorkoutCount++
		switch {
		case inst.Status == StatusDone:
			day.Status = StatusDone
		case inst.Status == StatusSkipped && day.Status != StatusDone:
			day.Status = StatusSkipped
		}
	}

	days := make([]WorkoutDay, 0, len(byDate))
	for _, d := range byDate {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}

func Summarize(days []WorkoutDay) HistorySummary {
	summary := HistorySummary{Total: len(days)}
	for _, d := range days {
		switch d.Status {
		case StatusDone:
			summary.Completed++
		case StatusSkipped:
			summary.Skipped++
		}
	}
	return summary
}

// Streak counts consecutive done days going back from today. A today that is
// not done yet does not break the streak, counting then starts from yesterday.
func Streak(days []WorkoutDay, today pkg.Date) int {
	statusByDate := make(map[string]Status, len(days))
	for _, d := range days {
		statusByDate[d.Date.String()] = d.Status
	}

	day := today
	if statusByDate[today.String()] != StatusDone {
		day = today.AddDays(-1)
	}

	streak := 0
	for statusByDate[day.String()] == StatusDone {
		streak++
		day = day.AddDays(-1)
	}
	return streak
}

// PlanRoll continues every workout weekly from its latest instance until the
// horizon. The next date is the first weekday of the workout after the latest
// one, so an instance moved by skip-and-shift does not drag the series along.
// Workouts without any instance start at their next weekday.
func PlanRoll(latest []LatestInstance, today pkg.Date, horizonDays int) []Instance {
	horizon := today.AddDays(horizonDays)
	planned := make([]Instance, 0)
	for _, l := range latest {
		var next pkg.Date
		if l.Latest == nil {
			next = GenerateInitial([]WorkoutSlot{l.WorkoutSlot}, today)[0].ScheduledDate
		} else {
			diff := (l.DayOfWeek - l.Latest.DayIndex() + 7) % 7
			if diff == 0 {
				diff = 7
			}
			next = l.Latest.AddDays(diff)
		}
		// never backfill the past
		for next.Before(today) {
			next = next.AddDays(7)
		}
		for !next.After(horizon) {
			planned = append(planned, Instance{
				ID:            uuid.NewString(),
				ProgramID:     l.ProgramID,
				WorkoutID:     l.WorkoutID,
				ScheduledDate: next,
				Status:        StatusPending,
				DayOfWeek:     l.DayOfWeek,
			})
			next = next.AddDays(7)
		}
	}
	return planned
}

// LatestInstance is the most recent scheduled date of a workout, nil if it has none.
type LatestInstance struct {
	WorkoutSlot
	Latest *pkg.Date
	// of the program owner, empty means UTC
	Timezone string
}
