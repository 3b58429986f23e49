package pkg

import (
	"fmt"
	"strings"
)

// TrainingDay is a lower case english weekday name, "monday" .. "sunday".
type TrainingDay string

var trainingDays = [7]TrainingDay{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// ToDayIndex maps monday..sunday to 0..6.
func (d TrainingDay) ToDayIndex() (int, error) {
	day := TrainingDay(strings.ToLower(strings.TrimSpace(string(d))))
	for i, td := range trainingDays {
		if td == day {
			return i, nil
		}
	}
	return -1, fmt.Errorf("invalid training day: %q", string(d))
}

func (d TrainingDay) Valid() bool {
	_, err := d.ToDayIndex()
	return err == nil
}

// Title returns the capitalized day name, e.g. "Monday".
func (d TrainingDay) Title() string {
	s := string(d)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func FromDayIndex(idx int) (TrainingDay, error) {
	if idx < 0 || idx > 6 {
		return "", fmt.Errorf("invalid day index: %d", idx)
	}
	return trainingDays[idx], nil
}

// ValidateTrainingDays normalizes the days and rejects unknown or repeated ones.
func ValidateTrainingDays(days []TrainingDay) ([]TrainingDay, error) {
	seen := make(map[TrainingDay]bool, len(days))
	normalized := make([]TrainingDay, 0, len(days))
	for _, d := range days {
		idx, err := d.ToDayIndex()
		if err != nil {
			return nil, err
		}
		day := trainingDays[idx]
		if seen[day] {
			return nil, fmt.Errorf("duplicate training day: %q", string(day))
		}
		seen[day] = true
		normalized = append(normalized, day)
	}
	return normalized, nil
}
