package exerciselogs

import (
	"sort"
	"strconv"
	"strings"
)

// SumReps adds up comma separated reps, "10,8,6" is 24. Parts that are
// not numbers count as 0.
func SumReps(reps string) int {
	total := 0
	for _, part := range strings.Split(reps, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			continue
		}
		total += n
	}
	return total
}

// Volume is the weight times the total reps of the log.
func Volume(l Log) float64 {
	if l.WeightKg == nil || l.RepsCompleted == nil {
		return 0
	}
	return *l.WeightKg * float64(SumReps(*l.RepsCompleted))
}

// ComputeStats groups the logs per movement, most recently logged
// movement first.
func ComputeStats(logs []Log) []MovementStats {
	type acc struct {
		stats         MovementStats
		totalSets     int
		lastWeightAt  int64
		hasLastWeight bool
	}

	byMovement := make(map[string]*acc)
	for _, l := range logs {
		a, ok := byMovement[l.MovementID]
		if !ok {
			a = &acc{stats: MovementStats{MovementID: l.MovementID, MovementName: l.MovementName}}
			byMovement[l.MovementID] = a
		}

		a.stats.TotalSessions++
		a.totalSets += l.SetsCompleted
		if l.LoggedAt.After(a.stats.LastLoggedAt) {
			a.stats.LastLoggedAt = l.LoggedAt
		}

		if l.WeightKg == nil {
			continue
		}
		w := *l.WeightKg
		if a.stats.MaxWeightKg == nil || w > *a.stats.MaxWeightKg {
			a.stats.MaxWeightKg = &w
		}
		if !a.hasLastWeight || l.LoggedAt.UnixNano() > a.lastWeightAt {
			a.stats.LastWeightKg = &w
			a.lastWeightAt = l.LoggedAt.UnixNano()
			a.hasLastWeight = true
		}
	}

	stats := make([]MovementStats, 0, len(byMovement))
	for _, a := range byMovement {
		a.stats.AvgSets = float64(a.totalSets) / float64(a.stats.TotalSessions)
		stats = append(stats, a.stats)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].LastLoggedAt.Equal(stats[j].LastLoggedAt) {
			return stats[i].MovementName < stats[j].MovementName
		}
		return stats[i].LastLoggedAt.After(stats[j].LastLoggedAt)
	})
	return stats
}

// ChartPoints maps each log to one point of the metric, in the order given.
func ChartPoints(logs []Log, metric Metric) []ChartPoint {
	points := make([]ChartPoint, 0, len(logs))
	for _, l := range logs {
		var value float64
		switch metric {
		case MetricWeight:
			if l.WeightKg != nil {
				value = *l.WeightKg
			}
		case MetricSets:
			value = float64(l.SetsCompleted)
		case MetricVolume:
			value = Volume(l)
		}
		points = append(points, ChartPoint{Date: l.LogDate, Value: value})
	}
	return points
}
