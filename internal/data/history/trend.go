package history

// BuildTrendReport annotates snapshots (ascending by time) with the change in
// problem count against the previous run of the same check.
func BuildTrendReport(snapshots []Snapshot) TrendReport {
	report := TrendReport{Points: make([]TrendPoint, 0, len(snapshots))}
	if len(snapshots) == 0 {
		return report
	}
	report.Since = snapshots[0].Timestamp
	report.Until = snapshots[len(snapshots)-1].Timestamp

	previous := make(map[string]Snapshot)
	for _, s := range snapshots {
		point := TrendPoint{Snapshot: s}
		if prev, ok := previous[s.Check]; ok {
			point.DeltaProblems = s.Problems() - prev.Problems()
		}
		previous[s.Check] = s

		report.RunCount++
		if s.Passed {
			report.PassCount++
		} else {
			report.FailCount++
			ts := s.Timestamp
			report.LastFailed = &ts
		}
		report.Points = append(report.Points, point)
	}
	return report
}
