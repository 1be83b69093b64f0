package engine

import "time"

// LatencySummary aggregates cycle history for the status bar.
type LatencySummary struct {
	Cycles    int
	Failures  int
	Discarded int
	Last      time.Duration
	Mean      time.Duration
	Max       time.Duration
}

// SuccessRate is the share of applied cycles among those that settled,
// in [0, 1]. It is 1 when nothing has settled yet.
func (s LatencySummary) SuccessRate() float64 {
	settled := s.Cycles - s.Discarded
	if settled <= 0 {
		return 1
	}
	return float64(settled-s.Failures) / float64(settled)
}

// Summarize computes latency figures over the given records. Discarded cycles
// are counted but do not contribute to the timings.
func Summarize(records []CycleRecord) LatencySummary {
	var (
		s     LatencySummary
		total time.Duration
		timed int
	)
	s.Cycles = len(records)
	for _, r := range records {
		if r.Discarded {
			s.Discarded++
			continue
		}
		if r.Err != nil {
			s.Failures++
		}
		total += r.Duration
		timed++
		s.Last = r.Duration
		if r.Duration > s.Max {
			s.Max = r.Duration
		}
	}
	if timed > 0 {
		s.Mean = total / time.Duration(timed)
	}
	return s
}

// LatencySeries returns cycle durations in milliseconds, oldest first, for a
// sparkline. Failed cycles are negated; discarded cycles are skipped.
func LatencySeries(records []CycleRecord) []float64 {
	out := make([]float64, 0, len(records))
	for _, r := range records {
		if r.Discarded {
			continue
		}
		ms := float64(r.Duration) / float64(time.Millisecond)
		if r.Err != nil {
			ms = -ms
		}
		out = append(out, ms)
	}
	return out
}
