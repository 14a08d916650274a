package analytics

import "math"

// DefaultSleepTarget is the fallback nightly duration target in hours.
const DefaultSleepTarget = 8.0

// SleepSample is one night's observation. Either field may be absent.
type SleepSample struct {
	Duration *float64 // hours
	Quality  *int     // 1-5
}

// SleepScoreResult is a composite 0-100 score with its capped sub-scores.
// With no samples all scores are zero and both averages are nil.
type SleepScoreResult struct {
	Score            int      `json:"score"`
	DurationScore    int      `json:"duration_score"`
	QualityScore     int      `json:"quality_score"`
	ConsistencyScore int      `json:"consistency_score"`
	AvgDuration      *float64 `json:"avg_duration"`
	AvgQuality       *float64 `json:"avg_quality"`
}

// SleepScore scores a trailing window of sleep samples against a target
// duration. Sub-score maxima are 40 (duration), 40 (quality) and 20
// (consistency); the total is clamped to 100. The tier breakpoints are a
// fixed external contract, not a derived formula.
func SleepScore(samples []SleepSample, target float64) SleepScoreResult {
	if len(samples) == 0 {
		return SleepScoreResult{}
	}

	var durations, qualities []float64
	for _, s := range samples {
		if s.Duration != nil {
			durations = append(durations, *s.Duration)
		}
		if s.Quality != nil {
			qualities = append(qualities, float64(*s.Quality))
		}
	}

	var out SleepScoreResult
	if len(durations) > 0 {
		avg := mean(durations)
		out.AvgDuration = &avg
		out.DurationScore = durationScore(avg, target)
	}
	if len(qualities) > 0 {
		avg := mean(qualities)
		out.AvgQuality = &avg
		out.QualityScore = int(avg * 8) // truncated; a perfect 5 average is exactly 40
	}
	out.ConsistencyScore = consistencyScore(len(samples), durations)

	total := out.DurationScore + out.QualityScore + out.ConsistencyScore
	if total > 100 {
		total = 100
	}
	out.Score = total
	return out
}

// durationScore is a monotonically non-increasing step function of the
// absolute deviation from the target; boundary ties go to the better tier.
func durationScore(avg, target float64) int {
	diff := math.Abs(avg - target)
	switch {
	case diff <= 0.5:
		return 40
	case diff <= 1.0:
		return 35
	case diff <= 1.5:
		return 28
	case diff <= 2.0:
		return 20
	}
	s := int(40 - 10*diff)
	if s < 0 {
		s = 0
	}
	return s
}

// consistencyScore sums a logging-frequency component (data for more of the
// 7-day window, capped at 10) and a timing-stability component computed from
// the population standard deviation of duration. Stability needs at least 3
// duration samples; below that it contributes 0.
func consistencyScore(sampleCount int, durations []float64) int {
	score := sampleCount * 10 / 7
	if score > 10 {
		score = 10
	}

	if len(durations) >= 3 {
		switch sd := stdDev(durations); {
		case sd < 0.5:
			score += 10
		case sd < 1.0:
			score += 7
		case sd < 1.5:
			score += 4
		default:
			score += 2
		}
	}
	return score
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the population standard deviation.
func stdDev(values []float64) float64 {
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		diff := v - m
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(values)))
}
