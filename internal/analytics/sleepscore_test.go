package analytics

import "testing"

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestSleepScoreEmpty(t *testing.T) {
	got := SleepScore(nil, DefaultSleepTarget)
	if got.Score != 0 || got.DurationScore != 0 || got.QualityScore != 0 || got.ConsistencyScore != 0 {
		t.Fatalf("empty score = %+v, want all zero", got)
	}
	if got.AvgDuration != nil || got.AvgQuality != nil {
		t.Fatalf("empty averages should be nil, got %+v", got)
	}
}

func TestSleepScorePerfectWeek(t *testing.T) {
	var samples []SleepSample
	for i := 0; i < 7; i++ {
		samples = append(samples, SleepSample{Duration: fptr(8.0), Quality: iptr(5)})
	}
	got := SleepScore(samples, 8.0)
	if got.DurationScore != 40 {
		t.Fatalf("duration score = %d, want 40", got.DurationScore)
	}
	if got.QualityScore != 40 {
		t.Fatalf("quality score = %d, want 40", got.QualityScore)
	}
	if got.ConsistencyScore != 20 {
		t.Fatalf("consistency score = %d, want 20", got.ConsistencyScore)
	}
	if got.Score != 100 {
		t.Fatalf("score = %d, want 100", got.Score)
	}
}

func TestSleepScoreDurationTiers(t *testing.T) {
	cases := []struct {
		avg  float64
		want int
	}{
		{8.5, 40},  // diff 0.5, boundary resolves to better tier
		{7.0, 35},  // diff 1.0
		{9.5, 28},  // diff 1.5
		{6.0, 20},  // diff 2.0
		{5.0, 10},  // diff 3.0 -> 40 - 30
		{2.0, 0},   // diff 6.0, clamped at 0
		{12.5, 0},  // diff 4.5 -> 40 - 45, clamped
		{7.75, 40}, // diff 0.25
	}
	for _, tc := range cases {
		got := SleepScore([]SleepSample{{Duration: fptr(tc.avg)}}, 8.0)
		if got.DurationScore != tc.want {
			t.Errorf("avg %.2f: duration score = %d, want %d", tc.avg, got.DurationScore, tc.want)
		}
	}
}

func TestSleepScoreQualityTruncates(t *testing.T) {
	// Average quality 4.5 -> 36, not 37.
	samples := []SleepSample{{Quality: iptr(4)}, {Quality: iptr(5)}}
	got := SleepScore(samples, 8.0)
	if got.QualityScore != 36 {
		t.Fatalf("quality score = %d, want 36", got.QualityScore)
	}
}

func TestSleepScoreConsistencyNeedsThreeDurations(t *testing.T) {
	// Two duration samples: logging frequency only, no stability component.
	samples := []SleepSample{
		{Duration: fptr(8.0)},
		{Duration: fptr(8.0)},
	}
	got := SleepScore(samples, 8.0)
	want := 2 * 10 / 7 // = 2
	if got.ConsistencyScore != want {
		t.Fatalf("consistency score = %d, want %d", got.ConsistencyScore, want)
	}

	// Third sample unlocks the stability component; std dev 0 scores 10.
	samples = append(samples, SleepSample{Duration: fptr(8.0)})
	got = SleepScore(samples, 8.0)
	want = 3*10/7 + 10 // = 14
	if got.ConsistencyScore != want {
		t.Fatalf("consistency score = %d, want %d", got.ConsistencyScore, want)
	}
}

func TestSleepScoreStabilityTiers(t *testing.T) {
	// Durations 7, 8, 9 -> population std dev ~0.816 -> 7 points.
	samples := []SleepSample{
		{Duration: fptr(7.0)},
		{Duration: fptr(8.0)},
		{Duration: fptr(9.0)},
	}
	got := SleepScore(samples, 8.0)
	want := 3*10/7 + 7 // = 11
	if got.ConsistencyScore != want {
		t.Fatalf("consistency score = %d, want %d", got.ConsistencyScore, want)
	}
}

func TestSleepScoreMissingFields(t *testing.T) {
	// Quality-only samples: duration sub-score 0, average nil.
	samples := []SleepSample{{Quality: iptr(3)}, {Quality: iptr(3)}}
	got := SleepScore(samples, 8.0)
	if got.DurationScore != 0 || got.AvgDuration != nil {
		t.Fatalf("expected no duration contribution, got %+v", got)
	}
	if got.QualityScore != 24 {
		t.Fatalf("quality score = %d, want 24", got.QualityScore)
	}
}
