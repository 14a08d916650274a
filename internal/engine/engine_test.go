package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/madspljoensson/life-dashboard/internal/storage"
)

func newTestService(t *testing.T) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	svc := NewService(db)
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup
}

func pinClock(svc *Service, y int, m time.Month, d int) time.Time {
	now := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	svc.SetNow(func() time.Time { return now })
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strptr(s string) *string     { return &s }
func intptr(v int) *int           { return &v }
func floatptr(v float64) *float64 { return &v }

func TestHabitStreakThroughLogs(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	today := pinClock(svc, 2026, time.March, 10)

	h, err := svc.CreateHabit(ctx, storage.HabitInsert{Name: "  Meditate ", Active: true})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}
	if h.Name != "Meditate" {
		t.Fatalf("name=%q, want trimmed", h.Name)
	}

	// Three consecutive days ending today, plus a broken older run.
	for _, off := range []int{0, -1, -2, -5, -6} {
		if _, err := svc.LogHabit(ctx, h.ID, today.AddDate(0, 0, off), true, nil); err != nil {
			t.Fatalf("log habit: %v", err)
		}
	}
	// Re-logging the same day must not inflate anything.
	if _, err := svc.LogHabit(ctx, h.ID, today, true, nil); err != nil {
		t.Fatalf("re-log habit: %v", err)
	}

	res, err := svc.HabitStreak(ctx, h.ID)
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if res.Current != 3 || res.Longest != 3 {
		t.Fatalf("streak=%+v, want current=3 longest=3", res)
	}
}

func TestHabitStatsRates(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	today := pinClock(svc, 2026, time.March, 10)

	stats, err := svc.HabitStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.CompletionRate7d != nil || stats.CompletionRate30d != nil {
		t.Fatalf("rates=%+v, want nil with no habits", stats)
	}

	h, err := svc.CreateHabit(ctx, storage.HabitInsert{Name: "Read", Active: true})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}
	inactive, err := svc.CreateHabit(ctx, storage.HabitInsert{Name: "Old", Active: false})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}
	// Inactive habit completions must not count toward the rates.
	if _, err := svc.LogHabit(ctx, inactive.ID, today, true, nil); err != nil {
		t.Fatalf("log habit: %v", err)
	}
	for _, off := range []int{0, -1, -2} {
		if _, err := svc.LogHabit(ctx, h.ID, today.AddDate(0, 0, off), true, nil); err != nil {
			t.Fatalf("log habit: %v", err)
		}
	}

	stats, err = svc.HabitStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalHabits != 2 || stats.ActiveHabits != 1 {
		t.Fatalf("counts=%+v, want total=2 active=1", stats)
	}
	// 3 of 7 expected days: 42.9%.
	if stats.CompletionRate7d == nil || *stats.CompletionRate7d != 42.9 {
		t.Fatalf("rate7=%v, want 42.9", stats.CompletionRate7d)
	}
	if stats.CompletionRate30d == nil || *stats.CompletionRate30d != 10.0 {
		t.Fatalf("rate30=%v, want 10.0", stats.CompletionRate30d)
	}
	if stats.ActiveStreaks != 1 {
		t.Fatalf("active streaks=%d, want 1", stats.ActiveStreaks)
	}
}

func TestHabitHeatmapWindow(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	today := pinClock(svc, 2026, time.March, 10)

	h, err := svc.CreateHabit(ctx, storage.HabitInsert{Name: "Walk", Active: true})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}
	for _, off := range []int{0, -1, -40} {
		if _, err := svc.LogHabit(ctx, h.ID, today.AddDate(0, 0, off), true, nil); err != nil {
			t.Fatalf("log habit: %v", err)
		}
	}

	entries, err := svc.HabitHeatmap(ctx, 30)
	if err != nil {
		t.Fatalf("heatmap: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries=%d, want 2 (outside-window log dropped)", len(entries))
	}
	if !entries[0].Date.Before(entries[1].Date) {
		t.Fatalf("heatmap not ascending: %+v", entries)
	}
}

func TestDeleteHabitRemovesLogs(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	today := pinClock(svc, 2026, time.March, 10)

	h, err := svc.CreateHabit(ctx, storage.HabitInsert{Name: "Run", Active: true})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}
	if _, err := svc.LogHabit(ctx, h.ID, today, true, nil); err != nil {
		t.Fatalf("log habit: %v", err)
	}

	ok, err := svc.DeleteHabit(ctx, h.ID)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	entries, err := svc.HabitHeatmap(ctx, 30)
	if err != nil {
		t.Fatalf("heatmap: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("logs survived habit delete: %+v", entries)
	}
}

func TestLogSleepDerivesDuration(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	today := pinClock(svc, 2026, time.March, 10)

	bed := time.Date(2026, time.March, 9, 23, 30, 0, 0, time.UTC)
	wake := time.Date(2026, time.March, 10, 7, 0, 0, 0, time.UTC)
	e, err := svc.LogSleep(ctx, storage.SleepInsert{Date: today, Bedtime: &bed, WakeTime: &wake, Quality: intptr(4)})
	if err != nil {
		t.Fatalf("log sleep: %v", err)
	}
	if e.DurationHours == nil || *e.DurationHours != 7.5 {
		t.Fatalf("duration=%v, want 7.5", e.DurationHours)
	}
}

func TestSleepScoreUsesConfiguredTarget(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	today := pinClock(svc, 2026, time.March, 10)

	for off := 0; off > -7; off-- {
		in := storage.SleepInsert{
			Date:          today.AddDate(0, 0, off),
			DurationHours: floatptr(7.0),
			Quality:       intptr(5),
		}
		if _, err := svc.LogSleep(ctx, in); err != nil {
			t.Fatalf("log sleep: %v", err)
		}
	}

	// At the 8h default the 7h nights lose duration points.
	res, err := svc.SleepScore(ctx)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if res.Score != 95 {
		t.Fatalf("score=%d, want 95 at default target", res.Score)
	}

	if err := svc.SetSleepTarget(ctx, 7); err != nil {
		t.Fatalf("set target: %v", err)
	}
	res, err = svc.SleepScore(ctx)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if res.Score != 100 {
		t.Fatalf("score=%d, want 100 at 7h target", res.Score)
	}
}

func TestWeeklySleepStats(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	today := pinClock(svc, 2026, time.March, 10)

	for i, d := range []float64{8.0, 7.0} {
		in := storage.SleepInsert{Date: today.AddDate(0, 0, -i), DurationHours: floatptr(d), Quality: intptr(4 + i)}
		if _, err := svc.LogSleep(ctx, in); err != nil {
			t.Fatalf("log sleep: %v", err)
		}
	}
	// Outside the seven-day window.
	if _, err := svc.LogSleep(ctx, storage.SleepInsert{Date: today.AddDate(0, 0, -10), DurationHours: floatptr(2)}); err != nil {
		t.Fatalf("log sleep: %v", err)
	}

	stats, err := svc.WeeklySleepStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Entries != 2 {
		t.Fatalf("entries=%d, want 2", stats.Entries)
	}
	if stats.AvgDuration == nil || *stats.AvgDuration != 7.5 {
		t.Fatalf("avg duration=%v, want 7.5", stats.AvgDuration)
	}
	if stats.AvgQuality == nil || *stats.AvgQuality != 4.5 {
		t.Fatalf("avg quality=%v, want 4.5", stats.AvgQuality)
	}
}

func TestMonthSummaryAndTrends(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	pinClock(svc, 2026, time.February, 15)

	add := func(date string, amount string, typ, category string) {
		t.Helper()
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			t.Fatalf("parse date: %v", err)
		}
		in := storage.TransactionInsert{Date: d, Amount: decimal.RequireFromString(amount), Category: category, Type: typ}
		if _, err := svc.CreateTransaction(ctx, in); err != nil {
			t.Fatalf("create transaction: %v", err)
		}
	}
	add("2026-02-01", "3000.00", "income", "salary")
	add("2026-02-05", "1200.50", "expense", "rent")
	add("2026-02-07", "99.49", "expense", "food")
	add("2026-01-10", "500.00", "expense", "travel")

	sum, err := svc.MonthSummary(ctx, "")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Income != 3000.00 || sum.Expenses != 1299.99 {
		t.Fatalf("summary=%+v, want income=3000 expenses=1299.99", sum)
	}
	if sum.Net != 1700.01 {
		t.Fatalf("net=%v, want 1700.01", sum.Net)
	}

	buckets, err := svc.Trends(ctx, 3)
	if err != nil {
		t.Fatalf("trends: %v", err)
	}
	if len(buckets) != 3 {
		t.Fatalf("buckets=%d, want 3", len(buckets))
	}
	if buckets[0].Month != "2025-12" || buckets[2].Month != "2026-02" {
		t.Fatalf("months=%s..%s, want 2025-12..2026-02", buckets[0].Month, buckets[2].Month)
	}
	if buckets[1].Expenses != 500.00 || buckets[2].Income != 3000.00 {
		t.Fatalf("bucket totals wrong: %+v", buckets)
	}

	cats, err := svc.CategoryTrends(ctx, 2)
	if err != nil {
		t.Fatalf("category trends: %v", err)
	}
	if cats[1].ByCategory["rent"] != 1200.50 {
		t.Fatalf("rent=%v, want 1200.50", cats[1].ByCategory["rent"])
	}
	if _, ok := cats[1].ByCategory["salary"]; ok {
		t.Fatalf("income leaked into category rollup: %+v", cats[1])
	}
}

func TestCreateTransactionRejectsBadType(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	in := storage.TransactionInsert{Date: time.Now(), Amount: decimal.NewFromInt(5), Category: "misc", Type: "transfer"}
	if _, err := svc.CreateTransaction(ctx, in); err == nil {
		t.Fatal("expected error for unknown transaction type")
	}
}

func TestBudgetDuplicateCategory(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.CreateBudget(ctx, "food", decimal.NewFromInt(400)); err != nil {
		t.Fatalf("create budget: %v", err)
	}
	_, err := svc.CreateBudget(ctx, "food", decimal.NewFromInt(500))
	var dup ErrDuplicateBudget
	if !errors.As(err, &dup) {
		t.Fatalf("err=%v, want ErrDuplicateBudget", err)
	}
}

func TestSubscriptionStats(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	today := pinClock(svc, 2026, time.March, 10)

	mk := func(name, cost, cycle string, renewOffset int, active bool) {
		t.Helper()
		in := storage.SubscriptionInsert{
			Name:         name,
			Cost:         decimal.RequireFromString(cost),
			BillingCycle: cycle,
			NextRenewal:  today.AddDate(0, 0, renewOffset),
			Active:       active,
		}
		if _, err := svc.CreateSubscription(ctx, in); err != nil {
			t.Fatalf("create subscription %s: %v", name, err)
		}
	}
	mk("Stream", "19.99", "monthly", 5, true)
	mk("Backup", "1200", "yearly", 60, true)
	mk("Legacy", "9.99", "monthly", 3, false)

	stats, err := svc.SubscriptionStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.ActiveCount != 2 {
		t.Fatalf("active=%d, want 2", stats.ActiveCount)
	}
	if stats.MonthlyTotal != 119.99 {
		t.Fatalf("monthly=%v, want 119.99", stats.MonthlyTotal)
	}
	if stats.YearlyTotal != 1439.88 {
		t.Fatalf("yearly=%v, want 1439.88", stats.YearlyTotal)
	}
	if len(stats.Upcoming) != 1 || stats.Upcoming[0].Name != "Stream" {
		t.Fatalf("upcoming=%+v, want only Stream", stats.Upcoming)
	}
}

func TestCreateSubscriptionRejectsBadCycle(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	in := storage.SubscriptionInsert{Name: "X", Cost: decimal.NewFromInt(1), BillingCycle: "daily", NextRenewal: time.Now()}
	if _, err := svc.CreateSubscription(ctx, in); err == nil {
		t.Fatal("expected error for unknown billing cycle")
	}
}

func TestTaskCompletionStamp(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	pinClock(svc, 2026, time.March, 10)

	task, err := svc.CreateTask(ctx, storage.TaskInsert{Title: "Ship it"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.Status != "todo" || task.Priority != "medium" {
		t.Fatalf("defaults=%s/%s, want todo/medium", task.Status, task.Priority)
	}

	task, err = svc.UpdateTask(ctx, task.ID, TaskUpdate{Status: strptr("done")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if task.CompletedAt == nil {
		t.Fatal("done task missing CompletedAt")
	}

	task, err = svc.UpdateTask(ctx, task.ID, TaskUpdate{Status: strptr("todo")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if task.CompletedAt != nil {
		t.Fatal("reopened task kept CompletedAt")
	}
}

func TestOverdueTasks(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	today := pinClock(svc, 2026, time.March, 10)

	past := today.AddDate(0, 0, -2)
	future := today.AddDate(0, 0, 2)
	if _, err := svc.CreateTask(ctx, storage.TaskInsert{Title: "Late", DueDate: &past}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateTask(ctx, storage.TaskInsert{Title: "Soon", DueDate: &future}); err != nil {
		t.Fatalf("create: %v", err)
	}
	done, err := svc.CreateTask(ctx, storage.TaskInsert{Title: "Finished", DueDate: &past})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.UpdateTask(ctx, done.ID, TaskUpdate{Status: strptr("done")}); err != nil {
		t.Fatalf("update: %v", err)
	}

	overdue, err := svc.OverdueTasks(ctx)
	if err != nil {
		t.Fatalf("overdue: %v", err)
	}
	if len(overdue) != 1 || overdue[0].Title != "Late" {
		t.Fatalf("overdue=%+v, want only Late", overdue)
	}
}

func TestFitnessStats(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	today := pinClock(svc, 2026, time.March, 10)

	for _, off := range []int{0, -1, -20} {
		in := storage.WorkoutInsert{Date: today.AddDate(0, 0, off), WorkoutType: "strength", Name: "Session"}
		if _, err := svc.LogWorkout(ctx, in); err != nil {
			t.Fatalf("log workout: %v", err)
		}
	}

	stats, err := svc.FitnessStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalWorkouts != 3 || stats.ThisWeek != 2 || stats.Streak != 2 {
		t.Fatalf("stats=%+v, want total=3 week=2 streak=2", stats)
	}
}

func TestDailyNoteRoundTrip(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	today := pinClock(svc, 2026, time.March, 10)

	n, err := svc.CreateDailyNote(ctx, storage.DailyInsert{Date: today, Mood: intptr(4), Note: strptr("fine day")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if n.Mood == nil || *n.Mood != 4 {
		t.Fatalf("mood=%v, want 4", n.Mood)
	}

	got, err := svc.TodayNote(ctx)
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if got == nil || got.ID != n.ID {
		t.Fatalf("today note=%+v, want id %d", got, n.ID)
	}

	if _, err := svc.CreateDailyNote(ctx, storage.DailyInsert{Date: today, Mood: intptr(99)}); err == nil {
		t.Fatal("expected error for out-of-range mood")
	}

	upd, err := svc.UpdateDailyNote(ctx, today.Format("2006-01-02"), DailyUpdate{Energy: intptr(4)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if upd.Energy == nil || *upd.Energy != 4 {
		t.Fatalf("energy=%v, want 4", upd.Energy)
	}
}
