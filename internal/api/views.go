package api

import (
	"time"

	"github.com/madspljoensson/life-dashboard/internal/storage"
)

// Wire representations of the storage records. Dates go out as YYYY-MM-DD
// strings; timestamps as RFC3339.

const dateLayout = "2006-01-02"

func fmtDay(t time.Time) string { return t.Format(dateLayout) }

func fmtDayPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func fmtTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

type habitView struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Category        *string `json:"category"`
	Icon            *string `json:"icon"`
	TargetFrequency *string `json:"target_frequency"`
	Active          bool    `json:"active"`
	CreatedAt       string  `json:"created_at"`
}

func toHabitView(h storage.Habit) habitView {
	return habitView{
		ID:              h.ID,
		Name:            h.Name,
		Category:        h.Category,
		Icon:            h.Icon,
		TargetFrequency: h.TargetFrequency,
		Active:          h.Active,
		CreatedAt:       h.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toHabitViews(hs []storage.Habit) []habitView {
	out := make([]habitView, len(hs))
	for i, h := range hs {
		out[i] = toHabitView(h)
	}
	return out
}

type habitLogView struct {
	ID        int64    `json:"id"`
	HabitID   int64    `json:"habit_id"`
	Date      string   `json:"date"`
	Completed bool     `json:"completed"`
	Value     *float64 `json:"value"`
}

func toHabitLogView(l storage.HabitLog) habitLogView {
	return habitLogView{
		ID:        l.ID,
		HabitID:   l.HabitID,
		Date:      fmtDay(l.Date),
		Completed: l.Completed,
		Value:     l.Value,
	}
}

func toHabitLogViews(ls []storage.HabitLog) []habitLogView {
	out := make([]habitLogView, len(ls))
	for i, l := range ls {
		out[i] = toHabitLogView(l)
	}
	return out
}

type sleepView struct {
	ID            int64    `json:"id"`
	Date          string   `json:"date"`
	Bedtime       *string  `json:"bedtime"`
	WakeTime      *string  `json:"wake_time"`
	DurationHours *float64 `json:"duration_hours"`
	Quality       *int     `json:"quality"`
	Notes         *string  `json:"notes"`
}

func toSleepView(e storage.SleepEntry) sleepView {
	return sleepView{
		ID:            e.ID,
		Date:          fmtDay(e.Date),
		Bedtime:       fmtTimePtr(e.Bedtime),
		WakeTime:      fmtTimePtr(e.WakeTime),
		DurationHours: e.DurationHours,
		Quality:       e.Quality,
		Notes:         e.Notes,
	}
}

func toSleepViews(es []storage.SleepEntry) []sleepView {
	out := make([]sleepView, len(es))
	for i, e := range es {
		out[i] = toSleepView(e)
	}
	return out
}

type transactionView struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
	Type        string  `json:"type"`
}

func toTransactionView(tx storage.Transaction) transactionView {
	return transactionView{
		ID:          tx.ID,
		Date:        fmtDay(tx.Date),
		Amount:      tx.Amount.InexactFloat64(),
		Category:    tx.Category,
		Description: tx.Description,
		Type:        tx.Type,
	}
}

func toTransactionViews(txs []storage.Transaction) []transactionView {
	out := make([]transactionView, len(txs))
	for i, tx := range txs {
		out[i] = toTransactionView(tx)
	}
	return out
}

type budgetView struct {
	ID           int64   `json:"id"`
	Category     string  `json:"category"`
	MonthlyLimit float64 `json:"monthly_limit"`
}

func toBudgetView(b storage.Budget) budgetView {
	return budgetView{ID: b.ID, Category: b.Category, MonthlyLimit: b.MonthlyLimit.InexactFloat64()}
}

func toBudgetViews(bs []storage.Budget) []budgetView {
	out := make([]budgetView, len(bs))
	for i, b := range bs {
		out[i] = toBudgetView(b)
	}
	return out
}

type subscriptionView struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Cost         float64 `json:"cost"`
	BillingCycle string  `json:"billing_cycle"`
	NextRenewal  string  `json:"next_renewal"`
	Category     *string `json:"category"`
	Active       bool    `json:"active"`
	Notes        *string `json:"notes"`
}

func toSubscriptionView(s storage.Subscription) subscriptionView {
	return subscriptionView{
		ID:           s.ID,
		Name:         s.Name,
		Cost:         s.Cost.InexactFloat64(),
		BillingCycle: s.BillingCycle,
		NextRenewal:  fmtDay(s.NextRenewal),
		Category:     s.Category,
		Active:       s.Active,
		Notes:        s.Notes,
	}
}

func toSubscriptionViews(ss []storage.Subscription) []subscriptionView {
	out := make([]subscriptionView, len(ss))
	for i, s := range ss {
		out[i] = toSubscriptionView(s)
	}
	return out
}

type taskView struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Description      *string `json:"description"`
	Status           string  `json:"status"`
	Priority         string  `json:"priority"`
	DueDate          *string `json:"due_date"`
	CompletedAt      *string `json:"completed_at"`
	Recurring        bool    `json:"recurring"`
	RecurringPattern *string `json:"recurring_pattern"`
}

func toTaskView(t storage.Task) taskView {
	return taskView{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		Status:           t.Status,
		Priority:         t.Priority,
		DueDate:          fmtDayPtr(t.DueDate),
		CompletedAt:      fmtTimePtr(t.CompletedAt),
		Recurring:        t.Recurring,
		RecurringPattern: t.RecurringPattern,
	}
}

func toTaskViews(ts []storage.Task) []taskView {
	out := make([]taskView, len(ts))
	for i, t := range ts {
		out[i] = toTaskView(t)
	}
	return out
}

type workoutView struct {
	ID              int64   `json:"id"`
	Date            string  `json:"date"`
	WorkoutType     string  `json:"workout_type"`
	Name            string  `json:"name"`
	DurationMinutes *int    `json:"duration_minutes"`
	Notes           *string `json:"notes"`
}

func toWorkoutView(w storage.Workout) workoutView {
	return workoutView{
		ID:              w.ID,
		Date:            fmtDay(w.Date),
		WorkoutType:     w.WorkoutType,
		Name:            w.Name,
		DurationMinutes: w.DurationMinutes,
		Notes:           w.Notes,
	}
}

func toWorkoutViews(ws []storage.Workout) []workoutView {
	out := make([]workoutView, len(ws))
	for i, w := range ws {
		out[i] = toWorkoutView(w)
	}
	return out
}

type dailyView struct {
	ID         int64   `json:"id"`
	Date       string  `json:"date"`
	Mood       *int    `json:"mood"`
	Energy     *int    `json:"energy"`
	Note       *string `json:"note"`
	Highlights *string `json:"highlights"`
}

func toDailyView(n storage.DailyNote) dailyView {
	return dailyView{
		ID:         n.ID,
		Date:       fmtDay(n.Date),
		Mood:       n.Mood,
		Energy:     n.Energy,
		Note:       n.Note,
		Highlights: n.Highlights,
	}
}

func toDailyViews(ns []storage.DailyNote) []dailyView {
	out := make([]dailyView, len(ns))
	for i, n := range ns {
		out[i] = toDailyView(n)
	}
	return out
}
