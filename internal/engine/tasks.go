package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/madspljoensson/life-dashboard/internal/storage"
)

var (
	taskStatuses   = map[string]bool{"todo": true, "in_progress": true, "done": true}
	taskPriorities = map[string]bool{"low": true, "medium": true, "high": true, "urgent": true}
)

// TaskUpdate carries partial task updates; nil fields are left unchanged.
type TaskUpdate struct {
	Title            *string
	Description      *string
	Status           *string
	Priority         *string
	DueDate          *time.Time
	Recurring        *bool
	RecurringPattern *string
}

func (s *Service) CreateTask(ctx context.Context, in storage.TaskInsert) (*storage.Task, error) {
	title, err := normalizeName(in.Title)
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	in.Title = title
	if in.Status == "" {
		in.Status = "todo"
	}
	if in.Priority == "" {
		in.Priority = "medium"
	}
	if !taskStatuses[in.Status] {
		return nil, fmt.Errorf("invalid status %q", in.Status)
	}
	if !taskPriorities[in.Priority] {
		return nil, fmt.Errorf("invalid priority %q", in.Priority)
	}

	id, err := s.tasks.Insert(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.tasks.Get(ctx, id)
}

func (s *Service) Task(ctx context.Context, id int64) (*storage.Task, error) {
	return s.tasks.Get(ctx, id)
}

func (s *Service) Tasks(ctx context.Context, status, priority *string) ([]storage.Task, error) {
	tasks, err := s.tasks.List(ctx, status, priority)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []storage.Task{}
	}
	return tasks, nil
}

// OverdueTasks lists open tasks whose due date has passed.
func (s *Service) OverdueTasks(ctx context.Context) ([]storage.Task, error) {
	tasks, err := s.tasks.ListOverdue(ctx, s.today())
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []storage.Task{}
	}
	return tasks, nil
}

// UpdateTask applies a partial update. Moving a task to done stamps
// CompletedAt; moving it back clears the stamp.
func (s *Service) UpdateTask(ctx context.Context, id int64, patch TaskUpdate) (*storage.Task, error) {
	t, err := s.tasks.Get(ctx, id)
	if err != nil || t == nil {
		return nil, err
	}
	if patch.Title != nil {
		title, err := normalizeName(*patch.Title)
		if err != nil {
			return nil, fmt.Errorf("title: %w", err)
		}
		t.Title = title
	}
	if patch.Description != nil {
		t.Description = patch.Description
	}
	if patch.Status != nil {
		if !taskStatuses[*patch.Status] {
			return nil, fmt.Errorf("invalid status %q", *patch.Status)
		}
		if *patch.Status == "done" && t.Status != "done" {
			now := s.now().UTC()
			t.CompletedAt = &now
		}
		if *patch.Status != "done" {
			t.CompletedAt = nil
		}
		t.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !taskPriorities[*patch.Priority] {
			return nil, fmt.Errorf("invalid priority %q", *patch.Priority)
		}
		t.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	if patch.Recurring != nil {
		t.Recurring = *patch.Recurring
	}
	if patch.RecurringPattern != nil {
		t.RecurringPattern = patch.RecurringPattern
	}
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) DeleteTask(ctx context.Context, id int64) (bool, error) {
	return s.tasks.Delete(ctx, id)
}
