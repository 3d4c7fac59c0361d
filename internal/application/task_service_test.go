package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/movalle/proyectra/internal/domain/apperr"
	"github.com/movalle/proyectra/internal/domain/entity"
)

func newTaskService() (*TaskService, *memProjectRepo, *memTaskRepo) {
	projects := newMemProjectRepo()
	tasks := newMemTaskRepo()
	return NewTaskService(tasks, projects, nil), projects, tasks
}

func seedProject(t *testing.T, projects *memProjectRepo) *entity.Project {
	t.Helper()
	p := &entity.Project{
		Name:          "Website",
		StartDate:     date(2026, time.March, 1),
		Status:        entity.ProjectActive,
		OwnerUsername: "alice",
	}
	if err := projects.Create(context.Background(), p); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return p
}

func TestTaskCreateDefaultsToPending(t *testing.T) {
	svc, projects, _ := newTaskService()
	p := seedProject(t, projects)

	task, err := svc.Create(context.Background(), TaskInput{Title: "Design"}, p.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.Status != entity.TaskPending {
		t.Errorf("status = %q, want %q", task.Status, entity.TaskPending)
	}
	if task.ProjectID != p.ID {
		t.Errorf("project id = %d, want %d", task.ProjectID, p.ID)
	}
	if task.DueDate != nil {
		t.Errorf("due date = %v, want nil", task.DueDate)
	}
}

func TestTaskCreateMissingProjectPersistsNothing(t *testing.T) {
	svc, _, tasks := newTaskService()

	_, err := svc.Create(context.Background(), TaskInput{Title: "Design"}, 42)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(tasks.tasks) != 0 {
		t.Errorf("failed create persisted %d tasks", len(tasks.tasks))
	}
}

func TestTaskCreateRejectsBlankTitle(t *testing.T) {
	svc, projects, tasks := newTaskService()
	p := seedProject(t, projects)

	if _, err := svc.Create(context.Background(), TaskInput{Title: "  "}, p.ID); !apperr.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(tasks.tasks) != 0 {
		t.Error("rejected create persisted a task")
	}
}

func TestTaskUpdateKeepsStoredProject(t *testing.T) {
	svc, projects, _ := newTaskService()
	p := seedProject(t, projects)

	task, err := svc.Create(context.Background(), TaskInput{Title: "Design"}, p.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	due := date(2026, time.May, 15)
	got, err := svc.Update(context.Background(), task.ID, TaskInput{
		Title:   "Design mockups",
		DueDate: &due,
		Status:  entity.TaskInProgress,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.ProjectID != p.ID {
		t.Errorf("project id after update = %d, want %d", got.ProjectID, p.ID)
	}
	if got.Status != entity.TaskInProgress || got.Title != "Design mockups" {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestTaskUpdateBlankTitleLeavesStoredTaskUnchanged(t *testing.T) {
	svc, projects, tasks := newTaskService()
	p := seedProject(t, projects)

	task, err := svc.Create(context.Background(), TaskInput{Title: "Design"}, p.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(context.Background(), task.ID, TaskInput{Title: ""}); !apperr.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	stored, err := tasks.GetByID(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Title != "Design" {
		t.Errorf("stored title = %q, want Design", stored.Title)
	}
}

func TestTaskDeleteByStatus(t *testing.T) {
	svc, projects, tasks := newTaskService()
	p := seedProject(t, projects)

	cases := []struct {
		status       entity.TaskStatus
		wantConflict bool
	}{
		{entity.TaskPending, false},
		{entity.TaskInProgress, true},
		{entity.TaskCompleted, true},
	}
	for _, tc := range cases {
		task := &entity.Task{Title: "t", Status: tc.status, ProjectID: p.ID}
		if err := tasks.Create(context.Background(), task); err != nil {
			t.Fatalf("seed task: %v", err)
		}
		err := svc.Delete(context.Background(), task.ID)
		if tc.wantConflict {
			if !apperr.IsConflict(err) {
				t.Errorf("%s: err = %v, want conflict", tc.status, err)
			}
			if _, gerr := tasks.GetByID(context.Background(), task.ID); gerr != nil {
				t.Errorf("%s: task was deleted despite the conflict", tc.status)
			}
		} else if err != nil {
			t.Errorf("%s: Delete: %v", tc.status, err)
		}
	}
}

func TestTaskListByProjectNeverNil(t *testing.T) {
	svc, projects, _ := newTaskService()
	p := seedProject(t, projects)

	got, err := svc.ListByProject(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if got == nil {
		t.Error("ListByProject returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}
