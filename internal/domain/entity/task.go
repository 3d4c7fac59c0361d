package entity

import "time"

// TaskStatus enumerates the lifecycle states of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// TaskStatuses lists every task status, for form selects.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskPending, TaskInProgress, TaskCompleted}
}

// Task belongs to exactly one project. ProjectID is immutable after
// creation; updates always keep the original association.
type Task struct {
	ID          int64
	Title       string
	Description string
	DueDate     *time.Time
	Status      TaskStatus
	ProjectID   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
