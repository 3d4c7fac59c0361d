package entity

import "time"

// ProjectStatus enumerates the lifecycle states of a project.
type ProjectStatus string

const (
	ProjectActive     ProjectStatus = "ACTIVE"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectFinished   ProjectStatus = "FINISHED"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectInProgress, ProjectFinished:
		return true
	}
	return false
}

// ProjectStatuses lists every project status, for form selects.
func ProjectStatuses() []ProjectStatus {
	return []ProjectStatus{ProjectActive, ProjectInProgress, ProjectFinished}
}

// Project is a unit of work owned by exactly one user. The owner is
// assigned at creation and never reassigned afterwards.
type Project struct {
	ID            int64
	Name          string
	Description   string
	StartDate     time.Time
	Status        ProjectStatus
	OwnerUsername string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
