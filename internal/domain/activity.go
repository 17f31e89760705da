package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityAction names a mutating operation recorded in the project log.
type ActivityAction string

const (
	ActivitySceneCreated      ActivityAction = "scene.created"
	ActivitySceneUpdated      ActivityAction = "scene.updated"
	ActivitySceneDeleted      ActivityAction = "scene.deleted"
	ActivityImageAttached     ActivityAction = "scene.image_attached"
	ActivityCommentAdded      ActivityAction = "comment.added"
	ActivityCommentUpdated    ActivityAction = "comment.updated"
	ActivityCommentResolved   ActivityAction = "comment.resolved"
	ActivityCommentDeleted    ActivityAction = "comment.deleted"
	ActivityAnnotationUpdated ActivityAction = "comment.annotation_updated"
)

// ActivityEntry is one row of a project's audit trail.
type ActivityEntry struct {
	ID        int64          `json:"id"`
	ProjectID uuid.UUID      `json:"project_id"`
	UserID    uuid.UUID      `json:"user_id"`
	UserName  string         `json:"user_name"`
	Action    ActivityAction `json:"action"`
	Detail    string         `json:"detail,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func NewActivityEntry(projectID, userID uuid.UUID, userName string, action ActivityAction, detail string) *ActivityEntry {
	return &ActivityEntry{
		ProjectID: projectID,
		UserID:    userID,
		UserName:  userName,
		Action:    action,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
}
