package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommentTag classifies the intent of a comment.
type CommentTag string

const (
	TagComment    CommentTag = "comment"
	TagRevision   CommentTag = "revision"
	TagAnnotation CommentTag = "annotation"
)

func (t CommentTag) Valid() bool {
	switch t {
	case TagComment, TagRevision, TagAnnotation:
		return true
	}
	return false
}

// Comment is a threaded remark on a scene. IDs are assigned by the
// repository on durable create; clients use timestamp-based placeholder ids
// until then. Threading is two levels deep: a reply's parent is always a
// top-level comment (ParentID of the parent is nil).
type Comment struct {
	ID         int64      `json:"id"`
	SceneID    uuid.UUID  `json:"scene_id"`
	AuthorID   uuid.UUID  `json:"author_id"`
	AuthorName string     `json:"author_name"`
	Content    string     `json:"content"`
	Tag        CommentTag `json:"tag"`
	Resolved   bool       `json:"resolved"`
	ParentID   *int64     `json:"parent_id,omitempty"`

	// SketchData and AnnotationData carry optional raster payloads in
	// data-URL form, tied to the image variant named by ImageType.
	SketchData     string    `json:"sketch_data,omitempty"`
	AnnotationData string    `json:"annotation_data,omitempty"`
	ImageType      ImageType `json:"image_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsReply reports whether the comment is a second-level reply.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// Clone returns a shallow copy with its own ParentID pointer, so merge
// operations never alias caller-owned state.
func (c *Comment) Clone() *Comment {
	cp := *c
	if c.ParentID != nil {
		parent := *c.ParentID
		cp.ParentID = &parent
	}
	return &cp
}
