package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImageType selects which image variant of a scene an upload or annotation
// refers to.
type ImageType string

const (
	ImageSketch  ImageType = "sketch"
	ImageArtwork ImageType = "artwork"
)

func (t ImageType) Valid() bool {
	switch t {
	case ImageSketch, ImageArtwork:
		return true
	}
	return false
}

// Scene is a single storyboard frame inside a project. SketchPath and
// ArtworkPath are storage-relative paths managed by the image store.
type Scene struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	Title       string    `json:"title"`
	Position    int       `json:"position"`
	SketchPath  string    `json:"sketch_path,omitempty"`
	ArtworkPath string    `json:"artwork_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewScene(projectID uuid.UUID, title string, position int) *Scene {
	now := time.Now().UTC()
	return &Scene{
		ID:        uuid.New(),
		ProjectID: projectID,
		Title:     title,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ImagePath returns the stored path for the given variant.
func (s *Scene) ImagePath(t ImageType) string {
	if t == ImageArtwork {
		return s.ArtworkPath
	}
	return s.SketchPath
}

// SetImagePath records the stored path for the given variant.
func (s *Scene) SetImagePath(t ImageType, path string) {
	if t == ImageArtwork {
		s.ArtworkPath = path
		return
	}
	s.SketchPath = path
}
