package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"size:255;not null"`
	Email        *string   `gorm:"size:255;uniqueIndex:idx_users_email,where:email IS NOT NULL"`
	PasswordHash []byte    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

type Studio struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"size:255;not null"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	Members   []StudioMember `gorm:"constraint:OnDelete:CASCADE"`
}

type StudioMember struct {
	StudioID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time
}

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	StudioID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"size:255;not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

type Scene struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Title       string    `gorm:"size:255;not null"`
	Position    int       `gorm:"not null"`
	SketchPath  string    `gorm:"size:512"`
	ArtworkPath string    `gorm:"size:512"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

type Comment struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	SceneID        uuid.UUID `gorm:"type:uuid;index;not null"`
	AuthorID       uuid.UUID `gorm:"type:uuid;index;not null"`
	AuthorName     string    `gorm:"size:255;not null"`
	Content        string    `gorm:"type:text"`
	Tag            string    `gorm:"size:32;not null"`
	Resolved       bool      `gorm:"not null"`
	ParentID       *int64    `gorm:"index"`
	SketchData     string    `gorm:"type:text"`
	AnnotationData string    `gorm:"type:text"`
	ImageType      string    `gorm:"size:16"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

type ActivityEntry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	ProjectID uuid.UUID `gorm:"type:uuid;index;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	UserName  string    `gorm:"size:255;not null"`
	Action    string    `gorm:"size:64;not null"`
	Detail    string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;index"`
}
