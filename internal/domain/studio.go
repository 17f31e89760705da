package domain

import (
	"time"

	"github.com/google/uuid"
)

// Studio is the tenant root: it owns projects and a member list.
type Studio struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	OwnerID   uuid.UUID   `json:"owner_id"`
	MemberIDs []uuid.UUID `json:"member_ids,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func NewStudio(name string, owner uuid.UUID) *Studio {
	now := time.Now().UTC()
	return &Studio{
		ID:        uuid.New(),
		Name:      name,
		OwnerID:   owner,
		MemberIDs: []uuid.UUID{owner},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasMember reports whether the user belongs to the studio (owner included).
func (s *Studio) HasMember(userID uuid.UUID) bool {
	if s.OwnerID == userID {
		return true
	}
	for _, id := range s.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
