package domain

import (
	"time"

	"github.com/google/uuid"
)

type Group struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatorID uuid.UUID `db:"creator_id" json:"creatorId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	Creator *UserSummary  `db:"-" json:"creator,omitempty"`
	Members []UserSummary `db:"-" json:"members,omitempty"`
}

// HasMember reports whether userID is currently on the roster.
func (g Group) HasMember(userID uuid.UUID) bool {
	for _, m := range g.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

type GroupMember struct {
	GroupID uuid.UUID `db:"group_id"`
	UserID  uuid.UUID `db:"user_id"`
}

// GroupSummary is the shape joined into submission payloads.
type GroupSummary struct {
	ID      uuid.UUID     `db:"id" json:"id"`
	Name    string        `db:"name" json:"name"`
	Members []UserSummary `db:"-" json:"members,omitempty"`
}

type GroupsTable struct {
	ID        string
	Name      string
	CreatorID string
	CreatedAt string
}

func GetGroupTable() GroupsTable {
	return GroupsTable{
		ID:        "id",
		Name:      "name",
		CreatorID: "creator_id",
		CreatedAt: "created_at",
	}
}

func (t GroupsTable) GetTableName() string {
	return "groups"
}

type GroupMembersTable struct {
	GroupID string
	UserID  string
}

func GetGroupMemberTable() GroupMembersTable {
	return GroupMembersTable{
		GroupID: "group_id",
		UserID:  "user_id",
	}
}

func (t GroupMembersTable) GetTableName() string {
	return "group_members"
}
