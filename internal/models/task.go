package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(100);not null" json:"title"`
	Slug        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description *string        `gorm:"type:text" json:"description"`
	IsCompleted bool           `gorm:"not null;default:false" json:"isCompleted"`
	ProjectID   uint64         `gorm:"not null;index" json:"projectId"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project       Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	AssignedUsers []User  `gorm:"many2many:task_assigned_users;" json:"assignedUsers,omitempty"`
	Tags          []Tag   `gorm:"many2many:task_tags;" json:"tags,omitempty"`
}

// IsDeleted reports whether the task carries a soft-delete marker.
func (t Task) IsDeleted() bool {
	return t.DeletedAt.Valid
}

// HasAssignee reports whether userID is among the loaded assignees.
func (t Task) HasAssignee(userID uint64) bool {
	for _, u := range t.AssignedUsers {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// HasTag reports whether a tag with the given id is among the loaded tags.
func (t Task) HasTag(tagID uint64) bool {
	for _, tag := range t.Tags {
		if tag.ID == tagID {
			return true
		}
	}
	return false
}
