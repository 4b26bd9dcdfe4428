package models

import "time"

type Project struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Slug        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description string     `gorm:"type:varchar(255)" json:"description"`
	StartDate   time.Time  `gorm:"type:date;not null" json:"startDate"`
	EndDate     *time.Time `gorm:"type:date" json:"endDate"`
	OwnerID     uint64     `gorm:"not null;index" json:"ownerId"`
	CategoryID  *uint64    `gorm:"index" json:"categoryId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Relations
	Owner        User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Participants []User    `gorm:"many2many:project_participants;" json:"participants,omitempty"`
	Category     *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tasks        []Task    `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}

// HasParticipant reports whether userID is among the loaded participants.
func (p Project) HasParticipant(userID uint64) bool {
	for _, u := range p.Participants {
		if u.ID == userID {
			return true
		}
	}
	return false
}
